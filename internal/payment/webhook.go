package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/footkitshop/storefront/pkg/errors"
)

// SignatureHeader is the HTTP header carrying the processor's signature
const SignatureHeader = "Processor-Signature"

// DefaultTolerance bounds how old a signed timestamp may be before the
// event is rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

// ConstructEvent verifies the signature header against the raw payload and
// decodes the event envelope. An empty secret skips verification entirely;
// callers must only allow that in development configurations.
func ConstructEvent(payload []byte, sigHeader, secret string) (*Event, error) {
	return constructEventAt(payload, sigHeader, secret, time.Now(), DefaultTolerance)
}

func constructEventAt(payload []byte, sigHeader, secret string, now time.Time, tolerance time.Duration) (*Event, error) {
	if secret != "" {
		if err := verifySignature(payload, sigHeader, secret, now, tolerance); err != nil {
			return nil, err
		}
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &errors.ErrInvalidSignature{Reason: "payload is not valid JSON"}
	}
	return &event, nil
}

// verifySignature checks the "t=<unix>,v1=<hex>" header: the v1 value must
// be an HMAC-SHA256 of "<t>.<payload>" under the signing secret, and t must
// fall within the tolerance window.
func verifySignature(payload []byte, sigHeader, secret string, now time.Time, tolerance time.Duration) error {
	if sigHeader == "" {
		return &errors.ErrInvalidSignature{Reason: "missing signature header"}
	}

	var timestamp int64
	var candidates []string
	for _, part := range strings.Split(sigHeader, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return &errors.ErrInvalidSignature{Reason: "malformed timestamp"}
			}
			timestamp = ts
		case "v1":
			candidates = append(candidates, value)
		}
	}

	if timestamp == 0 || len(candidates) == 0 {
		return &errors.ErrInvalidSignature{Reason: "malformed signature header"}
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > tolerance || age < -tolerance {
		return &errors.ErrInvalidSignature{Reason: "timestamp outside tolerance"}
	}

	expected := computeSignature(payload, timestamp, secret)
	for _, candidate := range candidates {
		sig, err := hex.DecodeString(candidate)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			return nil
		}
	}

	return &errors.ErrInvalidSignature{Reason: "no matching signature"}
}

func computeSignature(payload []byte, timestamp int64, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload builds a signature header for a payload. Used by tests and by
// local tooling that replays events against a development server.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	sig := computeSignature(payload, ts, secret)
	return "t=" + strconv.FormatInt(ts, 10) + ",v1=" + hex.EncodeToString(sig)
}
