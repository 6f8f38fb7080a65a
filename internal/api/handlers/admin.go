package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/repository"
)

var ordersPage = template.Must(template.New("orders").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Orders</title></head>
<body>
<h1>Recorded orders ({{len .}})</h1>
{{range .}}
<hr>
<h2>{{.Reference}}</h2>
<p>
Session: {{.SessionID}}<br>
Placed: {{.CreatedAt.Format "2006-01-02 15:04:05 MST"}}<br>
Payer: {{.Email}}<br>
Total: {{.Total}} {{.Currency}}<br>
Ship to: {{.Shipping.Name}}, {{.Shipping.Address}}, {{.Shipping.PostalCode}} {{.Shipping.City}}, {{.Shipping.Country}} ({{.Shipping.Method}})
</p>
<ul>
{{range .Items}}<li>{{.Quantity}} &times; {{.Description}} &mdash; {{.Amount}}</li>
{{end}}</ul>
{{else}}
<p>No orders recorded yet.</p>
{{end}}
</body>
</html>
`))

// HandleListOrders handles GET /admin/orders. The admin-secret check runs
// in middleware before this handler.
func HandleListOrders(orders repository.OrderStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.ListAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal error")
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := ordersPage.Execute(c.Writer, all); err != nil {
			logger.Error("Failed to render orders page", zap.Error(err))
		}
	}
}
