package adminControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/OmNinave/E-commerce-sub001/store"
)

// GET /api/admin/orders/export
//
// Streams all orders as an .xlsx download, one row per order.
func ExportOrdersToExcel(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := st.ListAllOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "UserID", "Status", "PaymentStatus", "PaymentMethod",
			"Subtotal", "Delivery", "MarketplaceFee", "Tax", "GiftCardDiscount",
			"GrandTotal", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.DeliveryCharge)
			row.AddCell().SetValue(o.MarketplaceFee)
			row.AddCell().SetValue(o.Tax)
			row.AddCell().SetValue(o.GiftCardDiscount)
			row.AddCell().SetValue(o.GrandTotal)

			var items []string
			for _, item := range o.Items {
				items = append(items, strconv.Itoa(int(item.ProductID))+"x"+strconv.Itoa(item.Quantity))
			}
			row.AddCell().SetValue(strings.Join(items, ","))

			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
