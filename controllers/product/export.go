package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
)

// GET /admin/products/export — full catalog as a spreadsheet.
func ExportProductsToExcel(svc *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.All(c.Request.Context())
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to create Excel sheet")
			return
		}

		headers := []string{"ID", "Name", "Price", "Category", "Stock", "ImageURL", "OwnerID"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.OwnerID)
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := file.Write(c.Writer); err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to write Excel file")
			return
		}
	}
}
