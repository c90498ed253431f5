package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
)

// GET /api/product
func GetProducts(svc *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "page must be a positive integer")
			return
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "limit must be a positive integer")
			return
		}

		products, err := svc.List(c.Request.Context(), q, page, limit)
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to fetch products")
			return
		}

		api.OK(c, http.StatusOK, "Successfully retrieved product list.", products)
	}
}
