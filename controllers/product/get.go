package productcontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
	"github.com/SanketJawali/tinker-store-api/services/review"
)

// GET /api/product/:id — single product with its reviews. Plain reads, no
// cache involved.
func GetProductByID(svc *catalog.Catalog, reviews *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid product id")
			return
		}

		product, err := svc.Get(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				api.Error(c, http.StatusNotFound, api.CodeProductNotFound,
					fmt.Sprintf("Product with id %d not found.", id))
				return
			}
			api.Error(c, http.StatusInternalServerError, api.CodeDB,
				"An unexpected server error occurred while retrieving the product.")
			return
		}

		productReviews, err := reviews.ListForProduct(c.Request.Context(), uint(id))
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB,
				"An unexpected server error occurred while retrieving the product.")
			return
		}
		if productReviews == nil {
			productReviews = []models.Review{}
		}

		api.OK(c, http.StatusOK, fmt.Sprintf("Product %d retrieved successfully.", id), gin.H{
			"product": product,
			"reviews": productReviews,
		})
	}
}
