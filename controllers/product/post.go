package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/middleware"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

type CreateProductInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Price       int    `json:"price" binding:"required,gt=0"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required,max=50"`
	Stock       int    `json:"stock" binding:"min=0"`
	ImageURL    string `json:"image_url" binding:"required,max=255"`
}

// POST /api/product
func CreateProduct(svc *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid product data: "+err.Error())
			return
		}

		product, err := svc.Create(c.Request.Context(), middleware.ClaimFrom(c), catalog.NewProduct{
			Name:        input.Name,
			Price:       input.Price,
			Description: input.Description,
			Category:    input.Category,
			Stock:       input.Stock,
			ImageURL:    input.ImageURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrMissingEmail):
				api.Error(c, http.StatusBadRequest, api.CodeValidation,
					"User email not found in token claims. Ensure 'email' is in the session token.")
			case errors.Is(err, catalog.ErrInvalidProduct):
				api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid product data")
			default:
				api.Error(c, http.StatusInternalServerError, api.CodeDBCreate,
					"Could not create product due to a database error.")
			}
			return
		}

		api.OK(c, http.StatusCreated, "Product created successfully.", product)
	}
}
