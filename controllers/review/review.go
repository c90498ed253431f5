package reviewcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/middleware"
	"github.com/SanketJawali/tinker-store-api/services/identity"
	"github.com/SanketJawali/tinker-store-api/services/review"
)

type CreateReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Title     string `json:"title" binding:"required,max=200"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Content   string `json:"content" binding:"required,max=1000"`
}

// POST /api/review
func CreateReview(svc *review.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid review data: "+err.Error())
			return
		}

		created, err := svc.Submit(c.Request.Context(), middleware.ClaimFrom(c), review.NewReview{
			ProductID: input.ProductID,
			Rating:    input.Rating,
			Title:     input.Title,
			Content:   input.Content,
		})
		if err != nil {
			switch {
			case errors.Is(err, review.ErrRatingRange):
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
			case errors.Is(err, review.ErrProductNotFound):
				api.Error(c, http.StatusNotFound, api.CodeProductNotFound, "Product does not exist")
			case errors.Is(err, identity.ErrMissingEmail):
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
			default:
				api.Error(c, http.StatusInternalServerError, api.CodeDBCreate, "Could not create review due to a database error.")
			}
			return
		}

		api.OK(c, http.StatusCreated, "Successfully added new review.", created)
	}
}
