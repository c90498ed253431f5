package cartcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/middleware"
	"github.com/SanketJawali/tinker-store-api/models"
	cartservice "github.com/SanketJawali/tinker-store-api/services/cart"
	"github.com/SanketJawali/tinker-store-api/services/identity"
)

type CartDeltaInput struct {
	CartID    *uint `json:"cart_id"`
	ProductID uint  `json:"product_id" binding:"required"`
	// Signed quantity change. Zero is rejected; gin's required tag already
	// refuses it, the service rejects it again for non-HTTP callers.
	Quantity int `json:"quantity" binding:"required"`
}

// POST /api/cart — apply a quantity delta for one product.
//
// Not idempotent: repeating the same delta compounds quantity. Clients must
// not resend on ambiguous timeout.
func ApplyDelta(resolver *identity.Resolver, reconciler *cartservice.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartDeltaInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid input: "+err.Error())
			return
		}

		userID, err := resolver.Resolve(c.Request.Context(), middleware.ClaimFrom(c))
		if err != nil {
			if errors.Is(err, identity.ErrMissingEmail) {
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
				return
			}
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to resolve user")
			return
		}

		result, err := reconciler.ApplyDelta(c.Request.Context(), userID, input.ProductID, input.CartID, input.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, cartservice.ErrZeroDelta):
				api.Error(c, http.StatusBadRequest, api.CodeValidation, "quantity delta must be non-zero")
			case errors.Is(err, cartservice.ErrProductNotFound):
				api.Error(c, http.StatusNotFound, api.CodeProductNotFound, "Product does not exist")
			default:
				api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to update cart")
			}
			return
		}

		switch result.Outcome {
		case cartservice.OutcomeCreated:
			api.OK(c, http.StatusCreated, "Successfully added item to cart.", result.Entry)
		case cartservice.OutcomeUpdated:
			api.OK(c, http.StatusOK, "Successfully updated cart item.", result.Entry)
		case cartservice.OutcomeRemoved:
			api.OK(c, http.StatusOK, "Item removed from cart.", nil)
		default:
			api.OK(c, http.StatusOK, "Nothing to remove.", nil)
		}
	}
}

// GET /api/cart
func GetCart(resolver *identity.Resolver, reconciler *cartservice.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.Resolve(c.Request.Context(), middleware.ClaimFrom(c))
		if err != nil {
			if errors.Is(err, identity.ErrMissingEmail) {
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
				return
			}
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to resolve user")
			return
		}

		lines, err := reconciler.List(c.Request.Context(), userID)
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to fetch cart")
			return
		}
		if lines == nil {
			lines = []models.CartLine{}
		}

		api.OK(c, http.StatusOK, "Successfully retrieved cart items.", lines)
	}
}

// DELETE /api/cart/:product_id
func RemoveItem(resolver *identity.Resolver, reconciler *cartservice.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid product id")
			return
		}

		userID, err := resolver.Resolve(c.Request.Context(), middleware.ClaimFrom(c))
		if err != nil {
			if errors.Is(err, identity.ErrMissingEmail) {
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
				return
			}
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to resolve user")
			return
		}

		if err := reconciler.Remove(c.Request.Context(), userID, uint(productID)); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				api.Error(c, http.StatusNotFound, api.CodeCartItemNotFound, "Cart item not found")
				return
			}
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to delete item")
			return
		}

		api.OK(c, http.StatusOK, "Cart item deleted.", nil)
	}
}
