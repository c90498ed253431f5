package ordercontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
	"github.com/SanketJawali/tinker-store-api/middleware"
	"github.com/SanketJawali/tinker-store-api/services/checkout"
	"github.com/SanketJawali/tinker-store-api/services/identity"
	"github.com/SanketJawali/tinker-store-api/store"
)

type CheckoutInput struct {
	Name          string `json:"name" binding:"required,max=100"`
	Address       string `json:"address" binding:"required"`
	Phone         string `json:"phone" binding:"max=20"`
	PaymentMethod string `json:"payment_method" binding:"required,max=50"`
}

// POST /api/checkout
func PlaceOrder(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			api.Error(c, http.StatusBadRequest, api.CodeValidation, "Invalid checkout data: "+err.Error())
			return
		}

		order, err := svc.PlaceOrder(c.Request.Context(), middleware.ClaimFrom(c), checkout.Input{
			Name:          input.Name,
			Address:       input.Address,
			Phone:         input.Phone,
			PaymentMethod: input.PaymentMethod,
		})
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				api.Error(c, http.StatusBadRequest, api.CodeEmptyCart, "Cart is empty")
			case errors.Is(err, checkout.ErrInvalidInput), errors.Is(err, identity.ErrMissingEmail):
				api.Error(c, http.StatusBadRequest, api.CodeValidation, err.Error())
			default:
				api.Error(c, http.StatusInternalServerError, api.CodeDBCreate, "Could not place order due to a database error.")
			}
			return
		}

		api.OK(c, http.StatusCreated, "Order placed successfully.", gin.H{
			"order_id":     order.ID,
			"reference":    order.Reference,
			"total_amount": order.TotalAmount,
			"item_count":   len(order.Items),
			"created_at":   order.CreatedAt,
		})
	}
}

// GET /api/orders
func GetOrders(resolver *identity.Resolver, orders *store.Orders) gin.HandlerFunc {
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

		list, err := orders.ForUser(c.Request.Context(), userID)
		if err != nil {
			api.Error(c, http.StatusInternalServerError, api.CodeDB, "Failed to fetch orders")
			return
		}

		api.OK(c, http.StatusOK, "Successfully retrieved orders.", list)
	}
}
