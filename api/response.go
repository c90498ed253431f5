package api

import "github.com/gin-gonic/gin"

// Stable machine-readable error codes. Clients match on these, never on the
// human-readable message.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeProductNotFound  = "PRODUCT_NOT_FOUND"
	CodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	CodeEmptyCart        = "ORDER_EMPTY_CART"
	CodeDBCreate         = "DB_CREATE_ERROR"
	CodeDB               = "DB_ERROR"
)

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Error writes a structured failure body. No internal detail beyond the
// stable code and message ever reaches the client.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Success: false, Message: message, ErrorCode: code})
}

// OK writes a structured success body.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}
