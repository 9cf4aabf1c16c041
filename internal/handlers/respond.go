package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brewpoints/cafe_ledger_app/internal/apperrors"
	"github.com/brewpoints/cafe_ledger_app/internal/middleware"
)

// ErrorResponse is the uniform failure body. Clients branch on Code; Message
// is for humans and carries no stable contract.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an error chain to its taxonomy code and HTTP status.
// Unclassified errors get a generic body so internals never leak.
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	message := err.Error()
	if code == apperrors.CodeInternal {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unclassified error", "error", err.Error())
		message = "internal server error"
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), ErrorResponse{
		Code:    string(code),
		Message: message,
	})
}
