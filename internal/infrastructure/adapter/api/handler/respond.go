package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error onto its HTTP status and numeric code
func respondError(c *gin.Context, err error) {
	c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

// respondBadRequest reports a malformed request body or parameter
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: message,
	})
}

// respondUnauthenticated reports a request that reached a protected handler
// without an actor attached
func respondUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Authentication required",
	})
}
