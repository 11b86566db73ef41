// Package handler exposes the mutation API and dataset reads over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alkhaled/internal/ledger"
	"alkhaled/internal/service"
	"alkhaled/internal/store"
	"alkhaled/pkg/response"
)

// fail maps domain errors onto HTTP statuses and writes the error envelope.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCreditWithoutCustomer),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, ledger.ErrCouponNotFound),
		errors.Is(err, ledger.ErrCouponInactive),
		errors.Is(err, ledger.ErrCouponExpired),
		errors.Is(err, ledger.ErrCouponMinPurchase),
		errors.Is(err, ledger.ErrOfferPrice):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, store.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrNotReady):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// IDListRequest is the bulk-delete payload.
type IDListRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// StorageGate blocks every data route while the controller is not ready,
// so the UI sees a consistent blocking state instead of partial failures.
func StorageGate(ctrl *store.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctrl.Status() != store.StatusReady {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				response.Error(http.StatusServiceUnavailable, "Storage is not ready: "+string(ctrl.Status())))
			return
		}
		c.Next()
	}
}
