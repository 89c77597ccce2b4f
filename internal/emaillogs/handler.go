// Package emaillogs exposes the notification delivery log.
package emaillogs

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/store"
	"github.com/seminarhub/backend/pkg/response"
)

// Handler handles email log HTTP endpoints.
type Handler struct {
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates an email logs handler.
func NewHandler(st store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: st, logger: logger}
}

// ListBySeminar handles GET /seminars/:id/emails. Admin only.
func (h *Handler) ListBySeminar(c *gin.Context) {
	seminarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	logs, err := h.store.ListEmailLogsBySeminar(c.Request.Context(), seminarID)
	if err != nil {
		h.logger.Error("list email logs failed", zap.Error(err), zap.Int64("seminar_id", seminarID))
		response.Internal(c, "failed to load email logs")
		return
	}
	response.OK(c, logs)
}
