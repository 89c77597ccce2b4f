package attendance

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/pkg/response"
)

// Handler handles attendance HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates an attendance handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RecordRequest is the body for PUT /registrations/:id/attendance.
type RecordRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

// Record handles PUT /registrations/:id/attendance. Admin only. Upsert: a
// repeated mark overwrites the previous one.
func (h *Handler) Record(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "attended required")
		return
	}
	att, err := h.svc.Record(c.Request.Context(), id, *req.Attended)
	switch {
	case err == nil:
		response.OK(c, att)
	case eligibility.IsNotFound(err):
		response.NotFound(c, err.Error())
	case eligibility.IsValidation(err):
		response.Conflict(c, err.Error())
	default:
		h.logger.Error("record attendance failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to record attendance")
	}
}

// GetByRegistration handles GET /registrations/:id/attendance. Returns a null
// payload when no attendance has been recorded yet.
func (h *Handler) GetByRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	att, err := h.svc.GetByRegistration(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get attendance failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to load attendance")
		return
	}
	response.OK(c, att)
}

// ListBySeminar handles GET /seminars/:id/attendance. Admin only.
func (h *Handler) ListBySeminar(c *gin.Context) {
	seminarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	list, err := h.svc.ListBySeminar(c.Request.Context(), seminarID)
	if err != nil {
		h.logger.Error("list attendance failed", zap.Error(err), zap.Int64("seminar_id", seminarID))
		response.Internal(c, "failed to list attendance")
		return
	}
	response.OK(c, list)
}
