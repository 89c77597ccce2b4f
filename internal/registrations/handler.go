package registrations

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/middleware"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/pkg/response"
)

// Handler handles registration HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// CreateRequest is the body for POST /registrations.
type CreateRequest struct {
	SeminarID     int64 `json:"seminar_id" binding:"required"`
	ParticipantID int64 `json:"participant_id"`
}

// Create handles POST /registrations. Participants register themselves;
// admins may register any participant by passing participant_id.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	participantID := req.ParticipantID
	if role := c.GetString(middleware.ContextUserRole); role != string(models.RoleAdmin) || participantID == 0 {
		participantID = c.GetInt64(middleware.ContextUserID)
	}

	reg, err := h.svc.Create(c.Request.Context(), req.SeminarID, participantID)
	switch {
	case err == nil:
		response.Created(c, reg)
	case eligibility.IsNotFound(err):
		response.NotFound(c, err.Error())
	case errors.Is(err, eligibility.ErrDuplicateRegistration), errors.Is(err, eligibility.ErrCapacityExceeded):
		response.Conflict(c, err.Error())
	case eligibility.IsValidation(err):
		response.BadRequest(c, err.Error())
	default:
		h.logger.Error("create registration failed", zap.Error(err), zap.Int64("seminar_id", req.SeminarID))
		response.Internal(c, "failed to create registration")
	}
}

// List handles GET /registrations. Admin only.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "failed to list registrations")
		return
	}
	response.OK(c, list)
}

// ListBySeminar handles GET /seminars/:id/registrations. Admin only.
func (h *Handler) ListBySeminar(c *gin.Context) {
	seminarID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	list, err := h.svc.ListBySeminar(c.Request.Context(), seminarID)
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err), zap.Int64("seminar_id", seminarID))
		response.Internal(c, "failed to list registrations")
		return
	}
	response.OK(c, list)
}

// ListByUser handles GET /users/:id/registrations. Admins may list anyone;
// participants only themselves.
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if role := c.GetString(middleware.ContextUserRole); role != string(models.RoleAdmin) && c.GetInt64(middleware.ContextUserID) != userID {
		response.Forbidden(c, "cannot view another user's registrations")
		return
	}
	list, err := h.svc.ListByParticipant(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err), zap.Int64("user_id", userID))
		response.Internal(c, "failed to list registrations")
		return
	}
	response.OK(c, list)
}

// UpdateStatusRequest is the body for PATCH /registrations/:id/status.
type UpdateStatusRequest struct {
	Status models.RegistrationStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /registrations/:id/status. Admin only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "status required")
		return
	}
	if !models.ValidRegistrationStatus(req.Status) {
		response.BadRequest(c, "unknown status: "+string(req.Status))
		return
	}
	reg, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("update registration status failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to update status")
		return
	}
	if reg == nil {
		response.NotFound(c, "registration not found")
		return
	}
	response.OK(c, reg)
}

// Cancel handles POST /registrations/:id/cancel. Admins may cancel any
// registration; participants only their own. An unknown id is a no-op
// reported as cancelled=false, matching the workflow's non-throwing contract.
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	if role := c.GetString(middleware.ContextUserRole); role != string(models.RoleAdmin) {
		d, err := h.svc.Get(c.Request.Context(), id)
		if err != nil {
			response.Internal(c, "failed to load registration")
			return
		}
		if d != nil && d.ParticipantID != c.GetInt64(middleware.ContextUserID) {
			response.Forbidden(c, "cannot cancel another user's registration")
			return
		}
	}
	ok, err := h.svc.Cancel(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("cancel registration failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to cancel registration")
		return
	}
	response.OK(c, gin.H{"cancelled": ok})
}
