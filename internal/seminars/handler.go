package seminars

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/pkg/response"
)

// Handler handles seminar HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a seminars handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// SeminarRequest is the body for POST /seminars and PUT /seminars/:id.
type SeminarRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	Date             string                  `json:"date" binding:"required"` // YYYY-MM-DD
	Time             string                  `json:"time"`
	Location         string                  `json:"location"`
	SpeakerID        int64                   `json:"speaker_id" binding:"required"`
	Capacity         int                     `json:"capacity" binding:"required,gt=0"`
	Cost             *decimal.Decimal        `json:"cost"`
	RegistrationType models.RegistrationType `json:"registration_type" binding:"required"`
}

func (r *SeminarRequest) toModel() (*models.Seminar, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	if !models.ValidRegistrationType(r.RegistrationType) {
		return nil, errors.New("unknown registration_type: " + string(r.RegistrationType))
	}
	sem := &models.Seminar{
		Title:            r.Title,
		Description:      r.Description,
		Date:             date,
		Time:             r.Time,
		Location:         r.Location,
		SpeakerID:        r.SpeakerID,
		Capacity:         r.Capacity,
		RegistrationType: r.RegistrationType,
	}
	if r.Cost != nil {
		if r.Cost.IsNegative() {
			return nil, errors.New("cost must not be negative")
		}
		sem.Cost = decimal.NullDecimal{Decimal: *r.Cost, Valid: true}
	}
	return sem, nil
}

// Create handles POST /seminars. Admin only.
func (h *Handler) Create(c *gin.Context) {
	var req SeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	sem, err := req.toModel()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err = h.svc.Create(c.Request.Context(), sem)
	switch {
	case err == nil:
		response.Created(c, sem)
	case errors.Is(err, ErrSpeakerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidSpeakerRole):
		response.BadRequest(c, err.Error())
	default:
		h.logger.Error("create seminar failed", zap.Error(err))
		response.Internal(c, "failed to create seminar")
	}
}

// GetByID handles GET /seminars/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	sem, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get seminar failed", zap.Error(err), zap.Int64("seminar_id", id))
		response.Internal(c, "failed to load seminar")
		return
	}
	if sem == nil {
		response.NotFound(c, "seminar not found")
		return
	}
	response.OK(c, sem)
}

// List handles GET /seminars.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list seminars failed", zap.Error(err))
		response.Internal(c, "failed to list seminars")
		return
	}
	response.OK(c, list)
}

// Update handles PUT /seminars/:id. Admin only. Speaker reassignment is
// revalidated against the speaker role.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	var req SeminarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	sem, err := req.toModel()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sem.ID = id
	found, err := h.svc.Update(c.Request.Context(), sem)
	switch {
	case err == nil && !found:
		response.NotFound(c, "seminar not found")
	case err == nil:
		response.OK(c, sem)
	case errors.Is(err, ErrSpeakerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, ErrInvalidSpeakerRole):
		response.BadRequest(c, err.Error())
	default:
		h.logger.Error("update seminar failed", zap.Error(err), zap.Int64("seminar_id", id))
		response.Internal(c, "failed to update seminar")
	}
}

// Delete handles DELETE /seminars/:id. Admin only. Cascades to registrations,
// attendance, and certificates.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid seminar id")
		return
	}
	found, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete seminar failed", zap.Error(err), zap.Int64("seminar_id", id))
		response.Internal(c, "failed to delete seminar")
		return
	}
	if !found {
		response.NotFound(c, "seminar not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
