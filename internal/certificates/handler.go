package certificates

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/pkg/response"
)

// Handler handles certificate HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a certificates handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Issue handles POST /registrations/:id/certificate. Admin only. Issuing
// twice returns the existing certificate with 200 rather than an error.
func (h *Handler) Issue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	cert, err := h.svc.Issue(c.Request.Context(), id)
	switch {
	case err == nil:
		response.OK(c, cert)
	case eligibility.IsNotFound(err):
		response.NotFound(c, err.Error())
	case eligibility.IsValidation(err):
		response.Conflict(c, err.Error())
	default:
		h.logger.Error("issue certificate failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to issue certificate")
	}
}

// GetByRegistration handles GET /registrations/:id/certificate. Returns a
// null payload when no certificate has been issued.
func (h *Handler) GetByRegistration(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	cert, err := h.svc.GetByRegistration(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get certificate failed", zap.Error(err), zap.Int64("registration_id", id))
		response.Internal(c, "failed to load certificate")
		return
	}
	response.OK(c, cert)
}

// List handles GET /certificates. Admin only.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list certificates failed", zap.Error(err))
		response.Internal(c, "failed to list certificates")
		return
	}
	response.OK(c, list)
}
