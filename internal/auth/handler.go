// Package auth is the authentication stand-in: JWT login/register plus the
// admin-facing user management endpoints.
package auth

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
	"github.com/seminarhub/backend/pkg/response"
	"github.com/seminarhub/backend/pkg/utils"
)

// RegisterRequest is the body for POST /auth/register and POST /users.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"` // POST /users only; self-registration is always participant
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth and user management HTTP endpoints.
type Handler struct {
	store  store.Store
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(st store.Store, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: st, jwt: jwt, logger: logger}
}

func (h *Handler) createUser(c *gin.Context, req RegisterRequest, role models.Role) *models.User {
	existing, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Internal(c, "failed to check email")
		return nil
	}
	if existing != nil {
		response.Conflict(c, "email already registered")
		return nil
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return nil
	}
	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("create user failed", zap.Error(err), zap.String("email", req.Email))
		response.Internal(c, "failed to create user")
		return nil
	}
	return user
}

// Register handles POST /auth/register. Self-registration always yields a
// participant; privileged roles are assigned by an admin via POST /users.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user := h.createUser(c, req, models.RoleParticipant)
	if user == nil {
		return
	}
	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Internal(c, "failed to load user")
		return
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// CreateUser handles POST /users. Admin only; any role may be assigned.
func (h *Handler) CreateUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	role := models.RoleParticipant
	if req.Role != "" {
		role = models.Role(req.Role)
		if !models.ValidRole(role) {
			response.BadRequest(c, "invalid role")
			return
		}
	}
	user := h.createUser(c, req, role)
	if user == nil {
		return
	}
	response.Created(c, user.ToPublic())
}

// List handles GET /users. Admin only; used for speaker assignment.
func (h *Handler) List(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		response.Internal(c, "failed to list users")
		return
	}
	list := make([]models.UserPublic, 0, len(users))
	for i := range users {
		list = append(list, users[i].ToPublic())
	}
	response.OK(c, list)
}

// UpdateUserRequest is the body for PATCH /users/:id. Zero-value fields are
// left unchanged; role changes are explicit updates.
type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Update handles PATCH /users/:id. Admin only.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load user")
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			response.Internal(c, "failed to hash password")
			return
		}
		user.Password = hash
	}
	if req.Role != "" {
		role := models.Role(req.Role)
		if !models.ValidRole(role) {
			response.BadRequest(c, "invalid role")
			return
		}
		user.Role = role
	}
	if _, err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("update user failed", zap.Error(err), zap.Int64("user_id", id))
		response.Internal(c, "failed to update user")
		return
	}
	response.OK(c, user.ToPublic())
}

// Delete handles DELETE /users/:id. Admin only. Deletion is blocked while the
// user is the speaker of any seminar or the participant of any registration,
// keeping integer foreign keys resolvable.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var (
		found   bool
		blocked string
	)
	err = h.store.InTx(c.Request.Context(), func(tx store.Store) error {
		asSpeaker, err := tx.CountSeminarsBySpeaker(c.Request.Context(), id)
		if err != nil {
			return err
		}
		if asSpeaker > 0 {
			blocked = "user is the speaker of existing seminars"
			return nil
		}
		asParticipant, err := tx.CountRegistrationsByParticipant(c.Request.Context(), id)
		if err != nil {
			return err
		}
		if asParticipant > 0 {
			blocked = "user has existing registrations"
			return nil
		}
		found, err = tx.DeleteUser(c.Request.Context(), id)
		return err
	})
	if err != nil {
		h.logger.Error("delete user failed", zap.Error(err), zap.Int64("user_id", id))
		response.Internal(c, "failed to delete user")
		return
	}
	if blocked != "" {
		response.Conflict(c, blocked)
		return
	}
	if !found {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
