package handlers

import (
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "user-directory-service/internal/application"
	"user-directory-service/internal/domain/entity"
	"user-directory-service/pkg/response"
	"user-directory-service/pkg/validation"
)

// Exposed via /api/debug/vars when debug metrics are enabled.
var (
	usersCreated = expvar.NewInt("users_created_total")
	usersUpdated = expvar.NewInt("users_updated_total")
	usersDeleted = expvar.NewInt("users_deleted_total")
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email        string  `json:"email" binding:"required,email,max=255"`
	PasswordHash string  `json:"password_hash" binding:"required,pwd"`
	FirstName    *string `json:"first_name" binding:"omitempty,alphaspace,max=100"`
	LastName     *string `json:"last_name" binding:"omitempty,alphaspace,max=100"`
	Role         string  `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

func (r *createUserRequest) toInput() userapp.CreateUserInput {
	return userapp.CreateUserInput{
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         entity.Role(r.Role),
	}
}

// userResponse is the outward projection of a record; the credential field
// has no place here on purpose.
type userResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role.String(),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	usersCreated.Add(1)
	response.Success(c, http.StatusCreated, toUserResponse(u), "user created", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var roleFilter *entity.Role
	if raw, ok := c.GetQuery("role"); ok {
		role, err := entity.ParseRole(raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid role filter", map[string]string{"role": "must be one of USER ADMIN"})
			return
		}
		roleFilter = &role
	}
	users, err := h.Svc.List(roleFilter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user", nil)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Param("id"), req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}
	usersUpdated.Add(1)
	response.Success(c, http.StatusOK, toUserResponse(u), "user updated", nil)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	usersDeleted.Add(1)
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid field", map[string]string{verr.Field: verr.Message})
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("directory operation failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
