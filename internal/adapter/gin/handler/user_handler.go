package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-service/internal/usecase/user"
	pkgerrors "user-service/pkg/errors"
	"user-service/pkg/logger"
)

// UserUsecase is the set of user operations the handler depends on.
type UserUsecase interface {
	ListUsers(ctx context.Context) (*user.ListUsersResponse, error)
	GetUser(ctx context.Context, in user.GetUserRequest) (*user.GetUserResponse, error)
	CreateUser(ctx context.Context, in user.CreateUserRequest) (*user.CreateUserResponse, error)
	UpdateUser(ctx context.Context, in user.UpdateUserRequest) (*user.UpdateUserResponse, error)
	DeleteUser(ctx context.Context, in user.DeleteUserRequest) (*user.DeleteUserResponse, error)
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserResponse is returned with 201 Created.
type CreateUserResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResponse carries the confirmation of a successful update or delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes describes the exposed endpoints, served on GET /.
var Routes = map[string]string{
	"Get all users":  "/users [GET]",
	"Get user by id": "/users/<id> [GET]",
	"Create user":    "/users [POST]",
	"Update user":    "/users/<id> [PUT]",
	"Delete user":    "/users/<id> [DELETE]",
}

// Index handles GET /
func (h *UserHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, Routes)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.Users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.User)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			h.handleError(c, pkgerrors.ErrMissingFields)
			return
		}
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid create user request", zap.Error(err))
		h.handleError(c, pkgerrors.ErrInvalidJSONBody)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateUserResponse{
		ID:      resp.ID,
		Message: resp.Message,
	})
}

// UpdateUser handles PUT /users/:id. Only the keys present in the body are
// written; a null value counts as absent.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		h.handleError(c, pkgerrors.ErrNoData)
		return
	}

	req := user.UpdateUserRequest{ID: id}
	for key, dst := range map[string]**string{"name": &req.Name, "email": &req.Email} {
		raw, present := body[key]
		if !present {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			logger.WithContext(c.Request.Context(), h.log).Warn("invalid update field",
				zap.String("field", key), zap.Error(err))
			h.handleError(c, pkgerrors.ErrInvalidJSONBody)
			return
		}
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: resp.Message})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: resp.Message})
}

func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid user id", zap.String("id", idStr))
		h.handleError(c, pkgerrors.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// handleError writes err as {"error": ...} with the status its type maps to.
// Server errors carry the underlying error text unchanged.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := pkgerrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
