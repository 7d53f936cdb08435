package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/auth"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

type UserHandler interface {
	ListUsers(c *gin.Context)
	UpdateUser(c *gin.Context)
}

type userHandler struct {
	userRepo repository.UserRepository
	hasher   *auth.Hasher
	logger   *zap.Logger
}

func NewUserHandler(userRepo repository.UserRepository, hasher *auth.Hasher, logger *zap.Logger) UserHandler {
	return &userHandler{userRepo: userRepo, hasher: hasher, logger: logger}
}

// ListUsers handles GET /api/v1/users.
func (h *userHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type UpdateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role" binding:"required"`
	IsActive bool        `json:"is_active"`
	Password string      `json:"password"`
}

// UpdateUser handles PUT /api/v1/users/:id. The password is rehashed only
// when the request supplies a new one.
func (h *userHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for user update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to get user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	user.Email = req.Email
	user.Name = req.Name
	user.Role = req.Role
	user.IsActive = req.IsActive
	if req.Password != "" {
		hashed, err := h.hasher.Hash(req.Password)
		if err != nil {
			h.logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		user.HashedPassword = hashed
	}

	if err := h.userRepo.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
