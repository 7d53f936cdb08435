package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

type SettingHandler interface {
	ListSettings(c *gin.Context)
	CreateSetting(c *gin.Context)
	UpdateSetting(c *gin.Context)
	DeleteSetting(c *gin.Context)
}

type settingHandler struct {
	settingRepo repository.SettingRepository
	logger      *zap.Logger
}

func NewSettingHandler(settingRepo repository.SettingRepository, logger *zap.Logger) SettingHandler {
	return &settingHandler{settingRepo: settingRepo, logger: logger}
}

// ListSettings handles GET /api/v1/config.
func (h *settingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingRepo.ListSettings(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list config entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve config"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type CreateSettingRequest struct {
	Path  string `json:"path" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// CreateSetting handles POST /api/v1/config. Paths are unique.
func (h *settingHandler) CreateSetting(c *gin.Context) {
	var req CreateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for config entry", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.settingRepo.GetSettingByPath(c.Request.Context(), req.Path); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Config path already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.logger.Error("Failed to check config path", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create config"})
		return
	}

	setting := models.Setting{Path: req.Path, Value: req.Value}
	if err := h.settingRepo.CreateSetting(c.Request.Context(), &setting); err != nil {
		h.logger.Error("Failed to create config entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create config"})
		return
	}
	c.JSON(http.StatusCreated, setting)
}

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting handles PUT /api/v1/config/:id. Only the value may change.
func (h *settingHandler) UpdateSetting(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config ID"})
		return
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for config update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := h.settingRepo.UpdateSettingValue(c.Request.Context(), id, req.Value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Config not found"})
			return
		}
		h.logger.Error("Failed to update config entry", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting handles DELETE /api/v1/config/:id.
func (h *settingHandler) DeleteSetting(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config ID"})
		return
	}

	deleted, err := h.settingRepo.DeleteSetting(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete config entry", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete config"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Config not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Config deleted"})
}
