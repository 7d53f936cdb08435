package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

type CandidateSkillHandler interface {
	CreateCandidateSkill(c *gin.Context)
	ListCandidateSkills(c *gin.Context)
}

type candidateSkillHandler struct {
	skillRepo repository.CandidateSkillRepository
	logger    *zap.Logger
}

func NewCandidateSkillHandler(skillRepo repository.CandidateSkillRepository, logger *zap.Logger) CandidateSkillHandler {
	return &candidateSkillHandler{skillRepo: skillRepo, logger: logger}
}

type CandidateSkillRequest struct {
	SkillName   string `json:"skill_name" binding:"required"`
	Score       int    `json:"score"`
	CandidateID int64  `json:"candidate_id" binding:"required"`
}

// CreateCandidateSkill handles POST /api/v1/candidateskills.
func (h *candidateSkillHandler) CreateCandidateSkill(c *gin.Context) {
	var req CandidateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for candidate skill", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill := models.CandidateSkill{
		SkillName:   req.SkillName,
		Score:       req.Score,
		CandidateID: req.CandidateID,
	}
	if err := h.skillRepo.CreateCandidateSkill(c.Request.Context(), &skill); err != nil {
		h.logger.Error("Failed to create candidate skill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate skill"})
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// ListCandidateSkills handles GET /api/v1/candidateskills.
func (h *candidateSkillHandler) ListCandidateSkills(c *gin.Context) {
	skills, err := h.skillRepo.ListCandidateSkills(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list candidate skills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidate skills"})
		return
	}
	c.JSON(http.StatusOK, skills)
}
