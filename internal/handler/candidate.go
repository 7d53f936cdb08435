package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

type CandidateHandler interface {
	CreateCandidate(c *gin.Context)
	ListCandidates(c *gin.Context)
	UpdateCandidate(c *gin.Context)
}

type candidateHandler struct {
	candidateRepo repository.CandidateRepository
	logger        *zap.Logger
}

func NewCandidateHandler(candidateRepo repository.CandidateRepository, logger *zap.Logger) CandidateHandler {
	return &candidateHandler{candidateRepo: candidateRepo, logger: logger}
}

type CandidateRequest struct {
	JobPostID         int64           `json:"job_post_id" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	CurrentLocation   string          `json:"current_location"`
	Email             string          `json:"email" binding:"required,email"`
	ContactNumber     string          `json:"contact_number"`
	SlotAvailability  time.Time       `json:"slot_availability"`
	RateCardHourly    float64         `json:"rate_card_hourly"`
	ExperienceYears   float64         `json:"experience_years"`
	VisaType          models.VisaType `json:"visa_type" binding:"required,oneof=h1b l1 f1 other"`
	WillingToRelocate bool            `json:"willing_to_relocate"`
	OverallGPTScore   float64         `json:"overall_gpt_score"`
	NoticePeriodDays  int             `json:"notice_period_days"`
	CVFileURL         string          `json:"cv_file_url"`
	Remarks           string          `json:"remarks"`
}

func (req *CandidateRequest) apply(candidate *models.Candidate) {
	candidate.JobPostID = req.JobPostID
	candidate.Name = req.Name
	candidate.CurrentLocation = req.CurrentLocation
	candidate.Email = req.Email
	candidate.ContactNumber = req.ContactNumber
	candidate.SlotAvailability = req.SlotAvailability
	candidate.RateCardHourly = req.RateCardHourly
	candidate.ExperienceYears = req.ExperienceYears
	candidate.VisaType = req.VisaType
	candidate.WillingToRelocate = req.WillingToRelocate
	candidate.OverallGPTScore = req.OverallGPTScore
	candidate.NoticePeriodDays = req.NoticePeriodDays
	candidate.CVFileURL = req.CVFileURL
	candidate.Remarks = req.Remarks
}

// CreateCandidate handles POST /api/v1/candidates.
func (h *candidateHandler) CreateCandidate(c *gin.Context) {
	var req CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for candidate", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var candidate models.Candidate
	req.apply(&candidate)
	if err := h.candidateRepo.CreateCandidate(c.Request.Context(), &candidate); err != nil {
		h.logger.Error("Failed to create candidate", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidate"})
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// ListCandidates handles GET /api/v1/candidates.
func (h *candidateHandler) ListCandidates(c *gin.Context) {
	skip, limit := pagination(c)
	candidates, err := h.candidateRepo.ListCandidates(c.Request.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list candidates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidates"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// UpdateCandidate handles PUT /api/v1/candidates/:id.
func (h *candidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID"})
		return
	}

	var req CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for candidate update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidate, err := h.candidateRepo.GetCandidateByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
			return
		}
		h.logger.Error("Failed to get candidate", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve candidate"})
		return
	}

	req.apply(candidate)
	if err := h.candidateRepo.UpdateCandidate(c.Request.Context(), candidate); err != nil {
		h.logger.Error("Failed to update candidate", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate"})
		return
	}
	c.JSON(http.StatusOK, candidate)
}
