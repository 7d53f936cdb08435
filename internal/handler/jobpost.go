package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/repository"
)

type JobPostHandler interface {
	CreateJobPost(c *gin.Context)
	ListJobPosts(c *gin.Context)
	UpdateJobPost(c *gin.Context)
}

type jobPostHandler struct {
	jobPostRepo repository.JobPostRepository
	logger      *zap.Logger
}

func NewJobPostHandler(jobPostRepo repository.JobPostRepository, logger *zap.Logger) JobPostHandler {
	return &jobPostHandler{jobPostRepo: jobPostRepo, logger: logger}
}

type JobPostRequest struct {
	Title                   string                `json:"title" binding:"required"`
	CompanyIntro            string                `json:"company_intro"`
	Position                string                `json:"position"`
	Location                string                `json:"location"`
	EmploymentType          models.EmploymentType `json:"employment_type" binding:"required,oneof=full_time part_time contract"`
	Department              string                `json:"department"`
	PositionSummary         string                `json:"position_summary"`
	KeyResponsibilities     types.JSONText        `json:"key_responsibilities"`
	RequiredQualifications  types.JSONText        `json:"required_qualifications"`
	PreferredQualifications types.JSONText        `json:"preferred_qualifications"`
	Addons                  types.JSONText        `json:"addons"`
	WhyJoinUs               string                `json:"why_join_us"`
}

func (req *JobPostRequest) apply(jobPost *models.JobPost) {
	jobPost.Title = req.Title
	jobPost.CompanyIntro = req.CompanyIntro
	jobPost.Position = req.Position
	jobPost.Location = req.Location
	jobPost.EmploymentType = req.EmploymentType
	jobPost.Department = req.Department
	jobPost.PositionSummary = req.PositionSummary
	jobPost.KeyResponsibilities = jsonOrNull(req.KeyResponsibilities)
	jobPost.RequiredQualifications = jsonOrNull(req.RequiredQualifications)
	jobPost.PreferredQualifications = jsonOrNull(req.PreferredQualifications)
	jobPost.Addons = jsonOrNull(req.Addons)
	jobPost.WhyJoinUs = req.WhyJoinUs
}

// jsonOrNull makes omitted JSON fields storable: an empty JSONText is not
// valid JSON and would fail on insert.
func jsonOrNull(j types.JSONText) types.JSONText {
	if len(j) == 0 {
		return types.JSONText("null")
	}
	return j
}

// CreateJobPost handles POST /api/v1/jobposts.
func (h *jobPostHandler) CreateJobPost(c *gin.Context) {
	var req JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for job post", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var jobPost models.JobPost
	req.apply(&jobPost)
	if err := h.jobPostRepo.CreateJobPost(c.Request.Context(), &jobPost); err != nil {
		h.logger.Error("Failed to create job post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job post"})
		return
	}
	c.JSON(http.StatusCreated, jobPost)
}

// ListJobPosts handles GET /api/v1/jobposts.
func (h *jobPostHandler) ListJobPosts(c *gin.Context) {
	skip, limit := pagination(c)
	jobPosts, err := h.jobPostRepo.ListJobPosts(c.Request.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list job posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job posts"})
		return
	}
	c.JSON(http.StatusOK, jobPosts)
}

// UpdateJobPost handles PUT /api/v1/jobposts/:id.
func (h *jobPostHandler) UpdateJobPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job post ID"})
		return
	}

	var req JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON for job post update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobPost, err := h.jobPostRepo.GetJobPostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job post not found"})
			return
		}
		h.logger.Error("Failed to get job post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve job post"})
		return
	}

	req.apply(jobPost)
	if err := h.jobPostRepo.UpdateJobPost(c.Request.Context(), jobPost); err != nil {
		h.logger.Error("Failed to update job post", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job post"})
		return
	}
	c.JSON(http.StatusOK, jobPost)
}

// pagination reads skip/limit query params; limit is capped at 100.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}
