package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

type JobPostRepository interface {
	CreateJobPost(ctx context.Context, jobPost *models.JobPost) error
	ListJobPosts(ctx context.Context, offset, limit int) ([]models.JobPost, error)
	GetJobPostByID(ctx context.Context, id int64) (*models.JobPost, error)
	UpdateJobPost(ctx context.Context, jobPost *models.JobPost) error
}

type jobPostRepository struct {
	db *sqlx.DB
}

func NewJobPostRepository(db *sqlx.DB) JobPostRepository {
	return &jobPostRepository{db: db}
}

const jobPostColumns = `id, title, company_intro, position, location, employment_type, department,
	position_summary, key_responsibilities, required_qualifications, preferred_qualifications,
	addons, why_join_us, created_at`

func (r *jobPostRepository) CreateJobPost(ctx context.Context, jobPost *models.JobPost) error {
	query := `INSERT INTO job_posts (title, company_intro, position, location, employment_type,
		department, position_summary, key_responsibilities, required_qualifications,
		preferred_qualifications, addons, why_join_us)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		jobPost.Title, jobPost.CompanyIntro, jobPost.Position, jobPost.Location,
		jobPost.EmploymentType, jobPost.Department, jobPost.PositionSummary,
		jobPost.KeyResponsibilities, jobPost.RequiredQualifications,
		jobPost.PreferredQualifications, jobPost.Addons, jobPost.WhyJoinUs,
	).Scan(&jobPost.ID, &jobPost.CreatedAt)
}

func (r *jobPostRepository) ListJobPosts(ctx context.Context, offset, limit int) ([]models.JobPost, error) {
	jobPosts := []models.JobPost{}
	query := `SELECT ` + jobPostColumns + ` FROM job_posts ORDER BY id OFFSET $1 LIMIT $2`
	if err := r.db.SelectContext(ctx, &jobPosts, query, offset, limit); err != nil {
		return nil, err
	}
	return jobPosts, nil
}

func (r *jobPostRepository) GetJobPostByID(ctx context.Context, id int64) (*models.JobPost, error) {
	var jobPost models.JobPost
	query := `SELECT ` + jobPostColumns + ` FROM job_posts WHERE id = $1`
	if err := r.db.GetContext(ctx, &jobPost, query, id); err != nil {
		return nil, err
	}
	return &jobPost, nil
}

func (r *jobPostRepository) UpdateJobPost(ctx context.Context, jobPost *models.JobPost) error {
	query := `UPDATE job_posts
		SET title = $1, company_intro = $2, position = $3, location = $4, employment_type = $5,
			department = $6, position_summary = $7, key_responsibilities = $8,
			required_qualifications = $9, preferred_qualifications = $10, addons = $11,
			why_join_us = $12
		WHERE id = $13
		RETURNING created_at`
	return r.db.QueryRowxContext(ctx, query,
		jobPost.Title, jobPost.CompanyIntro, jobPost.Position, jobPost.Location,
		jobPost.EmploymentType, jobPost.Department, jobPost.PositionSummary,
		jobPost.KeyResponsibilities, jobPost.RequiredQualifications,
		jobPost.PreferredQualifications, jobPost.Addons, jobPost.WhyJoinUs, jobPost.ID,
	).Scan(&jobPost.CreatedAt)
}
