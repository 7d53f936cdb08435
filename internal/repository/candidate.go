package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

type CandidateRepository interface {
	CreateCandidate(ctx context.Context, candidate *models.Candidate) error
	ListCandidates(ctx context.Context, offset, limit int) ([]models.Candidate, error)
	GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, candidate *models.Candidate) error
}

type candidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `id, job_post_id, name, current_location, email, contact_number,
	slot_availability, rate_card_hourly, experience_years, visa_type, willing_to_relocate,
	overall_gpt_score, notice_period_days, cv_file_url, remarks, created_at`

func (r *candidateRepository) CreateCandidate(ctx context.Context, candidate *models.Candidate) error {
	query := `INSERT INTO candidates (job_post_id, name, current_location, email, contact_number,
		slot_availability, rate_card_hourly, experience_years, visa_type, willing_to_relocate,
		overall_gpt_score, notice_period_days, cv_file_url, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		candidate.JobPostID, candidate.Name, candidate.CurrentLocation, candidate.Email,
		candidate.ContactNumber, candidate.SlotAvailability, candidate.RateCardHourly,
		candidate.ExperienceYears, candidate.VisaType, candidate.WillingToRelocate,
		candidate.OverallGPTScore, candidate.NoticePeriodDays, candidate.CVFileURL,
		candidate.Remarks,
	).Scan(&candidate.ID, &candidate.CreatedAt)
}

func (r *candidateRepository) ListCandidates(ctx context.Context, offset, limit int) ([]models.Candidate, error) {
	candidates := []models.Candidate{}
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY id OFFSET $1 LIMIT $2`
	if err := r.db.SelectContext(ctx, &candidates, query, offset, limit); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepository) GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	var candidate models.Candidate
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	if err := r.db.GetContext(ctx, &candidate, query, id); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) UpdateCandidate(ctx context.Context, candidate *models.Candidate) error {
	query := `UPDATE candidates
		SET job_post_id = $1, name = $2, current_location = $3, email = $4, contact_number = $5,
			slot_availability = $6, rate_card_hourly = $7, experience_years = $8, visa_type = $9,
			willing_to_relocate = $10, overall_gpt_score = $11, notice_period_days = $12,
			cv_file_url = $13, remarks = $14
		WHERE id = $15
		RETURNING created_at`
	return r.db.QueryRowxContext(ctx, query,
		candidate.JobPostID, candidate.Name, candidate.CurrentLocation, candidate.Email,
		candidate.ContactNumber, candidate.SlotAvailability, candidate.RateCardHourly,
		candidate.ExperienceYears, candidate.VisaType, candidate.WillingToRelocate,
		candidate.OverallGPTScore, candidate.NoticePeriodDays, candidate.CVFileURL,
		candidate.Remarks, candidate.ID,
	).Scan(&candidate.CreatedAt)
}
