package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

type CandidateSkillRepository interface {
	CreateCandidateSkill(ctx context.Context, skill *models.CandidateSkill) error
	ListCandidateSkills(ctx context.Context) ([]models.CandidateSkill, error)
}

type candidateSkillRepository struct {
	db *sqlx.DB
}

func NewCandidateSkillRepository(db *sqlx.DB) CandidateSkillRepository {
	return &candidateSkillRepository{db: db}
}

func (r *candidateSkillRepository) CreateCandidateSkill(ctx context.Context, skill *models.CandidateSkill) error {
	query := `INSERT INTO candidate_skills (skill_name, score, candidate_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowxContext(ctx, query, skill.SkillName, skill.Score, skill.CandidateID).Scan(&skill.ID)
}

func (r *candidateSkillRepository) ListCandidateSkills(ctx context.Context) ([]models.CandidateSkill, error) {
	skills := []models.CandidateSkill{}
	query := `SELECT id, skill_name, score, candidate_id FROM candidate_skills ORDER BY id`
	if err := r.db.SelectContext(ctx, &skills, query); err != nil {
		return nil, err
	}
	return skills, nil
}
