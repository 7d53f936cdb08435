package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

type SettingRepository interface {
	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetSettingByPath(ctx context.Context, path string) (*models.Setting, error)
	CreateSetting(ctx context.Context, setting *models.Setting) error
	UpdateSettingValue(ctx context.Context, configID int64, value string) (*models.Setting, error)
	DeleteSetting(ctx context.Context, configID int64) (int64, error)
}

type settingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) ListSettings(ctx context.Context) ([]models.Setting, error) {
	settings := []models.Setting{}
	query := `SELECT config_id, path, value, updated_at FROM config ORDER BY config_id`
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) GetSettingByPath(ctx context.Context, path string) (*models.Setting, error) {
	var setting models.Setting
	query := `SELECT config_id, path, value, updated_at FROM config WHERE path = $1`
	if err := r.db.GetContext(ctx, &setting, query, path); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) CreateSetting(ctx context.Context, setting *models.Setting) error {
	query := `INSERT INTO config (path, value) VALUES ($1, $2) RETURNING config_id, updated_at`
	return r.db.QueryRowxContext(ctx, query, setting.Path, setting.Value).
		Scan(&setting.ConfigID, &setting.UpdatedAt)
}

func (r *settingRepository) UpdateSettingValue(ctx context.Context, configID int64, value string) (*models.Setting, error) {
	var setting models.Setting
	query := `UPDATE config SET value = $1, updated_at = now() WHERE config_id = $2
		RETURNING config_id, path, value, updated_at`
	if err := r.db.GetContext(ctx, &setting, query, value, configID); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) DeleteSetting(ctx context.Context, configID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM config WHERE config_id = $1`, configID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
