package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

// UserRepository is the user store. Email uniqueness is enforced by the
// database; ErrNoRows from the lookups is the caller's not-found signal.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, hashed_password, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.HashedPassword, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, hashed_password, role, is_active, created_at FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, hashed_password, role, is_active, created_at FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users
		SET name = $1, email = $2, hashed_password = $3, role = $4, is_active = $5
		WHERE id = $6
		RETURNING created_at`
	return r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.HashedPassword, user.Role, user.IsActive, user.ID,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT id, name, email, hashed_password, role, is_active, created_at FROM users ORDER BY id`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}
