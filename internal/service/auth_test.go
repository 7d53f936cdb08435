package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/auth"
	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

type fakeUserRepo struct {
	users     map[int64]*models.User
	nextID    int64
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

const testSecret = "test-secret"

func newTestService(repo *fakeUserRepo) (AuthService, *auth.Hasher, *auth.TokenService) {
	hasher := auth.NewHasher()
	tokens := auth.NewTokenService([]byte(testSecret), time.Hour)
	return NewAuthService(repo, hasher, tokens, zap.NewNop()), hasher, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, tokens := newTestService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", "", nil)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role, "role should default to standard user")
	assert.True(t, user.IsActive, "active flag should default to true")
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "secret123", user.HashedPassword)

	// The credential hash never appears in the serialized user.
	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "hashed_password")
	assert.NotContains(t, string(body), user.HashedPassword)

	_, err = svc.Register(ctx, "alice@example.com", "other", "Alice", "", nil)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	token, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	claims, err := tokens.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", "", nil)
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret123")

	// Same sentinel for both causes: responses cannot reveal which failed.
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_UpgradesLegacyHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc, hasher, _ := newTestService(repo)
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(ctx, &models.User{
		Email:          "bob@example.com",
		HashedPassword: string(legacy),
		Role:           models.RoleUser,
		IsActive:       true,
	}))

	_, err = svc.Login(ctx, "bob@example.com", "secret123")
	require.NoError(t, err)

	stored, err := repo.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.HashedPassword, "$argon2id$"), "hash should have been upgraded")
	assert.False(t, hasher.NeedsUpgrade(stored.HashedPassword))
}

func TestLogin_RehashPersistFailureDoesNotFailLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, tokens := newTestService(repo)
	ctx := context.Background()

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(ctx, &models.User{
		Email:          "bob@example.com",
		HashedPassword: string(legacy),
		Role:           models.RoleAdmin,
		IsActive:       true,
	}))
	repo.updateErr = errors.New("disk on fire")

	token, err := svc.Login(ctx, "bob@example.com", "secret123")
	require.NoError(t, err, "rehash persistence failure must not fail the login")
	claims, err := tokens.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "x@example.com", "secret123", "X", "superuser", nil)
	assert.Error(t, err)
}

func TestCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, tokens := newTestService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", models.RoleAdmin, nil)
	require.NoError(t, err)

	token, err := tokens.Issue(user.ID, user.Role, time.Hour)
	require.NoError(t, err)

	resolved, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)

	// Garbage tokens are unauthenticated.
	_, err = svc.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// A structurally valid token for a vanished user is a distinct failure.
	orphan, err := tokens.Issue(9999, models.RoleUser, time.Hour)
	require.NoError(t, err)
	_, err = svc.CurrentUser(ctx, orphan)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCurrentUser_NonNumericSubject(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _, _ := newTestService(repo)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.CurrentUser(context.Background(), signed)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
