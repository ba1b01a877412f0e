package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func sessionTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func TestSessionService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &model.User{ID: uuid.New(), Username: "tech1", PasswordHash: string(hash)}

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		users := &MockUserRepo{}
		users.On("GetByUsername", mock.Anything, "tech1").Return(user, nil)

		svc := NewSessionService(users, sessionTestConfig())
		token, loggedIn, err := svc.Login(context.Background(), "tech1", "correct-horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, loggedIn.ID)

		claims, err := svc.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "tech1", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &MockUserRepo{}
		users.On("GetByUsername", mock.Anything, "tech1").Return(user, nil)

		svc := NewSessionService(users, sessionTestConfig())
		_, _, err := svc.Login(context.Background(), "tech1", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error as a bad password", func(t *testing.T) {
		users := &MockUserRepo{}
		users.On("GetByUsername", mock.Anything, "ghost").Return(nil, errors.New("record not found"))

		svc := NewSessionService(users, sessionTestConfig())
		_, _, err := svc.Login(context.Background(), "ghost", "anything")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionService_Verify(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		svc := NewSessionService(&MockUserRepo{}, sessionTestConfig())
		_, err := svc.Verify("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		user := &model.User{ID: uuid.New(), Username: "tech1", PasswordHash: string(hash)}
		users := &MockUserRepo{}
		users.On("GetByUsername", mock.Anything, "tech1").Return(user, nil)

		other := sessionTestConfig()
		other.Auth.JWTSecret = "other-secret"
		token, _, err := NewSessionService(users, other).Login(context.Background(), "tech1", "pw")
		assert.NoError(t, err)

		_, err = NewSessionService(&MockUserRepo{}, sessionTestConfig()).Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		user := &model.User{ID: uuid.New(), Username: "tech1", PasswordHash: string(hash)}
		users := &MockUserRepo{}
		users.On("GetByUsername", mock.Anything, "tech1").Return(user, nil)

		cfg := sessionTestConfig()
		cfg.Auth.TokenTTL = -time.Minute
		svc := NewSessionService(users, cfg)
		token, _, err := svc.Login(context.Background(), "tech1", "pw")
		assert.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})
}

func TestSessionService_Register(t *testing.T) {
	users := &MockUserRepo{}
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// The stored hash must never be the raw password.
		return u.Username == "tech2" && u.PasswordHash != "hunter2" && u.ID != uuid.Nil
	})).Return(nil)

	svc := NewSessionService(users, sessionTestConfig())
	user, err := svc.Register(context.Background(), "tech2", "hunter2")

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")))
	users.AssertExpectations(t)
}
