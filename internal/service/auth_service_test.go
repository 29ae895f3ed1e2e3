package service

import (
	"context"
	"testing"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"
	"fitforge/fitness-planner/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	newUserID := primitive.NewObjectID()

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(newUserID, nil)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, newUserID, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must not leak out of the service")

	// The stored user carries a bcrypt hash, never the plaintext.
	created := userRepo.Calls[1].Arguments.Get(1).(*domain.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, existing.Email).Return(existing, nil)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alice", existing.Email, "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateRaceOnInsert(t *testing.T) {
	// Two concurrent registrations can both pass the GetByEmail check; the
	// unique index rejects the loser.
	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicate)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com", PasswordHash: string(hash)}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	token, loggedIn, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	// The token is verifiable with the same secret and carries the user ID.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "fitness-planner", claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com", PasswordHash: string(hash)}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	_, loggedIn, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Nil(t, loggedIn)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "password123")
	// Unknown emails and bad passwords are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
