package service

import (
	"alcyxob/run-schedule/internal/domain"
	"alcyxob/run-schedule/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:       "runner",
		Password:       "longenough",
		RepeatPassword: "longenough",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Successfully register", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		newID := primitive.NewObjectID()

		users.On("GetByUsername", ctx, "runner").Return(nil, repository.ErrNotFound).Once()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, repository.ErrNotFound).Once()
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "runner" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")) == nil
		})).Return(newID, nil).Once()

		user, err := svc.Register(ctx, validRegistration())
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, "Ada Lovelace", user.FullName())
		users.AssertExpectations(t)
	})

	t.Run("Passwords differ", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		in := validRegistration()
		in.RepeatPassword = "somethingelse"

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Short password", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), testSecret, time.Hour)
		in := validRegistration()
		in.Password, in.RepeatPassword = "short", "short"

		_, err := svc.Register(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Username taken", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "runner").Return(&domain.User{Username: "runner"}, nil).Once()

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Email taken", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "runner").Return(nil, repository.ErrNotFound).Once()
		users.On("GetByEmail", ctx, "ada@example.com").Return(&domain.User{}, nil).Once()

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Lost race on unique index", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "runner").Return(nil, repository.ErrNotFound).Once()
		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, repository.ErrNotFound).Once()
		users.On("Create", ctx, mock.Anything).Return(primitive.NilObjectID, repository.ErrDuplicate).Once()

		_, err := svc.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	t.Run("Successfully log in", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "runner").Return(&domain.User{ID: userID, Username: "runner", PasswordHash: string(hash)}, nil).Once()

		token, user, err := svc.Login(ctx, "runner", "longenough")
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, userID.Hex(), claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "runner").Return(&domain.User{ID: userID, PasswordHash: string(hash)}, nil).Once()

		_, user, err := svc.Login(ctx, "runner", "wrongpassword")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
		assert.Nil(t, user)
	})

	t.Run("Unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("Repository failure passes through", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		dbErr := errors.New("connection reset")
		users.On("GetByUsername", ctx, "runner").Return(nil, dbErr).Once()

		_, _, err := svc.Login(ctx, "runner", "longenough")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("Update keeps unique email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "old@example.com", PasswordHash: "h"}, nil).Once()
		users.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: primitive.NewObjectID()}, nil).Once()

		_, err := svc.UpdateProfile(ctx, userID, ProfileInput{Email: "taken@example.com"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Update saves new names", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, Email: "old@example.com", PasswordHash: "h"}, nil).Once()
		users.On("UpdateProfile", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.FirstName == "Grace" && u.LastName == "Hopper"
		})).Return(nil).Once()

		user, err := svc.UpdateProfile(ctx, userID, ProfileInput{FirstName: " Grace ", LastName: "Hopper", Email: "old@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", user.FullName())
		assert.Empty(t, user.PasswordHash)
		users.AssertExpectations(t)
	})

	t.Run("Missing user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByID", ctx, userID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Change password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, testSecret, time.Hour)
		users.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()
		users.On("UpdatePasswordHash", ctx, userID, mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("brandnewpass")) == nil
		})).Return(nil).Once()

		require.NoError(t, svc.ChangePassword(ctx, userID, "brandnewpass", "brandnewpass"))
		users.AssertExpectations(t)
	})

	t.Run("Change password mismatch", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), testSecret, time.Hour)
		assert.ErrorIs(t, svc.ChangePassword(ctx, userID, "brandnewpass", "brandnewpasz"), ErrPasswordMismatch)
	})
}
