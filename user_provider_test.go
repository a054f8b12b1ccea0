package hobbies_test

import (
	"context"
	"errors"
	"testing"
	"time"

	hobbies "github.com/goliatone/go-hobbies"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserProviderVerifyIdentity(t *testing.T) {
	ctx := context.Background()
	mockTracker := new(MockUserTracker)

	provider := hobbies.NewUserProvider(mockTracker)

	t.Run("Successful verification", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := hobbies.HashPassword("password123")
		user := &hobbies.User{
			ID:            userID,
			Email:         "test@example.com",
			PasswordHash:  passwordHash,
			Role:          hobbies.RoleAdmin,
			Status:        hobbies.UserStatusActive,
			LoginAttempts: 0,
		}

		mockTracker.On("GetByIdentifier", ctx, "test@example.com").Return(user, nil).Once()
		mockTracker.On("TrackSucccessfulLogin", ctx, user).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, "test@example.com", identity.Email())
		assert.Equal(t, hobbies.RoleAdmin, identity.Role())

		mockTracker.AssertExpectations(t)
	})

	t.Run("Invalid password", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := hobbies.HashPassword("correct_password")
		user := &hobbies.User{
			ID:            userID,
			Email:         "test@example.com",
			PasswordHash:  passwordHash,
			Role:          hobbies.RoleAdmin,
			Status:        hobbies.UserStatusActive,
			LoginAttempts: 0,
		}

		mockTracker.On("GetByIdentifier", ctx, "test@example.com").Return(user, nil).Once()
		mockTracker.On("TrackAttemptedLogin", ctx, user).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "wrong_password")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, hobbies.ErrInvalidCredentials)

		mockTracker.AssertExpectations(t)
	})

	t.Run("Unknown identifier gets the same credentials error", func(t *testing.T) {
		mockTracker.On("GetByIdentifier", ctx, "nonexistent@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		identity, err := provider.VerifyIdentity(ctx, "nonexistent@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, hobbies.ErrInvalidCredentials)

		mockTracker.AssertExpectations(t)
	})

	t.Run("Store failure is not reported as bad credentials", func(t *testing.T) {
		mockTracker.On("GetByIdentifier", ctx, "broken@example.com").
			Return(nil, errors.New("connection refused")).Once()

		identity, err := provider.VerifyIdentity(ctx, "broken@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.NotErrorIs(t, err, hobbies.ErrInvalidCredentials)

		mockTracker.AssertExpectations(t)
	})

	t.Run("Inactive account cannot authenticate", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := hobbies.HashPassword("password123")
		user := &hobbies.User{
			ID:           userID,
			Email:        "inactive@example.com",
			PasswordHash: passwordHash,
			Role:         hobbies.RoleMember,
			Status:       hobbies.UserStatusInactive,
		}

		mockTracker.On("GetByIdentifier", ctx, "inactive@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "inactive@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, hobbies.ErrAccountInactive)
		// same outward message as bad credentials
		assert.Equal(t, hobbies.ErrInvalidCredentials.Message, hobbies.ErrAccountInactive.Message)

		mockTracker.AssertExpectations(t)
	})

	t.Run("Too many login attempts", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := hobbies.HashPassword("password123")
		now := time.Now()
		user := &hobbies.User{
			ID:             userID,
			Email:          "test@example.com",
			PasswordHash:   passwordHash,
			Role:           hobbies.RoleAdmin,
			Status:         hobbies.UserStatusActive,
			LoginAttempts:  hobbies.MaxLoginAttempts + 1,
			LoginAttemptAt: &now,
		}

		mockTracker.On("GetByIdentifier", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.Error(t, err)
		assert.Nil(t, identity)
		assert.Equal(t, hobbies.ErrTooManyLoginAttempts, err)

		mockTracker.AssertExpectations(t)
	})

	t.Run("Login attempts cooldown expired", func(t *testing.T) {
		userID := uuid.New()
		passwordHash, _ := hobbies.HashPassword("password123")
		oldAttempt := time.Now().Add(-48 * time.Hour)
		user := &hobbies.User{
			ID:             userID,
			Email:          "test@example.com",
			PasswordHash:   passwordHash,
			Role:           hobbies.RoleAdmin,
			Status:         hobbies.UserStatusActive,
			LoginAttempts:  hobbies.MaxLoginAttempts + 1,
			LoginAttemptAt: &oldAttempt,
		}

		mockTracker.On("GetByIdentifier", ctx, "test@example.com").Return(user, nil).Once()
		mockTracker.On("TrackSucccessfulLogin", ctx, mock.MatchedBy(func(u *hobbies.User) bool {
			return u.ID == userID && u.LoginAttempts == 0 // attempts reset
		})).Return(nil).Once()

		identity, err := provider.VerifyIdentity(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())

		mockTracker.AssertExpectations(t)
	})
}

func TestUserProviderFindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()
	mockTracker := new(MockUserTracker)

	provider := hobbies.NewUserProvider(mockTracker)

	t.Run("User found", func(t *testing.T) {
		userID := uuid.New()
		user := &hobbies.User{
			ID:     userID,
			Email:  "test@example.com",
			Role:   hobbies.RoleMember,
			Status: hobbies.UserStatusActive,
		}

		mockTracker.On("GetByIdentifier", ctx, "test@example.com").Return(user, nil).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "test@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, userID.String(), identity.ID())
		assert.Equal(t, hobbies.RoleMember, identity.Role())

		mockTracker.AssertExpectations(t)
	})

	t.Run("User missing", func(t *testing.T) {
		mockTracker.On("GetByIdentifier", ctx, "missing@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		identity, err := provider.FindIdentityByIdentifier(ctx, "missing@example.com")

		assert.Error(t, err)
		assert.Nil(t, identity)

		mockTracker.AssertExpectations(t)
	})
}
