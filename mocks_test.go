package hobbies_test

import (
	"context"

	hobbies "github.com/goliatone/go-hobbies"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserTracker implements hobbies.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByIdentifier(ctx context.Context, identifier string) (*hobbies.User, error) {
	args := m.Called(ctx, identifier)
	var user *hobbies.User
	if u := args.Get(0); u != nil {
		user = u.(*hobbies.User)
	}
	return user, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *hobbies.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSucccessfulLogin(ctx context.Context, user *hobbies.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockIdentityProvider implements hobbies.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (hobbies.Identity, error) {
	args := m.Called(ctx, identifier, password)
	var identity hobbies.Identity
	if i := args.Get(0); i != nil {
		identity = i.(hobbies.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (hobbies.Identity, error) {
	args := m.Called(ctx, identifier)
	var identity hobbies.Identity
	if i := args.Get(0); i != nil {
		identity = i.(hobbies.Identity)
	}
	return identity, args.Error(1)
}

// MockRevokedTokens implements hobbies.RevokedTokens
type MockRevokedTokens struct {
	mock.Mock
}

func (m *MockRevokedTokens) Revoke(ctx context.Context, token *hobbies.RevokedToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRevokedTokens) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokens) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// testIdentity is a plain Identity value for token tests
type testIdentity struct {
	id    string
	email string
	role  string
}

func (t testIdentity) ID() string       { return t.id }
func (t testIdentity) Username() string { return t.email }
func (t testIdentity) Email() string    { return t.email }
func (t testIdentity) Role() string     { return t.role }
