package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdir/employee-backend-go/internal/domain/auth"
	"github.com/staffdir/employee-backend-go/internal/domain/user"
	"github.com/staffdir/employee-backend-go/internal/pkg/jwt"
	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
	logins int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	f.nextID++
	newUser.ID = fmt.Sprintf("user-%d", f.nextID)
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) RecordLogin(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	f.users[id] = u
	f.logins++
	return nil
}

// fakeTokenRepo keeps issued refresh tokens and their revocation state, the
// way the PostgreSQL repository keeps them in the refresh_tokens table.
type fakeTokenRepo struct {
	tokens map[string]bool // token -> revoked
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]bool)}
}

func (f *fakeTokenRepo) StoreRefreshToken(_ context.Context, _ string, token string, _ int64) error {
	f.tokens[token] = false
	return nil
}

func (f *fakeTokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	revoked, ok := f.tokens[token]
	if !ok {
		return true, nil
	}
	return revoked, nil
}

func (f *fakeTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	if _, ok := f.tokens[token]; ok {
		f.tokens[token] = true
	}
	return nil
}

func newTestService(repo *fakeUserRepo) auth.AuthService {
	return newTestServiceWithTokens(repo, newFakeTokenRepo())
}

func newTestServiceWithTokens(repo *fakeUserRepo, tokenRepo *fakeTokenRepo) auth.AuthService {
	jwtSvc := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, tokenRepo, jwtSvc)
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, status user.Status) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), user.User{
		Username:     username,
		Email:        username + "@co.com",
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		Status:       status,
	})
	require.NoError(t, err)
	return u
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "Ann", Password: "Passw0rd1"})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Greater(t, tokens.ExpiresAt, time.Now().Unix())
	assert.Equal(t, 1, repo.logins)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown usernames get the same answer as wrong passwords.
	_, err = svc.Login(context.Background(), auth.LoginRequest{Username: "nobody", Password: "Passw0rd1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusSuspended)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), auth.LoginRequest{})
	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))
}

func TestRegister_Success(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "Ben",
		Email:    "ben@co.com",
		Password: "Str0ngPass",
	})
	require.NoError(t, err)

	assert.Equal(t, "ben", resp.Username, "usernames are stored lowercased")
	assert.Equal(t, string(user.RoleEmployee), resp.Role, "role defaults to employee")
	assert.Equal(t, string(user.StatusActive), resp.Status)
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "ann",
		Email:    "other@co.com",
		Password: "Str0ngPass",
	})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = svc.Register(context.Background(), auth.RegisterRequest{
		Username: "annette",
		Email:    "ann@co.com",
		Password: "Str0ngPass",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Username: "ben",
		Email:    "ben@co.com",
		Password: "Str0ngPass",
		Role:     "superuser",
	})
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "role", errs[0].Field)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		_, err := svc.Register(context.Background(), auth.RegisterRequest{
			Username: "ben",
			Email:    "ben@co.com",
			Password: password,
		})
		var errs validator.ValidationErrors
		assert.True(t, errors.As(err, &errs), "password %q should be rejected", password)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old refresh token died with the rotation.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	seedUser(t, repo, "ann", "Passw0rd1", user.StatusActive)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_IgnoresMalformedToken(t *testing.T) {
	tokenRepo := newFakeTokenRepo()
	svc := newTestServiceWithTokens(newFakeUserRepo(), tokenRepo)

	require.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
	assert.Empty(t, tokenRepo.tokens, "garbage must not reach token storage")
}

func TestRevocation_OutlivesServiceInstance(t *testing.T) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	seedUser(t, userRepo, "ann", "Passw0rd1", user.StatusActive)

	svc := newTestServiceWithTokens(userRepo, tokenRepo)
	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	// A fresh service over the same repositories, as after a restart. The
	// revocation lives in storage, so the token stays dead.
	restarted := newTestServiceWithTokens(userRepo, tokenRepo)
	_, err = restarted.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefresh_RejectsUnstoredToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "ann", "Passw0rd1", user.StatusActive)

	// Issue through one token store, refresh against an empty one: a
	// well-signed token with no stored record cannot be refreshed.
	svc := newTestServiceWithTokens(userRepo, newFakeTokenRepo())
	tokens, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ann", Password: "Passw0rd1"})
	require.NoError(t, err)

	other := newTestServiceWithTokens(userRepo, newFakeTokenRepo())
	_, err = other.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
