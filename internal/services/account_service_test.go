package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/auth"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/testutils"
	mem "swasthsetu/pkg/memcache"
	"swasthsetu/pkg/utils"
)

type capturingMail struct {
	mu     sync.Mutex
	codes  map[string]string
	resets map[string]string
}

func (m *capturingMail) SendVerificationCode(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

func (m *capturingMail) SendPasswordReset(to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[to] = token
	return nil
}

type accountFixture struct {
	store    *testutils.Store
	mail     *capturingMail
	provider auth.Provider
	svc      AccountServiceInterface
}

func newAccountFixture() *accountFixture {
	store := testutils.NewStore()
	tokens := mem.NewTokens()
	log, _ := testutils.Logger()
	provider := auth.NewProvider(auth.NewTokenIssuer("test-secret"), auth.NewMemorySessionStore(tokens), time.Hour, log)
	mail := &capturingMail{codes: map[string]string{}, resets: map[string]string{}}
	return &accountFixture{
		store:    store,
		mail:     mail,
		provider: provider,
		svc:      NewAccountService(testutils.UserRepo{Store: store}, provider, mail, tokens, log),
	}
}

func (f *accountFixture) register(t *testing.T, email string) {
	t.Helper()
	_, err := f.svc.Register(context.Background(), request_models.SignUpRequest{
		Email:    email,
		Username: "ravi",
		Password: "secret123",
	})
	require.NoError(t, err)
}

func TestRegister_DefaultsToMigrant(t *testing.T) {
	f := newAccountFixture()

	user, err := f.svc.Register(context.Background(), request_models.SignUpRequest{
		Email:    "  Ravi@Example.com ",
		Username: "ravi",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.Equal(t, "migrant", user.Role)
	assert.False(t, user.IsVerified)
	assert.Len(t, f.mail.codes["ravi@example.com"], 6)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")

	_, err := f.svc.Register(context.Background(), request_models.SignUpRequest{
		Email:    "RAVI@example.com",
		Username: "other",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, request_models.LoginRequest{Email: "ravi@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := f.provider.Validate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	require.NoError(t, f.svc.Logout(ctx, resp.Token))
	_, err = f.provider.Validate(ctx, resp.Token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{Email: "ravi@example.com", Password: "nope-nope"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), request_models.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")
	ctx := context.Background()

	err := f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: "000000x"})
	assert.ErrorIs(t, err, utils.ErrInvalidCode)

	code := f.mail.codes["ravi@example.com"]
	require.NoError(t, f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: code}))

	for _, u := range f.store.Users {
		assert.True(t, u.IsVerified)
	}

	// codes are single use
	err = f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: code})
	assert.ErrorIs(t, err, utils.ErrInvalidCode)
}

func TestPasswordReset(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.Empty(t, f.mail.resets)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ravi@example.com"))
	token := f.mail.resets["ravi@example.com"]
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{
		Email:       "ravi@example.com",
		Token:       token,
		NewPassword: "newsecret",
	}))

	_, err := f.svc.Login(ctx, request_models.LoginRequest{Email: "ravi@example.com", Password: "newsecret"})
	require.NoError(t, err)

	err = f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Email: "ravi@example.com", Token: token, NewPassword: "again123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCode)
}

func TestRegister_RejectsStaffRoles(t *testing.T) {
	f := newAccountFixture()

	for _, role := range []string{"admin", "officer", "health_worker", "superuser"} {
		_, err := f.svc.Register(context.Background(), request_models.SignUpRequest{
			Email:    role + "@example.com",
			Username: "mallory",
			Password: "secret123",
			Role:     role,
		})
		assert.ErrorIs(t, err, utils.ErrInvalidInput, role)
	}
	assert.Empty(t, f.store.Users)

	user, err := f.svc.Register(context.Background(), request_models.SignUpRequest{
		Email:    "ravi@example.com",
		Username: "ravi",
		Password: "secret123",
		Role:     "migrant",
	})
	require.NoError(t, err)
	assert.Equal(t, "migrant", user.Role)
}

// staleUserRepo misses existing rows on lookup, as a concurrent request would.
type staleUserRepo struct{ testutils.UserRepo }

func (staleUserRepo) FindByEmail(context.Context, string) (*db_models.User, error) {
	return nil, nil
}

func TestRegister_UniqueViolationIsConflict(t *testing.T) {
	f := newAccountFixture()
	tokens := mem.NewTokens()
	log, _ := testutils.Logger()
	svc := NewAccountService(staleUserRepo{testutils.UserRepo{Store: f.store}}, f.provider, f.mail, tokens, log)
	req := request_models.SignUpRequest{Email: "ravi@example.com", Username: "ravi", Password: "secret123"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	assert.NotErrorIs(t, err, utils.ErrDatabaseError)
}

func TestVerifyEmail_CodeBurnedAfterRepeatedFailures(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")
	ctx := context.Background()
	code := f.mail.codes["ravi@example.com"]

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	for i := 0; i < maxVerifyAttempts; i++ {
		err := f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: wrong})
		require.ErrorIs(t, err, utils.ErrInvalidCode)
	}

	err := f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: code})
	assert.ErrorIs(t, err, utils.ErrInvalidCode)
	for _, u := range f.store.Users {
		assert.False(t, u.IsVerified)
	}

	// a resent code starts with a clean attempt counter
	require.NoError(t, f.svc.ResendVerification(ctx, "RAVI@example.com"))
	fresh := f.mail.codes["ravi@example.com"]
	require.Len(t, fresh, 6)
	if fresh != wrong {
		err = f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: wrong})
		require.ErrorIs(t, err, utils.ErrInvalidCode)
	}
	require.NoError(t, f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: fresh}))
	for _, u := range f.store.Users {
		assert.True(t, u.IsVerified)
	}
}

func TestResendVerification_SilentForUnknownOrVerified(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.ResendVerification(ctx, "ghost@example.com"))
	assert.Empty(t, f.mail.codes)

	f.register(t, "ravi@example.com")
	code := f.mail.codes["ravi@example.com"]
	require.NoError(t, f.svc.VerifyEmail(ctx, request_models.VerifyEmailRequest{Email: "ravi@example.com", Code: code}))

	delete(f.mail.codes, "ravi@example.com")
	require.NoError(t, f.svc.ResendVerification(ctx, "ravi@example.com"))
	assert.Empty(t, f.mail.codes)
}

func TestAssignRole(t *testing.T) {
	f := newAccountFixture()
	f.register(t, "ravi@example.com")
	ctx := context.Background()
	var users repositories.UserRepository = testutils.UserRepo{Store: f.store}

	user, err := AssignRole(ctx, users, " RAVI@example.com", db_models.RoleOfficer)
	require.NoError(t, err)
	assert.Equal(t, "officer", user.Role)
	for _, u := range f.store.Users {
		assert.Equal(t, db_models.RoleOfficer, u.Role)
	}

	_, err = AssignRole(ctx, users, "ravi@example.com", db_models.Role("superuser"))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = AssignRole(ctx, users, "ghost@example.com", db_models.RoleAdmin)
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}
