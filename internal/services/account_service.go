package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"swasthsetu/internal/auth"
	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/models/response_models"
	"swasthsetu/internal/repositories"
	mem "swasthsetu/pkg/memcache"
	"swasthsetu/pkg/utils"
)

const (
	verificationTTL = 15 * time.Minute
	resetTokenTTL   = 15 * time.Minute

	// maxVerifyAttempts wrong codes burn the outstanding code.
	maxVerifyAttempts = 5
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
	VerifyEmail(ctx context.Context, request request_models.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AccountService struct {
	userRepo repositories.UserRepository
	provider auth.Provider
	mail     MailService
	tokens   mem.TokenStore
	log      logrus.FieldLogger
}

func NewAccountService(
	userRepo repositories.UserRepository,
	provider auth.Provider,
	mail MailService,
	tokens mem.TokenStore,
	log logrus.FieldLogger,
) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		provider: provider,
		mail:     mail,
		tokens:   tokens,
		log:      log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.UserResponse, error) {
	email := normalizeEmail(request.Email)

	if request.Role != "" && db_models.Role(request.Role) != db_models.RoleMigrant {
		return nil, utils.InvalidInput("self-registration only creates %s accounts", db_models.RoleMigrant)
	}

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.User{
		Email:        email,
		Username:     strings.TrimSpace(request.Username),
		PasswordHash: hashedPassword,
		Role:         db_models.RoleMigrant,
	}
	if err := a.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		a.log.WithError(err).WithField("email", email).Error("creating user")
		return nil, utils.DatabaseError(err)
	}

	a.sendVerificationCode(email)

	resp := response_models.NewUserResponse(user)
	return &resp, nil
}

func (a *AccountService) sendVerificationCode(email string) {
	code, err := utils.NewVerificationCode(6)
	if err != nil {
		a.log.WithError(err).Error("generating verification code")
		return
	}
	a.tokens.Set("verify:"+email, code, verificationTTL)
	a.tokens.Delete("verify-attempts:" + email)

	if err := a.mail.SendVerificationCode(email, code); err != nil {
		a.log.WithError(err).WithField("email", email).Warn("sending verification code")
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	session, err := a.provider.IssueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"elapsed": time.Since(startTime).String(),
	}).Info("login succeeded")

	return &response_models.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      response_models.NewUserResponse(user),
	}, nil
}

func (a *AccountService) Logout(ctx context.Context, token string) error {
	return a.provider.Revoke(ctx, token)
}

func (a *AccountService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	resp := response_models.NewUserResponse(user)
	return &resp, nil
}

func (a *AccountService) VerifyEmail(ctx context.Context, request request_models.VerifyEmailRequest) error {
	email := normalizeEmail(request.Email)
	key := "verify:" + email

	code, ok := a.tokens.Peek(key)
	if !ok {
		return utils.ErrInvalidCode
	}
	if !utils.SecretsEqual(code, request.Code) {
		if a.tokens.Incr("verify-attempts:"+email, verificationTTL) >= maxVerifyAttempts {
			a.tokens.Delete(key)
			a.log.WithField("email", email).Warn("verification code burned after repeated failures")
		}
		return utils.ErrInvalidCode
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if user == nil {
		return utils.ErrInvalidCode
	}

	if err := a.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"is_verified": true}); err != nil {
		return utils.DatabaseError(err)
	}
	a.tokens.Delete(key)
	a.tokens.Delete("verify-attempts:" + email)
	return nil
}

// ResendVerification issues a fresh code for unverified accounts. Like
// ForgotPassword it never reveals whether the email is registered.
func (a *AccountService) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if user == nil || user.IsVerified {
		return nil
	}

	a.sendVerificationCode(email)
	return nil
}

// ForgotPassword never reveals whether the email is registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if user == nil {
		return nil
	}

	token, err := utils.NewResetToken(32)
	if err != nil {
		return err
	}
	a.tokens.Set("reset:"+email, token, resetTokenTTL)

	if err := a.mail.SendPasswordReset(email, token); err != nil {
		a.log.WithError(err).WithField("email", email).Warn("sending password reset")
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	email := normalizeEmail(request.Email)

	if stored := a.tokens.Consume("reset:" + email); stored == "" || !utils.SecretsEqual(stored, request.Token) {
		return utils.ErrInvalidCode
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if user == nil {
		return utils.ErrInvalidCode
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err := a.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": hashed}); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}

// AssignRole changes the role of the account registered under email. It backs
// the operator CLI; the HTTP API never grants roles.
func AssignRole(ctx context.Context, users repositories.UserRepository, email string, role db_models.Role) (*response_models.UserResponse, error) {
	if !role.Valid() {
		return nil, utils.InvalidInput("unknown role %q", role)
	}

	user, err := users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if err := users.UpdateFields(ctx, user.ID, map[string]interface{}{"role": role}); err != nil {
		return nil, utils.DatabaseError(err)
	}
	user.Role = role
	resp := response_models.NewUserResponse(user)
	return &resp, nil
}
