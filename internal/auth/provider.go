package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/pkg/utils"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	Claims    *Claims
}

// Provider defines operations performed through the authentication provider.
type Provider interface {
	// IssueSession signs a token for user and records its session.
	IssueSession(ctx context.Context, user *db_models.User) (*Session, error)

	// Validate returns utils.ErrInvalidToken for bad, expired or revoked tokens.
	Validate(ctx context.Context, token string) (*Claims, error)

	// Revoke ends the session behind token. Revoking twice is not an error.
	Revoke(ctx context.Context, token string) error
}

type provider struct {
	issuer   *TokenIssuer
	sessions SessionStore
	ttl      time.Duration
	log      logrus.FieldLogger
}

func NewProvider(issuer *TokenIssuer, sessions SessionStore, ttl time.Duration, log logrus.FieldLogger) Provider {
	return &provider{
		issuer:   issuer,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

func (p *provider) IssueSession(ctx context.Context, user *db_models.User) (*Session, error) {
	token, claims, err := p.issuer.Generate(user.ID, user.Email, string(user.Role), p.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	err = p.sessions.Create(ctx, claims.ID, SessionData{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		CreatedAt: claims.IssuedAt.Time,
	}, p.ttl)
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, Claims: claims}, nil
}

func (p *provider) Validate(ctx context.Context, token string) (*Claims, error) {
	claims, err := p.issuer.Parse(token)
	if err != nil {
		p.log.WithError(err).Debug("token rejected")
		return nil, utils.ErrInvalidToken
	}

	session, err := p.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, utils.ErrInvalidToken
	}

	return claims, nil
}

func (p *provider) Revoke(ctx context.Context, token string) error {
	claims, err := p.issuer.Parse(token)
	if err != nil {
		return utils.ErrInvalidToken
	}
	return p.sessions.Delete(ctx, claims.ID)
}
