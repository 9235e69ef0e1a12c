package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/models"
	"github.com/beast-watch/api-go/storage"
	"github.com/beast-watch/api-go/utils"
)

// reviewerTokenClaims is the JWT payload issued to reviewers.
type reviewerTokenClaims struct {
	ReviewerID string `json:"reviewer_id"`
	Email      string `json:"email"`
	jwt.StandardClaims
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithAuthLogger sets the auth service logger.
func WithAuthLogger(logger *zap.Logger) AuthOption {
	return func(a *AuthService) {
		a.logger = logger
	}
}

// WithAuthClock overrides the clock used for token issue and login limiting.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *AuthService) {
		a.now = now
	}
}

// WithLoginLimiter replaces the default failed-login limiter.
func WithLoginLimiter(limiter *LoginLimiter) AuthOption {
	return func(a *AuthService) {
		a.limiter = limiter
	}
}

// AuthService signs reviewers in and verifies their tokens.
type AuthService struct {
	directory storage.ReviewerDirectory
	secret    []byte
	ttl       time.Duration
	limiter   *LoginLimiter
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates an AuthService issuing HS256 tokens valid for ttl.
func NewAuthService(directory storage.ReviewerDirectory, secret string, ttl time.Duration, opts ...AuthOption) *AuthService {
	a := &AuthService{
		directory: directory,
		secret:    []byte(secret),
		ttl:       ttl,
		limiter:   NewLoginLimiter(defaultMaxLoginFailures, defaultLoginWindow),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoginResult is a successful sign-in.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Reviewer  *models.Reviewer `json:"reviewer"`
}

// Login checks email and password and issues a token. Failures are
// *apperrors.IdentityError values.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	now := a.now()

	if a.limiter.Blocked(key, now) {
		return nil, apperrors.NewIdentityError(apperrors.IdentityTooManyRequests, "login-limit", nil)
	}

	reviewer, err := a.directory.FindByEmail(ctx, key)
	if errors.Is(err, storage.ErrReviewerNotFound) {
		a.limiter.RecordFailure(key, now)
		return nil, apperrors.NewIdentityError(apperrors.IdentityInvalidCredential, "unknown-email", err)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reviewer.PasswordHash), []byte(password)); err != nil {
		a.limiter.RecordFailure(key, now)
		return nil, apperrors.NewIdentityError(apperrors.IdentityInvalidCredential, "bcrypt", err)
	}

	if reviewer.Disabled {
		return nil, apperrors.NewIdentityError(apperrors.IdentityUserDisabled, "disabled", nil)
	}

	a.limiter.Reset(key)

	token, expiresAt, err := a.issueToken(reviewer, now)
	if err != nil {
		return nil, err
	}

	if err := a.directory.RecordLogin(ctx, reviewer.ID, now); err != nil {
		a.logger.Warn("failed to record reviewer login", zap.String("reviewer_id", reviewer.ID), zap.Error(err))
	}
	reviewer.LastLoginAt = &now

	a.logger.Info("reviewer signed in", zap.String("reviewer_id", reviewer.ID))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Reviewer: reviewer}, nil
}

func (a *AuthService) issueToken(reviewer *models.Reviewer, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(a.ttl)
	claims := reviewerTokenClaims{
		ReviewerID: reviewer.ID,
		Email:      reviewer.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   reviewer.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies a bearer token and returns its reviewer claims.
func (a *AuthService) ParseToken(raw string) (*utils.ReviewerClaims, error) {
	if raw == "" {
		return nil, apperrors.NewIdentityError(apperrors.IdentityMissingToken, "empty", nil)
	}

	var claims reviewerTokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, apperrors.NewIdentityError(apperrors.IdentityTokenExpired, "jwt:expired", err)
		}
		return nil, apperrors.NewIdentityError(apperrors.IdentityInvalidToken, "jwt", err)
	}
	if !token.Valid || claims.ReviewerID == "" {
		return nil, apperrors.NewIdentityError(apperrors.IdentityInvalidToken, "jwt:claims", nil)
	}

	return &utils.ReviewerClaims{ReviewerID: claims.ReviewerID, Email: claims.Email}, nil
}

// EnsureReviewer creates a reviewer account unless one with email exists.
func (a *AuthService) EnsureReviewer(ctx context.Context, email, password, displayName string) (*models.Reviewer, error) {
	existing, err := a.directory.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrReviewerNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	reviewer := &models.Reviewer{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hashed),
	}
	if err := a.directory.CreateReviewer(ctx, reviewer); err != nil {
		return nil, err
	}

	a.logger.Info("reviewer account created", zap.String("reviewer_id", reviewer.ID))
	return reviewer, nil
}
