package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasktango/backend/domain"
	"github.com/tasktango/backend/repository"
)

const minPasswordLength = 8

// Config carries the token and session knobs.
type Config struct {
	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration
	SessionTTL  time.Duration
	AdminEmail  string
}

// UseCase implements the identity flow: account creation, credential
// verification issuing a short-lived identity token, and exchanging that
// token for a Redis-backed session cookie.
type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cfg      Config
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 5 * time.Minute
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// SignUp registers a new account. Validation happens before any store call.
func (uc *UseCase) SignUp(ctx context.Context, email, password, confirm string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewError(domain.ErrCodeInvalid, "a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewError(domain.ErrCodeInvalid, "password must be at least 8 characters")
	}
	if password != confirm {
		return nil, domain.NewError(domain.ErrCodeInvalid, "passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// SignIn verifies the credentials and issues a short-lived identity token.
// The token is not a session; it must be exchanged via CreateSession.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", nil, domain.ErrBadCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrBadCredentials
	}

	token, err := uc.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (uc *UseCase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iss":     uc.cfg.TokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(uc.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.TokenSecret))
}

// CreateSession verifies an identity token and mints the session behind
// the cookie.
func (uc *UseCase) CreateSession(ctx context.Context, idToken string) (*domain.Session, error) {
	token, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return []byte(uc.cfg.TokenSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "invalid identity token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SessionTTL exposes the configured session lifetime for cookie max-age.
func (uc *UseCase) SessionTTL() time.Duration {
	return uc.cfg.SessionTTL
}

// Resolve turns a session id from the cookie into the acting identity.
// Expired sessions are deleted on read; sessions past half their lifetime
// slide back to the full TTL.
func (uc *UseCase) Resolve(ctx context.Context, sessionID string) (domain.Identity, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Identity{}, err
	}
	now := time.Now()
	if session.IsExpired(now) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return domain.Identity{}, domain.ErrSessionNotFound
	}
	if session.ExpiresAt.Sub(now) < uc.cfg.SessionTTL/2 {
		if err := uc.sessions.Extend(ctx, sessionID, int(uc.cfg.SessionTTL.Seconds())); err != nil {
			uc.logger.Warn("session extend failed", zap.Error(err))
		}
	}

	user, err := uc.users.GetByID(ctx, session.UserID)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.IdentityOf(user, uc.cfg.AdminEmail), nil
}

// RevokeSession clears the session behind a logout.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}
