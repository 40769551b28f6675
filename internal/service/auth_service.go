package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/campus-events-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService owns credentials and sessions. Nothing else in the codebase
// hashes or compares passwords.
type AuthService struct {
	accounts AccountStore
	sessions SessionStore
	tokens   *jwtPkg.Manager
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(accounts AccountStore, sessions SessionStore, tokens *jwtPkg.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUpEmail creates an organization row and its credential account.
func (s *AuthService) SignUpEmail(ctx context.Context, in models.SignUpInput) (*models.Organization, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, invalid("email", "is required")
	}
	if len(in.Password) < 6 {
		return nil, invalid("password", "must be at least 6 characters")
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleOrganization
	}

	org := &models.Organization{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         in.Name,
		Description:  in.Description,
		Contacts:     []models.Contact{},
		Role:         role,
		IsFirstLogin: in.IsFirstLogin,
	}
	account := &models.Account{
		ID:         uuid.NewString(),
		AccountID:  org.ID,
		ProviderID: models.ProviderCredential,
		Password:   hash,
	}

	if err := s.accounts.CreateWithAccount(ctx, org, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("org_id", org.ID),
		zap.String("email", org.Email),
		zap.String("role", string(org.Role)),
	)
	return org, nil
}

// SignInEmail checks the credentials and opens a new session.
func (s *AuthService) SignInEmail(ctx context.Context, email, password string, meta models.SessionMeta) (*models.AuthResponse, error) {
	org, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	account, err := s.accounts.GetAccount(ctx, org.ID, models.ProviderCredential)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}

	if err := bcrypt.ComparePassword(account.Password, password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatch) {
			s.logger.Warn("stored password hash is unusable", zap.String("org_id", org.ID), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.tokens.TTL()),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		UserID:    org.ID,
	}

	token, expiresAt, err := s.tokens.Generate(session.Token, org.ID, org.Email, string(org.Role))
	if err != nil {
		return nil, err
	}
	session.ExpiresAt = expiresAt

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if n, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		s.logger.Warn("prune expired sessions", zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("pruned expired sessions", zap.Int64("count", n))
	}

	s.logger.Info("signed in", zap.String("org_id", org.ID))
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      org,
	}, nil
}

// GetSession resolves a token to the current principal. Role and the
// first-login flag are read fresh from the organization row.
func (s *AuthService) GetSession(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetActive(ctx, claims.ID, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session.UserID != claims.Subject {
		return nil, ErrInvalidSession
	}

	org, err := s.accounts.GetByID(ctx, session.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("lookup organization: %w", err)
	}

	return models.PrincipalOf(org), nil
}

// SignOut revokes the session behind token. Unknown tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, claims.ID)
}

// ChangePassword verifies currentPassword and stores newPassword. A wrong
// current password yields ErrInvalidCredentials.
func (s *AuthService) ChangePassword(ctx context.Context, caller *models.Principal, currentPassword, newPassword string) error {
	if err := requireSession(caller); err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return invalid("new_password", "must be at least 8 characters")
	}

	account, err := s.accounts.GetAccount(ctx, caller.ID, models.ProviderCredential)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("lookup credential: %w", err)
	}

	if err := bcrypt.ComparePassword(account.Password, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdateAccountPassword(ctx, account.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password changed", zap.String("org_id", caller.ID))
	return nil
}
