package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/assessly-hq/assessly-services/api/internal/auth"
	"github.com/assessly-hq/assessly-services/api/internal/config"
	"github.com/assessly-hq/assessly-services/api/internal/public/domain"
)

const minPasswordLength = 8

type authService struct {
	users    UserRepository
	orgs     OrganizationRepository
	jwtCfg   config.JWTConfig
	audience string
	tokenTTL time.Duration
}

// NewAuthService builds the registration/login service. Tokens are minted
// with the primary JWT config; verification elsewhere accepts every
// configured issuer.
func NewAuthService(users UserRepository, orgs OrganizationRepository, jwtCfg config.JWTConfig, audience string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		orgs:     orgs,
		jwtCfg:   jwtCfg,
		audience: audience,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new organization and its owner account, then mints an
// access token so the dashboard can log the user straight in.
func (s *authService) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, string, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return nil, "", invalid("%s", err)
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, "", invalid("password must be at least %d characters", minPasswordLength)
	}
	orgName := strings.TrimSpace(cmd.OrganizationName)
	if orgName == "" {
		return nil, "", invalid("organization name is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		Name:      orgName,
		Plan:      "Free",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, "", err
	}

	user := &domain.User{
		OrganizationID: org.ID,
		Email:          email,
		Name:           strings.TrimSpace(cmd.Name),
		PasswordHash:   string(hash),
		Role:           domain.RoleOwner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and mints a fresh access token. Lookup misses
// and hash mismatches collapse into the same error so login failures do not
// reveal which emails exist.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	canonical, err := domain.NewEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) mintToken(user *domain.User) (string, error) {
	claims := auth.Claims{
		Email:          user.Email,
		Name:           user.Name,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
	}
	claims.Subject = user.ID
	return auth.GenerateToken(claims, s.jwtCfg, s.audience, s.tokenTTL)
}
