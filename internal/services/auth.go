package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
	"github.com/brightpath/brightpath-backend/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the JWT payload. Identity travels as claims so handlers never
// re-read the user row on the hot path.
type Claims struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Role           string    `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

type TokenPair struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *types.User `json:"user,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ParseToken(tokenString string) (*Claims, error)
}

type authService struct {
	users      repos.UserRepo
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *logger.Logger
}

func NewAuthService(users repos.UserRepo, baseLog *logger.Logger) AuthService {
	log := baseLog.With("service", "AuthService")
	secret := utils.GetEnv("JWT_SECRET", "dev-secret-change-me", log)
	accessMinutes := utils.GetEnvAsInt("JWT_ACCESS_TTL_MINUTES", 15, log)
	refreshHours := utils.GetEnvAsInt("JWT_REFRESH_TTL_HOURS", 24*7, log)

	return &authService{
		users:      users,
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshHours) * time.Hour,
		log:        log,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	exists, err := s.users.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, nil, []*types.User{{
		OrganizationID: input.OrganizationID,
		Email:          email,
		Password:       string(hash),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           types.RoleMember,
	}})
	if err != nil {
		return nil, err
	}
	user := created[0]
	s.log.Info("registered user", "user_id", user.ID, "organization_id", user.OrganizationID)
	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := s.users.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetByIDs(ctx, nil, []uuid.UUID{claims.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(users[0])
}

func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) issueTokens(user *types.User) (*TokenPair, error) {
	access, err := s.sign(user, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	// never expose the hash
	sanitized := *user
	sanitized.Password = ""
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: &sanitized}, nil
}

func (s *authService) sign(user *types.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
