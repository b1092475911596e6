package userapp

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	userEntity "socialgraph/internal/core/user"
	userPort "socialgraph/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "socialgraph"
	tokenLifetime = 24 * time.Hour
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// UserService owns identities and is the IdentityLookup the other cores consume.
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	Now            func() time.Time
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		Now:            func() time.Time { return time.Now().UTC() },
		jwtKey:         jwtKey,
	}
}

// LoginUser checks the password and issues a signed HS256 token.
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.Logger.Warn("login for unknown user", zap.String("username", username))
			return nil, userPort.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		s.Logger.Warn("login for deactivated user", zap.String("userID", user.ID.String()))
		return nil, userPort.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.Logger.Warn("invalid password", zap.String("userID", user.ID.String()))
		return nil, userPort.ErrInvalidCredentials
	}

	expiresAt := s.Now().Add(tokenLifetime)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		s.Logger.Error("could not sign token", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser creates an active user. Username or email already in use is a
// DuplicatePair.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error) {
	if !usernamePattern.MatchString(username) {
		return nil, apperr.Validation("username must be 3 to 50 letters, digits or underscores")
	}
	if _, err := mail.ParseAddress(email); err != nil || strings.TrimSpace(email) != email {
		return nil, apperr.Validation("invalid email format")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperr.Validation("password is required")
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.DuplicatePair("User", username, email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u, err := s.UserRepository.Create(ctx, userEntity.New(username, email, string(hashedPassword)))
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("username", username))
	return toDTO(u), nil
}

// Resolve implements userPort.IdentityLookup.
func (s *UserService) Resolve(ctx context.Context, id uuid.UUID) (*userEntity.Ref, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ref := u.Ref()
	return &ref, nil
}

// Exists implements userPort.IdentityLookup.
func (s *UserService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.UserRepository.ExistsByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

// Search matches the keyword against username and email.
func (s *UserService) Search(ctx context.Context, keyword string, req page.Request) (page.Page[userEntity.Ref], error) {
	users, err := s.UserRepository.Search(ctx, keyword, req)
	if err != nil {
		return page.Page[userEntity.Ref]{}, err
	}
	return page.Map(users, func(u *userEntity.User) userEntity.Ref { return u.Ref() }), nil
}

// Deactivate clears the active flag. Deactivating twice is fine; an unknown id
// is NotFound.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := userPort.EnsureExists(ctx, s, id); err != nil {
		return err
	}
	n, err := s.UserRepository.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	s.Logger.Info("user deactivated", zap.String("userID", id.String()), zap.Int64("rows", n))
	return nil
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Active:   u.IsActive,
	}
}
