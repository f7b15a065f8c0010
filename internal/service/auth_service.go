package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tourguide/internal/models"
	"tourguide/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	CreateUser(ctx context.Context, email, password, name string) error
	GenerateToken(identity *models.Identity) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*models.Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return identityOf(user), nil
}

// CreateUser registers a new user. It does not log the user in.
func (s *authService) CreateUser(ctx context.Context, email, password, name string) error {
	_, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("пользователь с email %s: %w", email, models.ErrDuplicateEmail)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("ошибка проверки email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		CreatedAt:    s.now().UTC(),
	}

	// the unique index still catches a concurrent signup with the same email
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return err
	}

	return nil
}

func (s *authService) GenerateToken(identity *models.Identity) (string, error) {
	if identity == nil || identity.UserID == "" {
		return "", fmt.Errorf("пустой идентификатор пользователя")
	}

	return s.tokens.Generate(identity.UserID)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.Identity, error) {
	subject, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("пользователь %s: %w", subject, models.ErrUnknownSubject)
		}
		return nil, fmt.Errorf("ошибка получения пользователя токена: %w", err)
	}

	return identityOf(user), nil
}

func identityOf(user *models.User) *models.Identity {
	return &models.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}
}
