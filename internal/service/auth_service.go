package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"regexp"
	"strings"
	"time"

	"dockside/internal/config"
	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	store       domain.Store
	sessions    domain.SessionRepository
	seeds       []config.SeedAccount
	loginRate   int
	loginWindow time.Duration
	logger      *zerolog.Logger
}

func NewAuthService(store domain.Store, sessions domain.SessionRepository, cfg config.AuthConfig, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		store:       store,
		sessions:    sessions,
		seeds:       cfg.SeedAccounts,
		loginRate:   cfg.LoginRate,
		loginWindow: time.Duration(cfg.LoginWindow) * time.Second,
		logger:      logger,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
}

// Register создает нового пользователя. Все проверки выполняются до
// единственной записи в хранилище.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if email == "" {
		return nil, invalid("email", "required")
	}
	if !emailPattern.MatchString(email) {
		return nil, invalid("email", "not a valid email address")
	}
	if len(input.Password) < models.MinPasswordLength {
		return nil, invalid("password", "must be at least 6 characters long")
	}
	if name == "" {
		return nil, invalid("name", "required")
	}
	if phone == "" {
		return nil, invalid("phone", "required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleGuest
	}
	if !models.ValidRole(role) {
		return nil, invalid("role", "unknown role")
	}

	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, database.ErrEmailTaken
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordDigest: string(digest),
		Name:           name,
		Phone:          phone,
		Role:           role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login проверяет пару email/пароль. Для предзаданных аккаунтов действует
// одноразовый bootstrap: при первом успешном входе запись создается в
// хранилище, дальше работает обычная проверка дайджеста.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, invalid("email", "email and password are required")
	}

	if s.sessions != nil && s.loginRate > 0 {
		allowed, err := s.sessions.CheckLoginRate(ctx, email, s.loginRate, s.loginWindow)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login rate check failed, allowing attempt")
		} else if !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return s.bootstrapSeed(ctx, email, password)
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// bootstrapSeed создает пользователя для предзаданного аккаунта при первом
// входе. Пароль из конфигурации сравнивается в константное время и тут же
// превращается в дайджест — открытым он в хранилище не попадает.
func (s *AuthService) bootstrapSeed(ctx context.Context, email, password string) (*models.User, error) {
	for _, seed := range s.seeds {
		if strings.ToLower(strings.TrimSpace(seed.Email)) != email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(seed.Password), []byte(password)) != 1 {
			return nil, ErrInvalidCredentials
		}

		digest, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user := &models.User{
			ID:             uuid.NewString(),
			Email:          email,
			PasswordDigest: string(digest),
			Name:           seed.Name,
			Phone:          seed.Phone,
			Role:           seed.Role,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			// Параллельный bootstrap того же аккаунта: строка уже есть
			if errors.Is(err, database.ErrEmailTaken) {
				return s.Login(ctx, email, password)
			}
			return nil, err
		}

		s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("seed account provisioned")
		return user, nil
	}

	return nil, ErrInvalidCredentials
}
