package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/auth"
	"taskboard/internal/logger"
	"taskboard/internal/models/user"
	rep "taskboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Session struct {
	User  *user.User
	Token string
}

type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	email = user.NormalizeEmail(email)

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		logger.Info("Service: Повторная регистрация email")
		return nil, ErrDuplicateEmail("User with this email already exists")
	case !errors.Is(err, rep.ErrNotFound):
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	hash, err := s.hashPassword("password", password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, ErrDuplicateEmail("User with this email already exists")
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", u.ID.String()))
	return s.session(u)
}

// Login не различает неизвестный email и неверный пароль ни по тексту ошибки,
// ни по времени ответа: для неизвестного email тоже выполняется сравнение хеша.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, rep.ErrNotFound) {
			return nil, fmt.Errorf("поиск пользователя: %w", err)
		}
		_ = s.hasher.Compare(s.dummy(), password)
		logger.Info("Service: Неудачный вход")
		return nil, ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			logger.Info("Service: Неудачный вход", zap.String("user_id", u.ID.String()))
			return nil, ErrInvalidCredentials()
		}
		return nil, err
	}

	return s.session(u)
}

func (s *AuthService) Profile(ctx context.Context, caller auth.Identity) (*user.User, error) {
	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, ErrUserNotFound()
		}
		return nil, fmt.Errorf("получение профиля: %w", err)
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller auth.Identity, p user.Profile) (*user.User, error) {
	if p.Empty() {
		return nil, ErrNoFieldsToUpdate()
	}

	u, err := s.Profile(ctx, caller)
	if err != nil {
		return nil, err
	}

	if p.Email != nil {
		email := user.NormalizeEmail(*p.Email)
		other, err := s.users.GetByEmail(ctx, email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, ErrDuplicateEmail("Email is already taken by another user")
		case err != nil && !errors.Is(err, rep.ErrNotFound):
			return nil, fmt.Errorf("поиск пользователя: %w", err)
		}
		u.Email = email
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, rep.ErrDuplicate) {
			return nil, ErrDuplicateEmail("Email is already taken by another user")
		}
		if errors.Is(err, rep.ErrNotFound) {
			return nil, ErrUserNotFound()
		}
		return nil, fmt.Errorf("обновление профиля: %w", err)
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, caller auth.Identity, current, next string) error {
	u, err := s.Profile(ctx, caller)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, current); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return NewBusinessError(CodeInvalidPassword, "Current password is incorrect")
		}
		return err
	}

	hash, err := s.hashPassword("new_password", next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("смена пароля: %w", err)
	}
	logger.Info("Service: Пароль изменён", zap.String("user_id", u.ID.String()))
	return nil
}

// hashPassword превращает отказ хешера по длине пароля в ошибку валидации поля.
func (s *AuthService) hashPassword(field, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", NewValidationError(FieldError{Field: field, Message: field + " must not exceed 72 bytes"})
	}
	return hash, err
}

func (s *AuthService) session(u *user.User) (*Session, error) {
	token, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			logger.Error("Service: Не удалось подготовить фиктивный хеш", err)
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
