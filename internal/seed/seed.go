// Package seed загружает начальные данные: учётные записи и категории по умолчанию.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/user"
	repo "taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type File struct {
	Users      []User     `yaml:"users" validate:"dive"`
	Categories []Category `yaml:"categories" validate:"dive"`
}

type User struct {
	Name     string `yaml:"name" validate:"required,min=2,max=50"`
	Email    string `yaml:"email" validate:"required,email"`
	Password string `yaml:"password" validate:"required,min=6"`
	Role     string `yaml:"role" validate:"omitempty,oneof=admin user"`
}

type Category struct {
	Name        string `yaml:"name" validate:"required,min=2,max=100"`
	Description string `yaml:"description" validate:"max=500"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение файла начальных данных: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("разбор начальных данных: %w", err)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("проверка начальных данных: %w", err)
	}
	return &f, nil
}

type Seeder struct {
	users      service.UserRepository
	categories service.CategoryRepository
	hasher     service.PasswordHasher
}

func NewSeeder(users service.UserRepository, categories service.CategoryRepository, hasher service.PasswordHasher) *Seeder {
	return &Seeder{users: users, categories: categories, hasher: hasher}
}

// Apply создаёт недостающие записи; существующие email и названия пропускаются,
// так что повторный запуск ничего не меняет.
func (s *Seeder) Apply(ctx context.Context, f *File) error {
	var creator *uuid.UUID
	for _, su := range f.Users {
		u, err := s.ensureUser(ctx, su)
		if err != nil {
			return err
		}
		if creator == nil && u.IsAdmin() {
			id := u.ID
			creator = &id
		}
	}

	for _, sc := range f.Categories {
		if err := s.ensureCategory(ctx, sc, creator); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureUser(ctx context.Context, su User) (*user.User, error) {
	email := user.NormalizeEmail(su.Email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		logger.Info("Seed: Пользователь уже существует", zap.String("email", email))
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("поиск пользователя %s: %w", email, err)
	}

	hash, err := s.hasher.Hash(su.Password)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля %s: %w", email, err)
	}

	role := user.Role(su.Role)
	if role == "" {
		role = user.RoleUser
	}
	u := &user.User{
		ID:           uuid.New(),
		Name:         su.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("создание пользователя %s: %w", email, err)
	}

	logger.Info("Seed: Пользователь создан", zap.String("email", email), zap.String("role", string(role)))
	return u, nil
}

func (s *Seeder) ensureCategory(ctx context.Context, sc Category, creator *uuid.UUID) error {
	_, err := s.categories.GetByName(ctx, sc.Name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("поиск категории %s: %w", sc.Name, err)
	}

	c := &category.Category{ID: uuid.New(), Name: sc.Name, CreatedBy: creator}
	if sc.Description != "" {
		desc := sc.Description
		c.Description = &desc
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return fmt.Errorf("создание категории %s: %w", sc.Name, err)
	}

	logger.Info("Seed: Категория создана", zap.String("name", sc.Name))
	return nil
}
