package auth

import (
	"errors"
	"fmt"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MinSecretLength = 32

type claims struct {
	UserID uuid.UUID `json:"userId"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет сессионные токены HS256.
// Секрет задаётся один раз при старте и дальше не меняется.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("секрет JWT короче %d символов", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("неверное время жизни токена: %s", ttl)
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock подменяет источник времени; используется в тестах.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(id Identity) (string, error) {
	now := m.now()
	c := claims{
		UserID: id.UserID,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		logger.Error("Auth: Не удалось подписать токен", err, zap.String("user_id", id.UserID.String()))
		return "", fmt.Errorf("подпись токена: %w", err)
	}
	return signed, nil
}

// Validate возвращает ErrExpiredToken для просроченного токена и ErrInvalidToken
// для любого другого дефекта (формат, подпись, алгоритм, содержимое).
func (m *TokenManager) Validate(token string) (Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("неожиданный алгоритм подписи: %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Debug("Auth: Токен просрочен")
			return Identity{}, ErrExpiredToken
		}
		logger.Debug("Auth: Неверный токен", zap.Error(err))
		return Identity{}, ErrInvalidToken
	}

	if c.UserID == uuid.Nil || !c.Role.Valid() {
		logger.Debug("Auth: В токене нет пользователя или роли")
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: c.UserID, Role: c.Role}, nil
}
