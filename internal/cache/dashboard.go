package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/models/report"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardKey = "taskboard:dashboard"
	defaultTTL   = 5 * time.Minute
)

// DashboardCache хранит сводку администратора в Redis как JSON.
// Ошибки Redis не прокидываются наружу: запрос просто идёт в хранилище.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &DashboardCache{client: client, ttl: ttl}
}

// Connect открывает клиента по настройкам и проверяет соединение.
func Connect(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("подключение к redis: %w", err)
	}
	logger.Info("Cache: Подключение к Redis установлено", zap.String("addr", cfg.RedisAddr))
	return client, nil
}

func (c *DashboardCache) GetDashboard(ctx context.Context) (*report.Dashboard, bool) {
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Cache: Ошибка чтения сводки", zap.Error(err))
		}
		return nil, false
	}

	var d report.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		logger.Warn("Cache: Повреждённая запись сводки", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}
	return &d, true
}

func (c *DashboardCache) SetDashboard(ctx context.Context, d *report.Dashboard) {
	data, err := json.Marshal(d)
	if err != nil {
		logger.Warn("Cache: Не удалось сериализовать сводку", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, dashboardKey, data, c.ttl).Err(); err != nil {
		logger.Warn("Cache: Ошибка записи сводки", zap.Error(err))
	}
}

func (c *DashboardCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, dashboardKey).Err(); err != nil {
		logger.Warn("Cache: Ошибка сброса сводки", zap.Error(err))
	}
}
