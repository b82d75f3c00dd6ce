package facility

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
)

const (
	activeKey   = "parking:facility:active"
	scheduleKey = "parking:facility:%d:schedule:%d"
)

// Cache кеширует активную конфигурацию и расписания в Redis
// Ошибки Redis не прерывают запрос: при недоступности кеша читаем из репозитория
type Cache struct {
	repo   Repository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger Logger
}

// NewCache создает кеш поверх репозитория
// При rdb == nil или ttl <= 0 все вызовы идут напрямую в репозиторий
func NewCache(repo Repository, rdb redis.Cmdable, ttl time.Duration, logger Logger) *Cache {
	return &Cache{repo: repo, rdb: rdb, ttl: ttl, logger: logger}
}

// GetActive возвращает активную конфигурацию
// Внутри транзакции кеш не используется, чтобы не читать устаревшие данные
func (c *Cache) GetActive(ctx context.Context) (*domain.FacilityConfig, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.repo.GetActive(ctx)
	}

	var cached domain.FacilityConfig
	if c.read(ctx, activeKey, &cached) {
		return &cached, nil
	}

	config, err := c.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	c.write(ctx, activeKey, config)
	return config, nil
}

// GetScheduleForDay возвращает расписание конфигурации на день недели
func (c *Cache) GetScheduleForDay(ctx context.Context, configID int64, day time.Weekday) (*domain.Schedule, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.repo.GetScheduleForDay(ctx, configID, day)
	}

	key := fmt.Sprintf(scheduleKey, configID, int(day))

	var cached domain.Schedule
	if c.read(ctx, key, &cached) {
		return &cached, nil
	}

	schedule, err := c.repo.GetScheduleForDay(ctx, configID, day)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, schedule)
	return schedule, nil
}

// InvalidateActive сбрасывает закешированную активную конфигурацию
func (c *Cache) InvalidateActive(ctx context.Context) {
	c.del(ctx, activeKey)
}

// InvalidateSchedule сбрасывает расписание дня и активную конфигурацию, которая его содержит
func (c *Cache) InvalidateSchedule(ctx context.Context, configID int64, day time.Weekday) {
	c.del(ctx, fmt.Sprintf(scheduleKey, configID, int(day)), activeKey)
}

func (c *Cache) enabled() bool {
	return c.rdb != nil && c.ttl > 0
}

func (c *Cache) read(ctx context.Context, key string, out interface{}) bool {
	if !c.enabled() {
		return false
	}

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("facility cache: get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(val, out); err != nil {
		c.logger.Warn("facility cache: decode %s: %v", key, err)
		return false
	}

	return true
}

func (c *Cache) write(ctx context.Context, key string, val interface{}) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("facility cache: encode %s: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("facility cache: set %s: %v", key, err)
	}
}

func (c *Cache) del(ctx context.Context, keys ...string) {
	if !c.enabled() {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("facility cache: del %v: %v", keys, err)
	}
}
