// Package storage 访客档案的 Redis 存储：记住昵称
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ayanda4rbn/khasinomvp-sub000/internal/config"
)

const (
	// Redis key 前缀
	guestKeyPrefix = "guest:"

	// 长期未使用的档案自动过期
	guestExpiration = 90 * 24 * time.Hour

	pingTimeout = 3 * time.Second
)

// ErrEmptyName 昵称为空
var ErrEmptyName = errors.New("昵称不能为空")

// Profile 访客档案
type Profile struct {
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`
	LastSeenAt int64  `json:"last_seen_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Connect 按配置连接 Redis 并检查连通性
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}

// LoadProfile 读取档案，不存在时返回 nil
func (rs *RedisStore) LoadProfile(ctx context.Context, key string) (*Profile, error) {
	data, err := rs.client.Get(ctx, guestKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("反序列化访客档案失败: %w", err)
	}
	return &p, nil
}

// SaveProfile 保存档案并刷新过期时间
func (rs *RedisStore) SaveProfile(ctx context.Context, key string, p *Profile) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("序列化访客档案失败: %w", err)
	}
	return rs.client.Set(ctx, guestKeyPrefix+key, data, guestExpiration).Err()
}

// LoadGuestName 读取保存的昵称，没有时返回空串
func (rs *RedisStore) LoadGuestName(ctx context.Context, key string) (string, error) {
	p, err := rs.LoadProfile(ctx, key)
	if err != nil || p == nil {
		return "", err
	}
	return p.Name, nil
}

// SaveGuestName 保存昵称
func (rs *RedisStore) SaveGuestName(ctx context.Context, key, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	p, err := rs.LoadProfile(ctx, key)
	if err != nil {
		return err
	}
	now := rs.now().Unix()
	if p == nil {
		p = &Profile{CreatedAt: now}
	}
	p.Name = name
	p.LastSeenAt = now
	return rs.SaveProfile(ctx, key, p)
}

// DeleteProfile 删除档案
func (rs *RedisStore) DeleteProfile(ctx context.Context, key string) error {
	return rs.client.Del(ctx, guestKeyPrefix+key).Err()
}
