package services

import (
	"context"
	"encoding/json"
	"time"

	"crisislink-http-service/config"

	"github.com/go-redis/redis/v8"
)

// 缓存键
const (
	cacheKeyReliefEffort   = "dashboard:relief_effort"
	cacheKeyEmergencyLevel = "dashboard:emergency_level"
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheReliefEffort(report interface{}, expiration time.Duration) error
	GetCachedReliefEffort(dest interface{}) error
	CacheEmergencyLevel(level interface{}, expiration time.Duration) error
	GetCachedEmergencyLevel(dest interface{}) error
	InvalidateDashboard() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheReliefEffort 缓存救援行动总览
func (s *RedisService) CacheReliefEffort(report interface{}, expiration time.Duration) error {
	return s.Set(cacheKeyReliefEffort, report, expiration)
}

// GetCachedReliefEffort 读取缓存的救援行动总览
func (s *RedisService) GetCachedReliefEffort(dest interface{}) error {
	return s.Get(cacheKeyReliefEffort, dest)
}

// CacheEmergencyLevel 缓存当前应急级别
func (s *RedisService) CacheEmergencyLevel(level interface{}, expiration time.Duration) error {
	return s.Set(cacheKeyEmergencyLevel, level, expiration)
}

// GetCachedEmergencyLevel 读取缓存的当前应急级别
func (s *RedisService) GetCachedEmergencyLevel(dest interface{}) error {
	return s.Get(cacheKeyEmergencyLevel, dest)
}

// InvalidateDashboard 使看板缓存失效，协调写入后调用
func (s *RedisService) InvalidateDashboard() error {
	return s.Client.Del(s.Ctx, cacheKeyReliefEffort, cacheKeyEmergencyLevel).Err()
}
