package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daneswara/kafe-pos/config"
	"github.com/daneswara/kafe-pos/utils"
)

// CacheService menyimpan hasil query menu akses per role di redis.
// Jika CACHE_ADDR kosong, seluruh operasi menjadi no-op dan query jatuh
// langsung ke database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService() *CacheService {
	cfg := config.Get()
	if cfg.CacheAddr == "" {
		return &CacheService{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.CacheAddr,
		Password:     cfg.CachePassword,
		DB:           cfg.CacheDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		utils.ErrorLogger.Printf("Redis tidak terjangkau (%v), cache dimatikan", err)
		return &CacheService{}
	}

	return &CacheService{client: client, ttl: cfg.CacheTTL}
}

func (cs *CacheService) Enabled() bool {
	return cs != nil && cs.client != nil
}

func menuAccessKey(roleID uint) string {
	return fmt.Sprintf("menu_access:role:%d", roleID)
}

// GetAccessibleMenus mengambil cache menu untuk satu role; ok=false saat miss.
func (cs *CacheService) GetAccessibleMenus(ctx context.Context, roleID uint, dest interface{}) bool {
	if !cs.Enabled() {
		return false
	}

	val, err := cs.client.Get(ctx, menuAccessKey(roleID)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		utils.ErrorLogger.Printf("Gagal membaca cache menu role %d: %v", roleID, err)
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		utils.ErrorLogger.Printf("Cache menu role %d korup: %v", roleID, err)
		return false
	}
	return true
}

func (cs *CacheService) SetAccessibleMenus(ctx context.Context, roleID uint, menus interface{}) {
	if !cs.Enabled() {
		return
	}

	payload, err := json.Marshal(menus)
	if err != nil {
		return
	}
	if err := cs.client.Set(ctx, menuAccessKey(roleID), payload, cs.ttl).Err(); err != nil {
		utils.ErrorLogger.Printf("Gagal menulis cache menu role %d: %v", roleID, err)
	}
}

// InvalidateMenus membuang seluruh cache menu, dipanggil setiap mutasi
// menu atau menu access.
func (cs *CacheService) InvalidateMenus(ctx context.Context) {
	if !cs.Enabled() {
		return
	}

	iter := cs.client.Scan(ctx, 0, "menu_access:role:*", 100).Iterator()
	for iter.Next(ctx) {
		cs.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.ErrorLogger.Printf("Gagal invalidasi cache menu: %v", err)
	}
}
