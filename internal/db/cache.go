package magic

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	model "github.com/glkeru/loyalty/magic/internal/models"
	redis "github.com/redis/go-redis/v9"
)

const balanceTTL = 5 * time.Minute

type CacheService struct {
	client *redis.Client
}

func NewCacheService() (serv *CacheService, err error) {
	// config
	addr := os.Getenv("MAGIC_CACHE_URL")
	if addr == "" {
		return nil, fmt.Errorf("env MAGIC_CACHE_URL is not set")
	}
	user := os.Getenv("MAGIC_CACHE_USER")
	pwd := os.Getenv("MAGIC_CACHE_PWD")
	// redis
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func balanceKey(organizationID string, clientID string) string {
	return "magic:balance:" + organizationID + ":" + clientID
}

func (c *CacheService) GetBalance(ctx context.Context, organizationID string, clientID string) (balance model.PointBalance, err error) {
	val, err := c.client.Get(ctx, balanceKey(organizationID, clientID)).Bytes()
	if err == redis.Nil {
		return balance, fmt.Errorf("balance %w", model.ErrNotFound)
	} else if err != nil {
		return balance, err
	}
	err = json.Unmarshal(val, &balance)
	if err != nil {
		return model.PointBalance{}, err
	}
	return balance, nil
}

func (c *CacheService) SetBalance(ctx context.Context, balance model.PointBalance) error {
	val, err := json.Marshal(balance)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, balanceKey(balance.OrganizationID, balance.ClientID), val, balanceTTL).Err()
}

func (c *CacheService) InvalidateBalance(ctx context.Context, organizationID string, clientID string) error {
	return c.client.Del(ctx, balanceKey(organizationID, clientID)).Err()
}

func (c *CacheService) Close() error {
	return c.client.Close()
}
