package magic

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HTTPPort       string
	PurchaseTZ     *time.Location
	RulesLimit     uint64
	RuleScope      string
	OrdersCount    int
	SweepDays      int
	SweepCount     int
	SweepLimit     uint64
	CouponAttempts int
}

// .env необязателен, переменные окружения имеют приоритет
func LoadDotEnv() {
	_ = godotenv.Load()
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       os.Getenv("MAGIC_HTTP_PORT"),
		RulesLimit:     uint64(IntEnv("MAGIC_RULES_LIMIT", 50)),
		RuleScope:      StringEnv("MAGIC_RULE_SCOPE", "base"),
		OrdersCount:    IntEnv("MAGIC_ORDERS_COUNT", 5),
		SweepDays:      IntEnv("MAGIC_SWEEP_DAYS", 30),
		SweepCount:     IntEnv("MAGIC_SWEEP_COUNT", 3),
		SweepLimit:     uint64(IntEnv("MAGIC_SWEEP_LIMIT", 1000)),
		CouponAttempts: IntEnv("MAGIC_COUPON_ATTEMPTS", 20),
	}
	tz := StringEnv("MAGIC_PURCHASE_TZ", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("env MAGIC_PURCHASE_TZ: %w", err)
	}
	cfg.PurchaseTZ = loc
	return cfg, nil
}

// Число из окружения, def - если не задано, некорректно или меньше 1
func IntEnv(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func StringEnv(name string, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func NewLogger() (*zap.Logger, error) {
	if os.Getenv("MAGIC_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
