package magic

import (
	"context"
	"time"

	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./../services/mock_magic_test.go -package=magic . OrderStorage,CouponStorage,LedgerStorage,RuleStorage,Notifier,CacheStorage

type OrderStorage interface {
	GetOrder(ctx context.Context, organizationID string, orderID string) (model.Order, error)
	GetCartProductIDs(ctx context.Context, cartID string) ([]string, error)
	// последний другой заказ клиента не позже before
	GetPreviousOrderTime(ctx context.Context, organizationID string, clientID string, orderID string, before time.Time) (*time.Time, error)
	GetLastOrderTime(ctx context.Context, organizationID string, clientID string) (*time.Time, error)
	GetInactiveClients(ctx context.Context, before time.Time, limit uint64) ([]model.ClientActivity, error)
}

type CouponStorage interface {
	CouponCodeExists(ctx context.Context, organizationID string, code string) (bool, error)
	CouponCreate(ctx context.Context, coupon model.Coupon) error
}

type LedgerStorage interface {
	// запись журнала и баланс меняются в одной транзакции
	GrantPoints(ctx context.Context, entry model.PointLog) error
	BoosterCreate(ctx context.Context, booster model.PointBooster) error
	// списание всех активных бустеров клиента на заказ, с блокировкой строк
	ConsumeBoosters(ctx context.Context, organizationID string, clientID string, orderID string, now time.Time) (model.BoosterConsumption, error)
	GetBalance(ctx context.Context, organizationID string, clientID string) (model.PointBalance, error)
}

type RuleStorage interface {
	GetCandidateRules(ctx context.Context, organizationID string, event model.EventType, scope string, limit uint64) ([]model.MagicRule, error)
	DisableRule(ctx context.Context, ruleID uuid.UUID) error
	ExecutionExists(ctx context.Context, ruleID uuid.UUID, orderID string) (bool, error)
	// false - запись уже существует
	ExecutionClaim(ctx context.Context, execution model.RuleExecution) (bool, error)
	ExecutionComplete(ctx context.Context, ruleID uuid.UUID, orderID string, actions int) error
	ExecutionRelease(ctx context.Context, ruleID uuid.UUID, orderID string) error
}

type Notifier interface {
	Enqueue(ctx context.Context, notification model.Notification) error
}

type CacheStorage interface {
	GetBalance(ctx context.Context, organizationID string, clientID string) (model.PointBalance, error)
	SetBalance(ctx context.Context, balance model.PointBalance) error
	InvalidateBalance(ctx context.Context, organizationID string, clientID string) error
}

type RuleEvaluator interface {
	EvaluateRulesForOrder(ctx context.Context, organizationID string, orderID string, event model.EventType) ([]model.RuleResult, error)
	EvaluateRulesForClient(ctx context.Context, organizationID string, clientID string, event model.EventType) ([]model.RuleResult, error)
}

type BalanceReader interface {
	GetBalance(ctx context.Context, organizationID string, clientID string) (model.PointBalance, error)
}

type RuleReader interface {
	GetCandidateRules(ctx context.Context, organizationID string, event model.EventType, scope string, limit uint64) ([]model.MagicRule, error)
}
