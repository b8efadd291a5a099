package magic

import (
	"time"

	"github.com/google/uuid"
)

type ConditionKind string

const (
	ConditionAlways            ConditionKind = "always"
	ConditionCustomerInactive  ConditionKind = "customer_inactive_for_days"
	ConditionPurchasedProduct  ConditionKind = "purchased_product_in_list"
	ConditionPurchaseTimeRange ConditionKind = "purchase_time_in_window"
)

// Условие правила. Набор реализаций закрыт.
type Condition interface {
	Kind() ConditionKind
	condition()
}

type AlwaysCondition struct{}

type CustomerInactiveCondition struct {
	Days int
}

type PurchasedProductCondition struct {
	ProductIDs []string
}

// Окно включительное, FromHour > ToHour - через полночь, FromHour == ToHour - любой час
type PurchaseTimeWindowCondition struct {
	FromHour int
	ToHour   int
}

func (AlwaysCondition) Kind() ConditionKind             { return ConditionAlways }
func (CustomerInactiveCondition) Kind() ConditionKind   { return ConditionCustomerInactive }
func (PurchasedProductCondition) Kind() ConditionKind   { return ConditionPurchasedProduct }
func (PurchaseTimeWindowCondition) Kind() ConditionKind { return ConditionPurchaseTimeRange }

func (AlwaysCondition) condition()             {}
func (CustomerInactiveCondition) condition()   {}
func (PurchasedProductCondition) condition()   {}
func (PurchaseTimeWindowCondition) condition() {}

type ActionKind string

const (
	ActionSendCoupon       ActionKind = "send_message_with_coupon"
	ActionRecommendProduct ActionKind = "recommend_product"
	ActionGrantPoints      ActionKind = "grant_affiliate_points"
	ActionMultiplyPoints   ActionKind = "multiply_affiliate_points_for_order"
	ActionQueueBooster     ActionKind = "queue_next_order_points"
)

// Действие правила. Набор реализаций закрыт.
type Action interface {
	Kind() ActionKind
	action()
}

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelTelegram Channel = "telegram"
)

type MessageTemplate struct {
	Channels []Channel
	Subject  string
	Body     string
}

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type CouponTemplate struct {
	Name                string
	Description         string
	DiscountType        DiscountType
	DiscountAmount      float64
	UsageLimit          *int
	UsageLimitPerClient *int
	MinSpend            *float64
	MaxSpend            *float64
	Countries           []string
	Visible             bool
	Stackable           bool
	ValidFrom           *time.Time
	ValidUntil          *time.Time
	ValidForDays        *int
}

type SendCouponAction struct {
	Coupon  CouponTemplate
	Message MessageTemplate
}

type RecommendProductAction struct {
	ProductID string
	Message   MessageTemplate
}

// Points может быть отрицательным - списание
type GrantPointsAction struct {
	Points      int64
	Label       string
	Description string
}

type MultiplyPointsAction struct {
	Multiplier  float64
	Label       string
	Description string
}

type QueueBoosterAction struct {
	Points      int64
	ExpiresAt   *time.Time
	Description string
}

func (SendCouponAction) Kind() ActionKind       { return ActionSendCoupon }
func (RecommendProductAction) Kind() ActionKind { return ActionRecommendProduct }
func (GrantPointsAction) Kind() ActionKind      { return ActionGrantPoints }
func (MultiplyPointsAction) Kind() ActionKind   { return ActionMultiplyPoints }
func (QueueBoosterAction) Kind() ActionKind     { return ActionQueueBooster }

func (SendCouponAction) action()       {}
func (RecommendProductAction) action() {}
func (GrantPointsAction) action()      {}
func (MultiplyPointsAction) action()   {}
func (QueueBoosterAction) action()     {}

// Область правил, которые обрабатывает движок
const RuleScopeBase = "base"

// Правило. Остановка после первого совпадения и однократный запуск на заказ
// не настраиваются - это свойства движка.
type MagicRule struct {
	ID             uuid.UUID
	OrganizationID string
	Name           string
	Enabled        bool
	Scope          string
	AnyOfEvents    []EventType
	Conditions     []Condition
	Actions        []Action
	StartsAt       *time.Time
	EndsAt         *time.Time
}

func (r MagicRule) ListensTo(event EventType) bool {
	for _, e := range r.AnyOfEvents {
		if e == event {
			return true
		}
	}
	return false
}

// Проверка окна действия правила
func (r MagicRule) ScheduledAt(now time.Time) bool {
	if r.StartsAt != nil && now.Before(*r.StartsAt) {
		return false
	}
	if r.EndsAt != nil && now.After(*r.EndsAt) {
		return false
	}
	return true
}

func (r MagicRule) Expired(now time.Time) bool {
	return r.EndsAt != nil && now.After(*r.EndsAt)
}

// Причины, по которым правило не сработало
const (
	ReasonDisabled         = "disabled"
	ReasonEventMismatch    = "event_mismatch"
	ReasonConditionFailed  = "condition_failed"
	ReasonAlreadyExecuted  = "already_executed"
	ReasonNoActionExecuted = "no_action_executed"
	ReasonNotEvaluated     = "stopped_after_match"
)

type ActionExecuted struct {
	Kind       ActionKind `json:"kind"`
	Points     int64      `json:"points,omitempty"`
	CouponID   string     `json:"couponId,omitempty"`
	CouponCode string     `json:"couponCode,omitempty"`
	ProductID  string     `json:"productId,omitempty"`
	Channels   []Channel  `json:"channels,omitempty"`
}

type RuleResult struct {
	RuleID          uuid.UUID        `json:"ruleId"`
	RuleName        string           `json:"ruleName"`
	Matched         bool             `json:"matched"`
	Reason          string           `json:"reason,omitempty"`
	ActionsExecuted []ActionExecuted `json:"actionsExecuted,omitempty"`
}

type ExecutionStatus string

const (
	ExecutionClaimed   ExecutionStatus = "claimed"
	ExecutionCompleted ExecutionStatus = "completed"
)

// Запись о срабатывании правила по заказу, уникальна по (RuleID, OrderID)
type RuleExecution struct {
	RuleID          uuid.UUID
	OrderID         string
	OrganizationID  string
	ClientID        string
	Status          ExecutionStatus
	ActionsExecuted int
	ExecutedAt      time.Time
}
