package magic

import (
	"time"

	"github.com/google/uuid"
)

// Заказ
type Order struct {
	ID                     string
	OrganizationID         string
	ClientID               string
	UserID                 string
	Country                string
	CartID                 string
	DatePaid               *time.Time
	DateCreated            time.Time
	AffiliatePointsAwarded *int64 // баллы, уже начисленные за покупку
}

// Дата оплаты, если нет - дата создания
func (o Order) PurchasedAt() time.Time {
	if o.DatePaid != nil {
		return *o.DatePaid
	}
	return o.DateCreated
}

// Клиент и дата его последнего заказа (для sweep)
type ClientActivity struct {
	OrganizationID string
	ClientID       string
	LastOrderAt    time.Time
}

// Метки операций по баллам
const (
	PointActionMagicRule      = "magic_rule"
	PointActionMultiplier     = "magic_multiplier"
	PointActionNextOrderBonus = "next_order_bonus"
)

// Запись журнала баллов, неизменяемая
type PointLog struct {
	ID             uuid.UUID
	OrganizationID string
	ClientID       string
	Points         int64 // со знаком
	Action         string
	Description    string
	SourceClientID string
	OrderID        string
	CreatedAt      time.Time
}

// Баланс клиента в организации
type PointBalance struct {
	OrganizationID string    `json:"organizationId"`
	ClientID       string    `json:"clientId"`
	PointsCurrent  int64     `json:"pointsCurrent"`
	PointsSpent    int64     `json:"pointsSpent"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Изменение баланса для записи журнала
func BalanceDelta(points int64) (current int64, spent int64) {
	if points < 0 {
		return points, -points
	}
	return points, 0
}

type BoosterStatus string

const (
	BoosterPending  BoosterStatus = "pending"
	BoosterConsumed BoosterStatus = "consumed"
)

// Отложенные баллы на следующий заказ
type PointBooster struct {
	ID              uuid.UUID
	OrganizationID  string
	ClientID        string
	Points          int64
	Description     string
	Status          BoosterStatus
	ExpiresAt       *time.Time
	SourceRuleID    uuid.UUID
	SourceOrderID   string
	ConsumedOrderID string
	ConsumedAt      *time.Time
	CreatedAt       time.Time
}

func (b PointBooster) Active(now time.Time) bool {
	return b.Status == BoosterPending && (b.ExpiresAt == nil || b.ExpiresAt.After(now))
}

// Результат списания бустеров на заказ
type BoosterConsumption struct {
	BoosterIDs []uuid.UUID
	Points     int64
}

// Купон
type Coupon struct {
	ID                  uuid.UUID
	OrganizationID      string
	Code                string
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
	StartDate           *time.Time
	ExpirationDate      *time.Time
	ClientID            string
	CreatedAt           time.Time
}

// Уведомление для очереди рассылки
type Notification struct {
	OrganizationID string              `json:"organizationId"`
	OrderID        string              `json:"orderId,omitempty"`
	Type           string              `json:"type"`
	Trigger        string              `json:"trigger"`
	Channels       []Channel           `json:"channels"`
	Payload        NotificationPayload `json:"payload"`
}

type NotificationPayload struct {
	Message   string            `json:"message"`
	Subject   string            `json:"subject,omitempty"`
	Variables map[string]string `json:"variables,omitempty"`
	Country   string            `json:"country,omitempty"`
	UserID    string            `json:"userId,omitempty"`
	ClientID  string            `json:"clientId,omitempty"`
	URL       string            `json:"url,omitempty"`
	TicketID  string            `json:"ticketId,omitempty"`
}

const (
	NotificationTypeMarketing = "marketing"
	NotificationTriggerMagic  = "magic_rule"
)
