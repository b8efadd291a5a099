package magic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidRule         = errors.New("invalid rule")
	ErrInvalidEvent        = errors.New("invalid event")
	ErrCouponCodeExhausted = errors.New("unique coupon code not generated")
)

// Ошибка разбора условий/действий правила из хранилища
type RuleValidationError struct {
	RuleID uuid.UUID
	Field  string
	Reason string
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("rule %s: %s: %s", e.RuleID, e.Field, e.Reason)
}

func (e *RuleValidationError) Unwrap() error {
	return ErrInvalidRule
}

// JSON-формат условия в хранилище
type conditionJSON struct {
	Kind       ConditionKind `json:"kind"`
	Days       *int          `json:"days,omitempty"`
	ProductIDs []string      `json:"productIds,omitempty"`
	FromHour   *int          `json:"fromHour,omitempty"`
	ToHour     *int          `json:"toHour,omitempty"`
}

type couponJSON struct {
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	DiscountType        DiscountType `json:"discountType"`
	DiscountAmount      float64      `json:"discountAmount"`
	UsageLimit          *int         `json:"usageLimit,omitempty"`
	UsageLimitPerClient *int         `json:"usageLimitPerClient,omitempty"`
	MinSpend            *float64     `json:"minSpend,omitempty"`
	MaxSpend            *float64     `json:"maxSpend,omitempty"`
	Countries           []string     `json:"countries,omitempty"`
	Visible             bool         `json:"visible"`
	Stackable           bool         `json:"stackable"`
	ValidFrom           *time.Time   `json:"validFrom,omitempty"`
	ValidUntil          *time.Time   `json:"validUntil,omitempty"`
	ValidForDays        *int         `json:"validForDays,omitempty"`
}

// JSON-формат действия в хранилище
type actionJSON struct {
	Kind        ActionKind  `json:"kind"`
	Points      *int64      `json:"points,omitempty"`
	Multiplier  *float64    `json:"multiplier,omitempty"`
	Action      string      `json:"action,omitempty"`
	Description string      `json:"description,omitempty"`
	ExpiresAt   *time.Time  `json:"expiresAt,omitempty"`
	ProductID   string      `json:"productId,omitempty"`
	Channels    []Channel   `json:"channels,omitempty"`
	Subject     string      `json:"subject,omitempty"`
	Message     string      `json:"message,omitempty"`
	Coupon      *couponJSON `json:"coupon,omitempty"`
}

// Разбор условий правила. Пустой список - безусловное совпадение.
func DecodeConditions(ruleID uuid.UUID, raw []byte) ([]Condition, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	var items []conditionJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &RuleValidationError{ruleID, "conditions", err.Error()}
	}
	conds := make([]Condition, 0, len(items))
	for i, c := range items {
		cond, reason := c.decode()
		if reason != "" {
			return nil, &RuleValidationError{ruleID, fmt.Sprintf("conditions[%d]", i), reason}
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func (c conditionJSON) decode() (Condition, string) {
	switch c.Kind {
	case ConditionAlways:
		return AlwaysCondition{}, ""
	case ConditionCustomerInactive:
		if c.Days == nil || *c.Days < 0 {
			return nil, "days must be a non-negative number"
		}
		return CustomerInactiveCondition{Days: *c.Days}, ""
	case ConditionPurchasedProduct:
		if len(c.ProductIDs) == 0 {
			return nil, "productIds is empty"
		}
		return PurchasedProductCondition{ProductIDs: c.ProductIDs}, ""
	case ConditionPurchaseTimeRange:
		if c.FromHour == nil || c.ToHour == nil {
			return nil, "fromHour and toHour are required"
		}
		if !validHour(*c.FromHour) || !validHour(*c.ToHour) {
			return nil, "hours must be within 0..23"
		}
		return PurchaseTimeWindowCondition{FromHour: *c.FromHour, ToHour: *c.ToHour}, ""
	}
	return nil, fmt.Sprintf("unknown condition kind %q", c.Kind)
}

func validHour(h int) bool {
	return h >= 0 && h <= 23
}

// Разбор действий правила. Список действий не может быть пустым.
func DecodeActions(ruleID uuid.UUID, raw []byte) ([]Action, error) {
	var items []actionJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &RuleValidationError{ruleID, "actions", err.Error()}
	}
	if len(items) == 0 {
		return nil, &RuleValidationError{ruleID, "actions", "at least one action is required"}
	}
	actions := make([]Action, 0, len(items))
	for i, a := range items {
		act, reason := a.decode()
		if reason != "" {
			return nil, &RuleValidationError{ruleID, fmt.Sprintf("actions[%d]", i), reason}
		}
		actions = append(actions, act)
	}
	return actions, nil
}

func (a actionJSON) decode() (Action, string) {
	switch a.Kind {
	case ActionSendCoupon:
		if a.Coupon == nil {
			return nil, "coupon is required"
		}
		coupon, reason := a.Coupon.decode()
		if reason != "" {
			return nil, reason
		}
		msg, reason := a.message()
		if reason != "" {
			return nil, reason
		}
		return SendCouponAction{Coupon: coupon, Message: msg}, ""
	case ActionRecommendProduct:
		if a.ProductID == "" {
			return nil, "productId is required"
		}
		msg, reason := a.message()
		if reason != "" {
			return nil, reason
		}
		return RecommendProductAction{ProductID: a.ProductID, Message: msg}, ""
	case ActionGrantPoints:
		if a.Points == nil {
			return nil, "points is required"
		}
		return GrantPointsAction{Points: *a.Points, Label: a.Action, Description: a.Description}, ""
	case ActionMultiplyPoints:
		if a.Multiplier == nil || *a.Multiplier <= 0 {
			return nil, "multiplier must be positive"
		}
		return MultiplyPointsAction{Multiplier: *a.Multiplier, Label: a.Action, Description: a.Description}, ""
	case ActionQueueBooster:
		if a.Points == nil || *a.Points <= 0 {
			return nil, "points must be positive"
		}
		return QueueBoosterAction{Points: *a.Points, ExpiresAt: a.ExpiresAt, Description: a.Description}, ""
	}
	return nil, fmt.Sprintf("unknown action kind %q", a.Kind)
}

func (a actionJSON) message() (MessageTemplate, string) {
	if len(a.Channels) == 0 {
		return MessageTemplate{}, "channels is empty"
	}
	for _, ch := range a.Channels {
		if ch != ChannelEmail && ch != ChannelTelegram {
			return MessageTemplate{}, fmt.Sprintf("unknown channel %q", ch)
		}
	}
	if a.Message == "" {
		return MessageTemplate{}, "message is required"
	}
	return MessageTemplate{Channels: a.Channels, Subject: a.Subject, Body: a.Message}, ""
}

func (c couponJSON) decode() (CouponTemplate, string) {
	if c.DiscountType != DiscountPercent && c.DiscountType != DiscountFixed {
		return CouponTemplate{}, fmt.Sprintf("unknown discount type %q", c.DiscountType)
	}
	if c.DiscountAmount <= 0 {
		return CouponTemplate{}, "discountAmount must be positive"
	}
	if c.DiscountType == DiscountPercent && c.DiscountAmount > 100 {
		return CouponTemplate{}, "percent discount exceeds 100"
	}
	if c.ValidForDays != nil && *c.ValidForDays <= 0 {
		return CouponTemplate{}, "validForDays must be positive"
	}
	return CouponTemplate{
		Name:                c.Name,
		Description:         c.Description,
		DiscountType:        c.DiscountType,
		DiscountAmount:      c.DiscountAmount,
		UsageLimit:          c.UsageLimit,
		UsageLimitPerClient: c.UsageLimitPerClient,
		MinSpend:            c.MinSpend,
		MaxSpend:            c.MaxSpend,
		Countries:           c.Countries,
		Visible:             c.Visible,
		Stackable:           c.Stackable,
		ValidFrom:           c.ValidFrom,
		ValidUntil:          c.ValidUntil,
		ValidForDays:        c.ValidForDays,
	}, ""
}

// Обратное преобразование в формат хранилища
func EncodeConditions(conds []Condition) ([]byte, error) {
	items := make([]conditionJSON, 0, len(conds))
	for _, c := range conds {
		item := conditionJSON{Kind: c.Kind()}
		switch v := c.(type) {
		case CustomerInactiveCondition:
			item.Days = &v.Days
		case PurchasedProductCondition:
			item.ProductIDs = v.ProductIDs
		case PurchaseTimeWindowCondition:
			item.FromHour, item.ToHour = &v.FromHour, &v.ToHour
		}
		items = append(items, item)
	}
	return json.Marshal(items)
}

func EncodeActions(actions []Action) ([]byte, error) {
	items := make([]actionJSON, 0, len(actions))
	for _, a := range actions {
		item := actionJSON{Kind: a.Kind()}
		switch v := a.(type) {
		case SendCouponAction:
			c := v.Coupon
			item.Coupon = &couponJSON{
				Name:                c.Name,
				Description:         c.Description,
				DiscountType:        c.DiscountType,
				DiscountAmount:      c.DiscountAmount,
				UsageLimit:          c.UsageLimit,
				UsageLimitPerClient: c.UsageLimitPerClient,
				MinSpend:            c.MinSpend,
				MaxSpend:            c.MaxSpend,
				Countries:           c.Countries,
				Visible:             c.Visible,
				Stackable:           c.Stackable,
				ValidFrom:           c.ValidFrom,
				ValidUntil:          c.ValidUntil,
				ValidForDays:        c.ValidForDays,
			}
			item.Channels, item.Subject, item.Message = v.Message.Channels, v.Message.Subject, v.Message.Body
		case RecommendProductAction:
			item.ProductID = v.ProductID
			item.Channels, item.Subject, item.Message = v.Message.Channels, v.Message.Subject, v.Message.Body
		case GrantPointsAction:
			item.Points, item.Action, item.Description = &v.Points, v.Label, v.Description
		case MultiplyPointsAction:
			item.Multiplier, item.Action, item.Description = &v.Multiplier, v.Label, v.Description
		case QueueBoosterAction:
			item.Points, item.ExpiresAt, item.Description = &v.Points, v.ExpiresAt, v.Description
		default:
			return nil, fmt.Errorf("unknown action kind %q", a.Kind())
		}
		items = append(items, item)
	}
	return json.Marshal(items)
}

// JSON-представление правила для API
type RuleView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Enabled     bool            `json:"enabled"`
	Scope       string          `json:"scope"`
	AnyOfEvents []EventType     `json:"anyOfEvents"`
	Conditions  json.RawMessage `json:"conditions"`
	Actions     json.RawMessage `json:"actions"`
	StartsAt    *time.Time      `json:"startsAt,omitempty"`
	EndsAt      *time.Time      `json:"endsAt,omitempty"`
}

func NewRuleView(r MagicRule) (RuleView, error) {
	conds, err := EncodeConditions(r.Conditions)
	if err != nil {
		return RuleView{}, err
	}
	actions, err := EncodeActions(r.Actions)
	if err != nil {
		return RuleView{}, err
	}
	return RuleView{
		ID:          r.ID,
		Name:        r.Name,
		Enabled:     r.Enabled,
		Scope:       r.Scope,
		AnyOfEvents: r.AnyOfEvents,
		Conditions:  conds,
		Actions:     actions,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
	}, nil
}
