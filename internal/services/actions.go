package magic

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCouponAttempts = 20

// Исполнитель действий правил
type ActionService struct {
	logger   *zap.Logger
	coupons  interf.CouponStorage
	points   *PointsService
	notifier interf.Notifier

	// генератор кода купона и кол-во попыток получить уникальный код
	NewCode  func() (string, error)
	Attempts int
	Now      func() time.Time
}

func NewActionService(logger *zap.Logger, coupons interf.CouponStorage, points *PointsService, notifier interf.Notifier) *ActionService {
	return &ActionService{
		logger:   logger,
		coupons:  coupons,
		points:   points,
		notifier: notifier,
		NewCode:  GenerateCouponCode,
		Attempts: defaultCouponAttempts,
		Now:      time.Now,
	}
}

func (a *ActionService) Execute(ctx context.Context, rule model.MagicRule, action model.Action, event model.EventPayload) (model.ActionExecuted, bool, error) {
	executed := model.ActionExecuted{Kind: action.Kind()}
	switch v := action.(type) {
	case model.SendCouponAction:
		coupon, err := a.IssueCoupon(ctx, v.Coupon, event)
		if err != nil {
			return executed, false, err
		}
		vars := baseVariables(event)
		vars["coupon_code"] = coupon.Code
		vars["coupon_expires"] = ""
		if coupon.ExpirationDate != nil {
			vars["coupon_expires"] = coupon.ExpirationDate.Format("2006-01-02")
		}
		err = a.Notify(ctx, v.Message, vars, event)
		if err != nil {
			return executed, false, err
		}
		executed.CouponID = coupon.ID.String()
		executed.CouponCode = coupon.Code
		executed.Channels = v.Message.Channels
		return executed, true, nil

	case model.RecommendProductAction:
		vars := baseVariables(event)
		vars["product_id"] = v.ProductID
		err := a.Notify(ctx, v.Message, vars, event)
		if err != nil {
			return executed, false, err
		}
		executed.ProductID = v.ProductID
		executed.Channels = v.Message.Channels
		return executed, true, nil

	case model.GrantPointsAction:
		entry := model.PointLog{
			OrganizationID: event.OrganizationID,
			ClientID:       event.ClientID,
			Points:         v.Points,
			Action:         orDefault(v.Label, model.PointActionMagicRule),
			Description:    orDefault(v.Description, "Magic rule: "+rule.Name),
			OrderID:        event.OrderID(),
		}
		err := a.points.GrantAffiliatePointsOnce(ctx, entry)
		if err != nil {
			return executed, false, err
		}
		executed.Points = v.Points
		return executed, true, nil

	case model.MultiplyPointsAction:
		extra := MultiplierDelta(event.BaseAffiliatePointsAwarded(), v.Multiplier)
		if extra == 0 {
			return executed, false, nil
		}
		entry := model.PointLog{
			OrganizationID: event.OrganizationID,
			ClientID:       event.ClientID,
			Points:         extra,
			Action:         orDefault(v.Label, model.PointActionMultiplier),
			Description:    orDefault(v.Description, fmt.Sprintf("Points x%g for order %s", v.Multiplier, event.OrderID())),
			OrderID:        event.OrderID(),
		}
		err := a.points.GrantAffiliatePointsOnce(ctx, entry)
		if err != nil {
			return executed, false, err
		}
		executed.Points = extra
		return executed, true, nil

	case model.QueueBoosterAction:
		booster := model.PointBooster{
			OrganizationID: event.OrganizationID,
			ClientID:       event.ClientID,
			Points:         v.Points,
			Description:    v.Description,
			ExpiresAt:      v.ExpiresAt,
			SourceRuleID:   rule.ID,
			SourceOrderID:  event.OrderID(),
		}
		err := a.points.QueueBooster(ctx, booster)
		if err != nil {
			return executed, false, err
		}
		executed.Points = v.Points
		return executed, true, nil
	}
	return executed, false, fmt.Errorf("%w: unknown action kind %q", model.ErrInvalidRule, action.Kind())
}

// Доп. баллы сверх уже начисленных: round(base * (multiplier - 1))
func MultiplierDelta(base int64, multiplier float64) int64 {
	if base == 0 || multiplier == 1 {
		return 0
	}
	return int64(math.Round(float64(base) * (multiplier - 1)))
}

// Создание купона с уникальным в организации кодом
func (a *ActionService) IssueCoupon(ctx context.Context, tmpl model.CouponTemplate, event model.EventPayload) (model.Coupon, error) {
	code, err := a.uniqueCode(ctx, event.OrganizationID)
	if err != nil {
		return model.Coupon{}, err
	}
	now := a.Now()
	expires := tmpl.ValidUntil
	if expires == nil && tmpl.ValidForDays != nil {
		t := now.AddDate(0, 0, *tmpl.ValidForDays)
		expires = &t
	}
	coupon := model.Coupon{
		ID:                  uuid.New(),
		OrganizationID:      event.OrganizationID,
		Code:                code,
		Name:                orDefault(tmpl.Name, code),
		Description:         tmpl.Description,
		DiscountType:        tmpl.DiscountType,
		DiscountAmount:      tmpl.DiscountAmount,
		UsageLimit:          tmpl.UsageLimit,
		UsageLimitPerClient: tmpl.UsageLimitPerClient,
		MinSpend:            tmpl.MinSpend,
		MaxSpend:            tmpl.MaxSpend,
		Countries:           tmpl.Countries,
		Visible:             tmpl.Visible,
		Stackable:           tmpl.Stackable,
		StartDate:           tmpl.ValidFrom,
		ExpirationDate:      expires,
		ClientID:            event.ClientID,
		CreatedAt:           now,
	}
	err = a.coupons.CouponCreate(ctx, coupon)
	if err != nil {
		return model.Coupon{}, err
	}
	a.logger.Info("coupon issued",
		zap.String("organization", coupon.OrganizationID),
		zap.String("client", coupon.ClientID),
		zap.String("code", coupon.Code))
	return coupon, nil
}

func (a *ActionService) uniqueCode(ctx context.Context, organizationID string) (string, error) {
	attempts := a.Attempts
	if attempts <= 0 {
		attempts = defaultCouponAttempts
	}
	for i := 0; i < attempts; i++ {
		code, err := a.NewCode()
		if err != nil {
			return "", err
		}
		exists, err := a.coupons.CouponCodeExists(ctx, organizationID, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", model.ErrCouponCodeExhausted, attempts)
}

// Постановка уведомления в очередь рассылки
func (a *ActionService) Notify(ctx context.Context, tmpl model.MessageTemplate, vars map[string]string, event model.EventPayload) error {
	notification := model.Notification{
		OrganizationID: event.OrganizationID,
		OrderID:        event.OrderID(),
		Type:           model.NotificationTypeMarketing,
		Trigger:        model.NotificationTriggerMagic,
		Channels:       tmpl.Channels,
		Payload: model.NotificationPayload{
			Message:   RenderTemplate(tmpl.Body, vars),
			Subject:   RenderTemplate(tmpl.Subject, vars),
			Variables: vars,
			Country:   event.Country,
			UserID:    event.UserID,
			ClientID:  event.ClientID,
		},
	}
	return a.notifier.Enqueue(ctx, notification)
}

func baseVariables(event model.EventPayload) map[string]string {
	return map[string]string{
		"client_id": event.ClientID,
		"order_id":  event.OrderID(),
	}
}

// Подстановка {name} из vars, неизвестные плейсхолдеры остаются как есть
func RenderTemplate(tmpl string, vars map[string]string) string {
	if tmpl == "" || len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

const couponAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Код вида XXXX-XXXX без похожих символов (0/O, 1/I)
func GenerateCouponCode() (string, error) {
	var sb strings.Builder
	size := big.NewInt(int64(len(couponAlphabet)))
	for i := 0; i < 8; i++ {
		if i == 4 {
			sb.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		sb.WriteByte(couponAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
