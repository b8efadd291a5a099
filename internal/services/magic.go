package magic

import (
	"context"
	"errors"
	"fmt"
	"time"

	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRulesLimit = 50
	defaultSweepCount = 3
)

type Options struct {
	Scope      string
	RulesLimit uint64
	Location   *time.Location
}

// Запуск правил по событиям
type MagicService struct {
	logger *zap.Logger
	orders interf.OrderStorage
	rules  interf.RuleStorage
	points *PointsService
	engine *RuleEngine
	scope  string
	limit  uint64
	Now    func() time.Time
}

func NewMagicService(logger *zap.Logger, orders interf.OrderStorage, rules interf.RuleStorage, points *PointsService, actions ActionExecutor, opts Options) *MagicService {
	if opts.Scope == "" {
		opts.Scope = model.RuleScopeBase
	}
	if opts.RulesLimit == 0 {
		opts.RulesLimit = defaultRulesLimit
	}
	engine := NewRuleEngine(NewConditionEvaluator(opts.Location), actions, logger)
	return &MagicService{
		logger: logger,
		orders: orders,
		rules:  rules,
		points: points,
		engine: engine,
		scope:  opts.Scope,
		limit:  opts.RulesLimit,
		Now:    time.Now,
	}
}

// Правила по оплаченному заказу. Для других событий ничего не делает.
func (m *MagicService) EvaluateRulesForOrder(ctx context.Context, organizationID string, orderID string, event model.EventType) (results []model.RuleResult, err error) {
	if event != model.EventOrderPaid {
		return nil, nil
	}
	ctx, span := otel.Tracer("magic").Start(ctx, "EvaluateRulesForOrder",
		trace.WithAttributes(
			attribute.String("organization", organizationID),
			attribute.String("order", orderID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// заказ
	order, err := m.orders.GetOrder(ctx, organizationID, orderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			m.logger.Info("order not found",
				zap.String("organization", organizationID),
				zap.String("order", orderID))
			return nil, nil
		}
		return nil, err
	}
	purchasedAt := order.PurchasedAt()

	// товары и предыдущий заказ
	var products []string
	var previous *time.Time
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if order.CartID == "" {
			return nil
		}
		ids, err := m.orders.GetCartProductIDs(gctx, order.CartID)
		products = ids
		return err
	})
	g.Go(func() error {
		t, err := m.orders.GetPreviousOrderTime(gctx, organizationID, order.ClientID, orderID, purchasedAt)
		previous = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// бустеры прошлых заказов начисляются до проверки правил
	now := m.Now()
	_, err = m.points.ConsumeBoosters(ctx, organizationID, order.ClientID, orderID, now)
	if err != nil {
		return nil, fmt.Errorf("consume boosters: %w", err)
	}

	rules, err := m.candidates(ctx, organizationID, model.EventOrderPaid, now)
	if err != nil {
		return nil, err
	}
	survivors := rules[:0]
	for _, rule := range rules {
		exists, err := m.rules.ExecutionExists(ctx, rule.ID, orderID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		survivors = append(survivors, rule)
	}

	facts := model.OrderPaidFacts{
		OrderID:                    orderID,
		PurchasedProductIDs:        model.ProductSet(products),
		PurchasedAt:                purchasedAt,
		BaseAffiliatePointsAwarded: order.AffiliatePointsAwarded,
		DaysSinceLastPurchase:      DaysBetween(previous, purchasedAt),
	}
	payload := model.NewOrderPaidEvent(organizationID, order.ClientID, facts)
	payload.UserID = order.UserID
	payload.Country = order.Country

	guard := &orderGuard{m.rules, organizationID, order.ClientID, orderID, m.Now}
	results, err = m.engine.Run(ctx, survivors, payload, guard)
	if err != nil {
		return results, err
	}
	span.SetAttributes(attribute.Int("rules", len(results)))
	return results, nil
}

// Ручной запуск или sweep по клиенту, без записи о срабатывании
func (m *MagicService) EvaluateRulesForClient(ctx context.Context, organizationID string, clientID string, event model.EventType) (results []model.RuleResult, err error) {
	ctx, span := otel.Tracer("magic").Start(ctx, "EvaluateRulesForClient",
		trace.WithAttributes(
			attribute.String("organization", organizationID),
			attribute.String("client", clientID),
			attribute.String("event", string(event))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if organizationID == "" || clientID == "" {
		return nil, fmt.Errorf("%w: organization and client are required", model.ErrInvalidEvent)
	}
	now := m.Now()
	var payload model.EventPayload
	switch event {
	case model.EventManual:
		payload = model.NewManualEvent(organizationID, clientID)
	case model.EventSweep:
		last, err := m.orders.GetLastOrderTime(ctx, organizationID, clientID)
		if err != nil {
			return nil, err
		}
		payload = model.NewSweepEvent(organizationID, clientID, DaysBetween(last, now))
	default:
		return nil, fmt.Errorf("%w: %q is not a client event", model.ErrInvalidEvent, event)
	}

	rules, err := m.candidates(ctx, organizationID, event, now)
	if err != nil {
		return nil, err
	}
	return m.engine.Run(ctx, rules, payload, nil)
}

// Sweep по неактивным клиентам, не больше workers одновременно
func (m *MagicService) Sweep(ctx context.Context, days int, limit uint64, workers int) error {
	if workers <= 0 {
		workers = defaultSweepCount
	}
	before := m.Now().AddDate(0, 0, -days)
	clients, err := m.orders.GetInactiveClients(ctx, before, limit)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, c := range clients {
		c := c
		g.Go(func() error {
			results, err := m.EvaluateRulesForClient(gctx, c.OrganizationID, c.ClientID, model.EventSweep)
			if err != nil {
				m.logger.Error("sweep",
					zap.String("organization", c.OrganizationID),
					zap.String("client", c.ClientID),
					zap.Error(err))
				return nil
			}
			m.logger.Debug("sweep",
				zap.String("client", c.ClientID),
				zap.Int("rules", len(results)))
			return nil
		})
	}
	return g.Wait()
}

// Правила организации: включенные и в окне действия.
// Правило с прошедшей датой окончания отключается.
func (m *MagicService) candidates(ctx context.Context, organizationID string, event model.EventType, now time.Time) ([]model.MagicRule, error) {
	rules, err := m.rules.GetCandidateRules(ctx, organizationID, event, m.scope, m.limit)
	if err != nil {
		return nil, err
	}
	active := make([]model.MagicRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if rule.Expired(now) {
			err := m.rules.DisableRule(ctx, rule.ID)
			if err != nil {
				m.logger.Error("disable expired rule",
					zap.String("rule", rule.ID.String()),
					zap.Error(err))
			}
			continue
		}
		if !rule.ScheduledAt(now) {
			continue
		}
		active = append(active, rule)
	}
	return active, nil
}

// Целое число дней между заказами, nil если предыдущего не было
func DaysBetween(previous *time.Time, at time.Time) *int {
	if previous == nil {
		return nil
	}
	days := int(at.Sub(*previous) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return &days
}

// Резервирование (правило, заказ) в хранилище
type orderGuard struct {
	rules          interf.RuleStorage
	organizationID string
	clientID       string
	orderID        string
	now            func() time.Time
}

func (g *orderGuard) Claim(ctx context.Context, rule model.MagicRule) (bool, error) {
	return g.rules.ExecutionClaim(ctx, model.RuleExecution{
		RuleID:         rule.ID,
		OrderID:        g.orderID,
		OrganizationID: g.organizationID,
		ClientID:       g.clientID,
		Status:         model.ExecutionClaimed,
		ExecutedAt:     g.now(),
	})
}

func (g *orderGuard) Complete(ctx context.Context, rule model.MagicRule, actions int) error {
	return g.rules.ExecutionComplete(ctx, rule.ID, g.orderID, actions)
}

func (g *orderGuard) Release(ctx context.Context, rule model.MagicRule) error {
	return g.rules.ExecutionRelease(ctx, rule.ID, g.orderID)
}
