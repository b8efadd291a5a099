package magic

import (
	"context"
	"fmt"
	"time"

	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PointsService struct {
	logger *zap.Logger
	db     interf.LedgerStorage
	cache  interf.CacheStorage
}

func NewPointService(logger *zap.Logger, db interf.LedgerStorage, cache interf.CacheStorage) (service *PointsService) {
	return &PointsService{logger, db, cache}
}

// Начисление/списание: запись журнала и баланс в одной транзакции хранилища
func (p *PointsService) GrantAffiliatePointsOnce(ctx context.Context, entry model.PointLog) error {
	if entry.ClientID == "" || entry.OrganizationID == "" {
		return fmt.Errorf("grant points: client and organization are required")
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	err := p.db.GrantPoints(ctx, entry)
	if err != nil {
		return err
	}
	p.invalidate(ctx, entry.OrganizationID, entry.ClientID)
	return nil
}

// Отложенные баллы на следующий заказ, баланс не меняется
func (p *PointsService) QueueBooster(ctx context.Context, booster model.PointBooster) error {
	if booster.Points <= 0 {
		return fmt.Errorf("booster points must be positive: %d", booster.Points)
	}
	if booster.ID == uuid.Nil {
		booster.ID = uuid.New()
	}
	booster.Status = model.BoosterPending
	if booster.CreatedAt.IsZero() {
		booster.CreatedAt = time.Now()
	}
	return p.db.BoosterCreate(ctx, booster)
}

// Начисление всех ожидающих бустеров клиента на заказ
func (p *PointsService) ConsumeBoosters(ctx context.Context, organizationID string, clientID string, orderID string, now time.Time) (model.BoosterConsumption, error) {
	consumed, err := p.db.ConsumeBoosters(ctx, organizationID, clientID, orderID, now)
	if err != nil {
		return model.BoosterConsumption{}, err
	}
	if len(consumed.BoosterIDs) > 0 {
		boostersConsumed.Add(float64(consumed.Points))
		p.logger.Info("boosters consumed",
			zap.String("organization", organizationID),
			zap.String("client", clientID),
			zap.String("order", orderID),
			zap.Int("boosters", len(consumed.BoosterIDs)),
			zap.Int64("points", consumed.Points))
		p.invalidate(ctx, organizationID, clientID)
	}
	return consumed, nil
}

// баланс
func (p *PointsService) GetBalance(ctx context.Context, organizationID string, clientID string) (balance model.PointBalance, err error) {
	// cache
	if p.cache != nil {
		balance, err = p.cache.GetBalance(ctx, organizationID, clientID)
		if err == nil {
			return balance, nil
		}
	}
	// database
	balance, err = p.db.GetBalance(ctx, organizationID, clientID)
	if err != nil {
		return model.PointBalance{}, err
	}
	if p.cache != nil {
		err = p.cache.SetBalance(ctx, balance)
		if err != nil {
			p.logger.Error(err.Error())
		}
	}
	return balance, nil
}

// инвалидировать кэш баланса
func (p *PointsService) invalidate(ctx context.Context, organizationID string, clientID string) {
	if p.cache == nil {
		return
	}
	err := p.cache.InvalidateBalance(ctx, organizationID, clientID)
	if err != nil {
		p.logger.Error(err.Error())
	}
}
