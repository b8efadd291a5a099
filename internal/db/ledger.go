package magic

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Начисление/списание баллов: запись журнала + баланс в одной транзакции
func (p *MagicDB) GrantPoints(ctx context.Context, entry model.PointLog) (err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	err = p.insertPointLog(ctx, tx, entry)
	if err != nil {
		return err
	}
	err = p.upsertBalance(ctx, tx, entry.OrganizationID, entry.ClientID, entry.Points, entry.CreatedAt)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *MagicDB) insertPointLog(ctx context.Context, tx pgx.Tx, entry model.PointLog) error {
	sql, args, err := sq.Insert("point_logs").
		Columns("id", "organization_id", "client_id", "points", "action", "description", "source_client_id", "order_id", "created_at").
		Values(entry.ID, entry.OrganizationID, entry.ClientID, entry.Points, entry.Action, entry.Description, nullable(entry.SourceClientID), nullable(entry.OrderID), entry.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	return nil
}

// Атомарное накопление: без чтения-изменения-записи на стороне сервиса
func (p *MagicDB) upsertBalance(ctx context.Context, tx pgx.Tx, organizationID string, clientID string, points int64, at time.Time) error {
	current, spent := model.BalanceDelta(points)
	sql, args, err := sq.Insert("point_balances").
		Columns("client_id", "organization_id", "points_current", "points_spent", "updated_at").
		Values(clientID, organizationID, current, spent, at).
		Suffix("ON CONFLICT (client_id, organization_id) DO UPDATE SET " +
			"points_current = point_balances.points_current + EXCLUDED.points_current, " +
			"points_spent = point_balances.points_spent + EXCLUDED.points_spent, " +
			"updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	return nil
}

func (p *MagicDB) BoosterCreate(ctx context.Context, booster model.PointBooster) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	var sourceRule any
	if booster.SourceRuleID != uuid.Nil {
		sourceRule = booster.SourceRuleID
	}
	sql, args, err := sq.Insert("point_boosters").
		Columns("id", "organization_id", "client_id", "points", "description", "status", "expires_at", "source_rule_id", "source_order_id", "created_at").
		Values(booster.ID, booster.OrganizationID, booster.ClientID, booster.Points, booster.Description, string(booster.Status), booster.ExpiresAt, sourceRule, nullable(booster.SourceOrderID), booster.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		return p.sqlError(err, sql, args)
	}
	return nil
}

// Списание бустеров на заказ. Бустеры, поставленные этим же заказом, не списываются.
// Строки бустеров блокируются (FOR UPDATE),
// параллельная обработка заказов того же клиента ждет и уже не видит их как pending.
func (p *MagicDB) ConsumeBoosters(ctx context.Context, organizationID string, clientID string, orderID string, now time.Time) (consumed model.BoosterConsumption, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		p.logger.Error("Get connection error", zap.Error(err), zap.String("service", "ConsumeBoosters"))
		return consumed, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		p.logger.Error("Begin tx error", zap.Error(err), zap.String("service", "ConsumeBoosters"))
		return consumed, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	// блокируем ожидающие бустеры клиента
	sql, args, err := sq.Select("id", "points").
		From("point_boosters").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"client_id": clientID}).
		Where(sq.Eq{"status": string(model.BoosterPending)}).
		Where(sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": now}}).
		Where(sq.Or{sq.Eq{"source_order_id": nil}, sq.NotEq{"source_order_id": orderID}}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return consumed, p.sqlError(err, sql, args)
	}
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Error("Block boosters error", zap.Error(err), zap.String("service", "ConsumeBoosters"), zap.String("client", clientID))
		return consumed, err
	}
	for rows.Next() {
		var id uuid.UUID
		var points int64
		err = rows.Scan(&id, &points)
		if err != nil {
			rows.Close()
			return model.BoosterConsumption{}, err
		}
		consumed.BoosterIDs = append(consumed.BoosterIDs, id)
		consumed.Points += points
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return model.BoosterConsumption{}, err
	}

	if len(consumed.BoosterIDs) == 0 {
		err = tx.Commit(ctx)
		return consumed, err
	}

	// одна общая запись журнала на все бустеры
	entry := model.PointLog{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		ClientID:       clientID,
		Points:         consumed.Points,
		Action:         model.PointActionNextOrderBonus,
		Description:    fmt.Sprintf("Next order bonus: %d booster(s)", len(consumed.BoosterIDs)),
		OrderID:        orderID,
		CreatedAt:      now,
	}
	err = p.insertPointLog(ctx, tx, entry)
	if err != nil {
		return model.BoosterConsumption{}, err
	}
	err = p.upsertBalance(ctx, tx, organizationID, clientID, consumed.Points, now)
	if err != nil {
		return model.BoosterConsumption{}, err
	}

	// разметка бустеров заказом
	sql, args, err = sq.Update("point_boosters").
		Set("status", string(model.BoosterConsumed)).
		Set("consumed_order_id", orderID).
		Set("consumed_at", now).
		Where(sq.Eq{"id": consumed.BoosterIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.BoosterConsumption{}, p.sqlError(err, sql, args)
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		p.logger.Error("Consume boosters error", zap.Error(err), zap.String("service", "ConsumeBoosters"), zap.String("client", clientID))
		return model.BoosterConsumption{}, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		p.logger.Error("Commit error", zap.Error(err), zap.String("service", "ConsumeBoosters"), zap.String("client", clientID))
		return model.BoosterConsumption{}, err
	}
	return consumed, nil
}

// Получить баланс
func (p *MagicDB) GetBalance(ctx context.Context, organizationID string, clientID string) (balance model.PointBalance, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return balance, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("organization_id", "client_id", "points_current", "points_spent", "updated_at").
		From("point_balances").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"client_id": clientID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return balance, p.sqlError(err, sql, args)
	}
	err = conn.QueryRow(ctx, sql, args...).Scan(&balance.OrganizationID, &balance.ClientID, &balance.PointsCurrent, &balance.PointsSpent, &balance.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return balance, fmt.Errorf("balance %w", model.ErrNotFound)
		}
		return balance, p.sqlError(err, sql, args)
	}
	return balance, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
