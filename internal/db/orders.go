package magic

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
)

const purchasedAtExpr = "COALESCE(date_paid, date_created)"

// Заказ организации
func (p *MagicDB) GetOrder(ctx context.Context, organizationID string, orderID string) (order model.Order, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return order, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "organization_id", "client_id", "user_id", "country", "cart_id", "date_paid", "date_created", "affiliate_points_awarded").
		From("orders").
		Where(sq.Eq{"id": orderID}).
		Where(sq.Eq{"organization_id": organizationID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order, p.sqlError(err, sql, args)
	}

	var userID, country, cartID pgtype.Text
	var datePaid pgtype.Timestamptz
	var awarded pgtype.Int8
	err = conn.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.OrganizationID, &order.ClientID, &userID, &country, &cartID, &datePaid, &order.DateCreated, &awarded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order, fmt.Errorf("order %s %w", orderID, model.ErrNotFound)
		}
		return order, p.sqlError(err, sql, args)
	}
	order.UserID = userID.String
	order.Country = country.String
	order.CartID = cartID.String
	if datePaid.Status == pgtype.Present {
		t := datePaid.Time
		order.DatePaid = &t
	}
	if awarded.Status == pgtype.Present {
		v := awarded.Int
		order.AffiliatePointsAwarded = &v
	}
	return order, nil
}

// Товары и партнерские товары корзины, без повторов
func (p *MagicDB) GetCartProductIDs(ctx context.Context, cartID string) (ids []string, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("product_id", "affiliate_product_id").
		From("cart_items").
		Where(sq.Eq{"cart_id": cartID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var product, affiliate pgtype.Text
		err = rows.Scan(&product, &affiliate)
		if err != nil {
			return nil, err
		}
		for _, v := range []pgtype.Text{product, affiliate} {
			if v.Status != pgtype.Present || v.String == "" {
				continue
			}
			if _, ok := seen[v.String]; ok {
				continue
			}
			seen[v.String] = struct{}{}
			ids = append(ids, v.String)
		}
	}
	return ids, rows.Err()
}

// Дата последнего другого заказа клиента не позже before
func (p *MagicDB) GetPreviousOrderTime(ctx context.Context, organizationID string, clientID string, orderID string, before time.Time) (*time.Time, error) {
	builder := sq.Select("MAX(" + purchasedAtExpr + ")").
		From("orders").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"client_id": clientID}).
		Where(sq.NotEq{"id": orderID}).
		Where(sq.LtOrEq{purchasedAtExpr: before})
	return p.maxTime(ctx, builder)
}

func (p *MagicDB) GetLastOrderTime(ctx context.Context, organizationID string, clientID string) (*time.Time, error) {
	builder := sq.Select("MAX(" + purchasedAtExpr + ")").
		From("orders").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"client_id": clientID})
	return p.maxTime(ctx, builder)
}

func (p *MagicDB) maxTime(ctx context.Context, builder sq.SelectBuilder) (*time.Time, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	var last pgtype.Timestamptz
	err = conn.QueryRow(ctx, sql, args...).Scan(&last)
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	if last.Status != pgtype.Present {
		return nil, nil
	}
	t := last.Time
	return &t, nil
}

// Клиенты, последний заказ которых не позже before
func (p *MagicDB) GetInactiveClients(ctx context.Context, before time.Time, limit uint64) (clients []model.ClientActivity, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	builder := sq.Select("organization_id", "client_id", "MAX("+purchasedAtExpr+") AS last_order").
		From("orders").
		GroupBy("organization_id", "client_id").
		Having("MAX("+purchasedAtExpr+") <= ?", before).
		OrderBy("last_order")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	sql, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, p.sqlError(err, sql, args)
	}
	defer rows.Close()
	for rows.Next() {
		var c model.ClientActivity
		err = rows.Scan(&c.OrganizationID, &c.ClientID, &c.LastOrderAt)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
