package magic

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/loyalty/magic/internal/models"
)

func (p *MagicDB) CouponCodeExists(ctx context.Context, organizationID string, code string) (exists bool, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("1").
		Prefix("SELECT EXISTS (").
		From("coupons").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"code": code}).
		Suffix(")").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, p.sqlError(err, sql, args)
	}
	err = conn.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		return false, p.sqlError(err, sql, args)
	}
	return exists, nil
}

func (p *MagicDB) CouponCreate(ctx context.Context, coupon model.Coupon) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	sql, args, err := sq.Insert("coupons").
		Columns("id", "organization_id", "code", "name", "description", "discount_type", "discount_amount",
			"usage_limit", "usage_limit_per_client", "min_spend", "max_spend", "countries",
			"visible", "stackable", "start_date", "expiration_date", "client_id", "created_at").
		Values(coupon.ID, coupon.OrganizationID, coupon.Code, coupon.Name, coupon.Description, string(coupon.DiscountType), coupon.DiscountAmount,
			coupon.UsageLimit, coupon.UsageLimitPerClient, coupon.MinSpend, coupon.MaxSpend, coupon.Countries,
			coupon.Visible, coupon.Stackable, coupon.StartDate, coupon.ExpirationDate, coupon.ClientID, coupon.CreatedAt).
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
