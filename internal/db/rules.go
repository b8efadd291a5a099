package magic

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

// Правила организации по событию и области, в порядке приоритета.
// Условия и действия разбираются сразу, ошибка разбора возвращается как ErrInvalidRule.
func (p *MagicDB) GetCandidateRules(ctx context.Context, organizationID string, event model.EventType, scope string, limit uint64) (rules []model.MagicRule, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	builder := sq.Select("id", "organization_id", "name", "enabled", "scope", "events", "conditions", "actions", "starts_at", "ends_at").
		From("magic_rules").
		Where(sq.Eq{"organization_id": organizationID}).
		Where(sq.Eq{"scope": scope}).
		Where(sq.Eq{"enabled": true}).
		Where(sq.Expr("events @> ?", []string{string(event)})).
		OrderBy("priority DESC", "updated_at DESC")
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
		var rule model.MagicRule
		var events []string
		var conditions, actions []byte
		var startsAt, endsAt pgtype.Timestamptz
		err = rows.Scan(&rule.ID, &rule.OrganizationID, &rule.Name, &rule.Enabled, &rule.Scope, &events, &conditions, &actions, &startsAt, &endsAt)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			rule.AnyOfEvents = append(rule.AnyOfEvents, model.EventType(e))
		}
		rule.Conditions, err = model.DecodeConditions(rule.ID, conditions)
		if err != nil {
			return nil, err
		}
		rule.Actions, err = model.DecodeActions(rule.ID, actions)
		if err != nil {
			return nil, err
		}
		if startsAt.Status == pgtype.Present {
			t := startsAt.Time
			rule.StartsAt = &t
		}
		if endsAt.Status == pgtype.Present {
			t := endsAt.Time
			rule.EndsAt = &t
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Отключение правила с истекшим сроком
func (p *MagicDB) DisableRule(ctx context.Context, ruleID uuid.UUID) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	sql, args, err := sq.Update("magic_rules").
		Set("enabled", false).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": ruleID}).
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

func (p *MagicDB) ExecutionExists(ctx context.Context, ruleID uuid.UUID, orderID string) (exists bool, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("1").
		Prefix("SELECT EXISTS (").
		From("magic_rule_executions").
		Where(sq.Eq{"rule_id": ruleID}).
		Where(sq.Eq{"order_id": orderID}).
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

// Резервирование срабатывания: false, если запись по (rule_id, order_id) уже есть
func (p *MagicDB) ExecutionClaim(ctx context.Context, execution model.RuleExecution) (bool, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	sql, args, err := sq.Insert("magic_rule_executions").
		Columns("rule_id", "order_id", "organization_id", "client_id", "status", "actions_executed", "executed_at").
		Values(execution.RuleID, execution.OrderID, execution.OrganizationID, execution.ClientID, string(execution.Status), execution.ActionsExecuted, execution.ExecutedAt).
		Suffix("ON CONFLICT (rule_id, order_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, p.sqlError(err, sql, args)
	}
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, p.sqlError(err, sql, args)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *MagicDB) ExecutionComplete(ctx context.Context, ruleID uuid.UUID, orderID string, actions int) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	sql, args, err := sq.Update("magic_rule_executions").
		Set("status", string(model.ExecutionCompleted)).
		Set("actions_executed", actions).
		Set("completed_at", sq.Expr("now()")).
		Where(sq.Eq{"rule_id": ruleID}).
		Where(sq.Eq{"order_id": orderID}).
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

// Снятие резерва, если правило совпало, но ни одно действие не выполнилось
func (p *MagicDB) ExecutionRelease(ctx context.Context, ruleID uuid.UUID, orderID string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	sql, args, err := sq.Delete("magic_rule_executions").
		Where(sq.Eq{"rule_id": ruleID}).
		Where(sq.Eq{"order_id": orderID}).
		Where(sq.Eq{"status": string(model.ExecutionClaimed)}).
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
