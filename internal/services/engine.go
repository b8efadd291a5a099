package magic

import (
	"context"
	"fmt"

	model "github.com/glkeru/loyalty/magic/internal/models"
	"go.uber.org/zap"
)

type ActionExecutor interface {
	// ok == false - действие ничего не сделало (например множитель 1)
	Execute(ctx context.Context, rule model.MagicRule, action model.Action, event model.EventPayload) (executed model.ActionExecuted, ok bool, err error)
}

// Резервирование срабатывания правила до выполнения действий
type ExecutionGuard interface {
	Claim(ctx context.Context, rule model.MagicRule) (bool, error)
	Complete(ctx context.Context, rule model.MagicRule, actions int) error
	Release(ctx context.Context, rule model.MagicRule) error
}

type RuleEngine struct {
	evaluator ConditionEvaluator
	executor  ActionExecutor
	logger    *zap.Logger
}

func NewRuleEngine(evaluator ConditionEvaluator, executor ActionExecutor, logger *zap.Logger) *RuleEngine {
	return &RuleEngine{evaluator, executor, logger}
}

// Один проход по правилам в переданном порядке. Выполняются действия только
// первого совпавшего правила, дальше правила не проверяются.
// guard может быть nil.
func (e *RuleEngine) Run(ctx context.Context, rules []model.MagicRule, event model.EventPayload, guard ExecutionGuard) ([]model.RuleResult, error) {
	results := make([]model.RuleResult, 0, len(rules))
	for i, rule := range rules {
		result := model.RuleResult{RuleID: rule.ID, RuleName: rule.Name}

		switch {
		case !rule.Enabled:
			result.Reason = model.ReasonDisabled
		case !rule.ListensTo(event.Type):
			result.Reason = model.ReasonEventMismatch
		case !e.evaluator.EvaluateAll(rule.Conditions, event):
			result.Reason = model.ReasonConditionFailed
		}
		if result.Reason != "" {
			rulesEvaluated.WithLabelValues("false").Inc()
			e.logger.Debug("rule not matched",
				zap.String("rule", rule.ID.String()),
				zap.String("reason", result.Reason))
			results = append(results, result)
			continue
		}

		if guard != nil {
			claimed, err := guard.Claim(ctx, rule)
			if err != nil {
				return results, fmt.Errorf("claim rule %s: %w", rule.ID, err)
			}
			if !claimed {
				result.Reason = model.ReasonAlreadyExecuted
				rulesEvaluated.WithLabelValues("false").Inc()
				results = append(results, result)
				continue
			}
		}

		// действия по порядку, без отката уже выполненных
		for _, action := range rule.Actions {
			executed, ok, err := e.executor.Execute(ctx, rule, action, event)
			if err != nil {
				return results, fmt.Errorf("rule %s action %s: %w", rule.ID, action.Kind(), err)
			}
			if ok {
				actionsExecuted.WithLabelValues(string(action.Kind())).Inc()
				result.ActionsExecuted = append(result.ActionsExecuted, executed)
			}
		}

		if guard != nil {
			var err error
			if len(result.ActionsExecuted) == 0 {
				err = guard.Release(ctx, rule)
			} else {
				err = guard.Complete(ctx, rule, len(result.ActionsExecuted))
			}
			if err != nil {
				return results, fmt.Errorf("record rule %s: %w", rule.ID, err)
			}
		}
		if len(result.ActionsExecuted) == 0 {
			result.Reason = model.ReasonNoActionExecuted
		}

		result.Matched = true
		rulesEvaluated.WithLabelValues("true").Inc()
		e.logger.Info("rule matched",
			zap.String("rule", rule.ID.String()),
			zap.String("name", rule.Name),
			zap.String("event", string(event.Type)),
			zap.Int("actions", len(result.ActionsExecuted)))
		results = append(results, result)

		// остальные правила не проверяются
		for _, rest := range rules[i+1:] {
			results = append(results, model.RuleResult{RuleID: rest.ID, RuleName: rest.Name, Reason: model.ReasonNotEvaluated})
		}
		break
	}
	return results, nil
}
