package magic

import (
	"time"

	model "github.com/glkeru/loyalty/magic/internal/models"
)

// Проверка условий. Без ввода-вывода, для несовместимого с событием условия - false.
// Час покупки берется в зоне loc.
type ConditionEvaluator struct {
	loc *time.Location
}

func NewConditionEvaluator(loc *time.Location) ConditionEvaluator {
	if loc == nil {
		loc = time.UTC
	}
	return ConditionEvaluator{loc}
}

func (c ConditionEvaluator) Evaluate(cond model.Condition, event model.EventPayload) bool {
	switch v := cond.(type) {
	case model.AlwaysCondition:
		return true
	case model.CustomerInactiveCondition:
		days, ok := event.DaysSinceLastPurchase()
		return ok && days >= v.Days
	case model.PurchasedProductCondition:
		for _, id := range v.ProductIDs {
			if event.PurchasedProduct(id) {
				return true
			}
		}
		return false
	case model.PurchaseTimeWindowCondition:
		at, ok := event.PurchasedAt()
		if !ok {
			return false
		}
		return HourInWindow(at.In(c.loc).Hour(), v.FromHour, v.ToHour)
	}
	return false
}

// AND по всем условиям, пустой список - true
func (c ConditionEvaluator) EvaluateAll(conds []model.Condition, event model.EventPayload) bool {
	for _, cond := range conds {
		if !c.Evaluate(cond, event) {
			return false
		}
	}
	return true
}

func HourInWindow(hour, from, to int) bool {
	switch {
	case from == to:
		return true
	case from < to:
		return hour >= from && hour <= to
	default:
		return hour >= from || hour <= to
	}
}
