package magic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rulesEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magic_rules_evaluated_total",
			Help: "Кол-во проверенных правил",
		},
		[]string{"matched"},
	)

	actionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "magic_actions_executed_total",
			Help: "Кол-во выполненных действий",
		},
		[]string{"kind"},
	)

	boostersConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "magic_booster_points_consumed_total",
			Help: "Баллы бустеров, начисленные на заказы",
		},
	)
)
