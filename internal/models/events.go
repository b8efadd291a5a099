package magic

import "time"

type EventType string

const (
	EventOrderPaid EventType = "order_paid"
	EventManual    EventType = "manual"
	EventSweep     EventType = "sweep"
)

func (e EventType) Valid() bool {
	switch e {
	case EventOrderPaid, EventManual, EventSweep:
		return true
	}
	return false
}

// Факты события. Заполнен только вариант, соответствующий Type.
type EventPayload struct {
	Type           EventType
	OrganizationID string
	ClientID       string
	UserID         string
	Country        string

	OrderPaid *OrderPaidFacts
	Sweep     *SweepFacts
}

type OrderPaidFacts struct {
	OrderID                    string
	PurchasedProductIDs        map[string]struct{}
	PurchasedAt                time.Time
	BaseAffiliatePointsAwarded *int64
	DaysSinceLastPurchase      *int
}

type SweepFacts struct {
	DaysSinceLastPurchase *int
}

func NewOrderPaidEvent(organizationID, clientID string, facts OrderPaidFacts) EventPayload {
	return EventPayload{
		Type:           EventOrderPaid,
		OrganizationID: organizationID,
		ClientID:       clientID,
		OrderPaid:      &facts,
	}
}

func NewManualEvent(organizationID, clientID string) EventPayload {
	return EventPayload{Type: EventManual, OrganizationID: organizationID, ClientID: clientID}
}

func NewSweepEvent(organizationID, clientID string, daysSinceLastPurchase *int) EventPayload {
	return EventPayload{
		Type:           EventSweep,
		OrganizationID: organizationID,
		ClientID:       clientID,
		Sweep:          &SweepFacts{DaysSinceLastPurchase: daysSinceLastPurchase},
	}
}

func (e EventPayload) orderPaid() *OrderPaidFacts {
	if e.Type != EventOrderPaid {
		return nil
	}
	return e.OrderPaid
}

// ID заказа, пустой для событий кроме order_paid
func (e EventPayload) OrderID() string {
	if f := e.orderPaid(); f != nil {
		return f.OrderID
	}
	return ""
}

func (e EventPayload) PurchasedAt() (time.Time, bool) {
	if f := e.orderPaid(); f != nil && !f.PurchasedAt.IsZero() {
		return f.PurchasedAt, true
	}
	return time.Time{}, false
}

func (e EventPayload) PurchasedProduct(productID string) bool {
	f := e.orderPaid()
	if f == nil {
		return false
	}
	_, ok := f.PurchasedProductIDs[productID]
	return ok
}

func (e EventPayload) BaseAffiliatePointsAwarded() int64 {
	if f := e.orderPaid(); f != nil && f.BaseAffiliatePointsAwarded != nil {
		return *f.BaseAffiliatePointsAwarded
	}
	return 0
}

// дни с последней покупки есть только у order_paid и sweep
func (e EventPayload) DaysSinceLastPurchase() (int, bool) {
	var days *int
	switch e.Type {
	case EventOrderPaid:
		if e.OrderPaid != nil {
			days = e.OrderPaid.DaysSinceLastPurchase
		}
	case EventSweep:
		if e.Sweep != nil {
			days = e.Sweep.DaysSinceLastPurchase
		}
	}
	if days == nil {
		return 0, false
	}
	return *days, true
}

func ProductSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
