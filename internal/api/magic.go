package magic

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	interf "github.com/glkeru/loyalty/magic/internal/interfaces"
	model "github.com/glkeru/loyalty/magic/internal/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type MagicHandler struct {
	router   *mux.Router
	service  interf.RuleEvaluator
	rules    interf.RuleReader
	balances interf.BalanceReader
	logger   *zap.Logger
	scope    string
	limit    uint64
}

type EvaluateRequest struct {
	OrganizationID string          `json:"organizationId"`
	Event          model.EventType `json:"event"`
}

type EvaluateResponse struct {
	Results []model.RuleResult `json:"results"`
}

func NewHandler(service interf.RuleEvaluator, rules interf.RuleReader, balances interf.BalanceReader, logger *zap.Logger, scope string, limit uint64) *MagicHandler {
	router := mux.NewRouter()
	handler := &MagicHandler{router, service, rules, balances, logger, scope, limit}
	router.Use(MiddlewareMetrics())
	router.HandleFunc("/orders/{id}/evaluate", handler.EvaluateOrderHandler).Methods(http.MethodPost)
	router.HandleFunc("/clients/{id}/evaluate", handler.EvaluateClientHandler).Methods(http.MethodPost)
	router.HandleFunc("/rules", handler.GetRulesHandler).Methods(http.MethodGet)
	router.HandleFunc("/balance", handler.GetBalanceHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return handler
}

func (r *MagicHandler) ServeHTTP(w http.ResponseWriter, res *http.Request) {
	r.router.ServeHTTP(w, res)
}

func (r *MagicHandler) Log(msg string, service string, err error) {
	r.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// Запуск правил по заказу
func (r *MagicHandler) EvaluateOrderHandler(w http.ResponseWriter, req *http.Request) {
	body, ok := r.readEvaluate(w, req, "EvaluateOrderHandler")
	if !ok {
		return
	}
	if body.Event == "" {
		body.Event = model.EventOrderPaid
	}
	results, err := r.service.EvaluateRulesForOrder(req.Context(), body.OrganizationID, mux.Vars(req)["id"], body.Event)
	if err != nil {
		r.fail(w, "EvaluateOrderHandler", err)
		return
	}
	r.writeJSON(w, "EvaluateOrderHandler", EvaluateResponse{results})
}

// Ручной запуск и sweep по клиенту
func (r *MagicHandler) EvaluateClientHandler(w http.ResponseWriter, req *http.Request) {
	body, ok := r.readEvaluate(w, req, "EvaluateClientHandler")
	if !ok {
		return
	}
	if body.Event == "" {
		body.Event = model.EventManual
	}
	results, err := r.service.EvaluateRulesForClient(req.Context(), body.OrganizationID, mux.Vars(req)["id"], body.Event)
	if err != nil {
		r.fail(w, "EvaluateClientHandler", err)
		return
	}
	r.writeJSON(w, "EvaluateClientHandler", EvaluateResponse{results})
}

// Правила организации по событию
func (r *MagicHandler) GetRulesHandler(w http.ResponseWriter, req *http.Request) {
	org := req.URL.Query().Get("organizationId")
	event := model.EventType(req.URL.Query().Get("event"))
	if event == "" {
		event = model.EventOrderPaid
	}
	if org == "" || !event.Valid() {
		http.Error(w, "organizationId and a valid event are required", http.StatusBadRequest)
		return
	}
	rules, err := r.rules.GetCandidateRules(req.Context(), org, event, r.scope, r.limit)
	if err != nil {
		r.fail(w, "GetRulesHandler", err)
		return
	}
	views := make([]model.RuleView, 0, len(rules))
	for _, rule := range rules {
		view, err := model.NewRuleView(rule)
		if err != nil {
			r.fail(w, "GetRulesHandler", err)
			return
		}
		views = append(views, view)
	}
	r.writeJSON(w, "GetRulesHandler", views)
}

// Баланс баллов клиента
func (r *MagicHandler) GetBalanceHandler(w http.ResponseWriter, req *http.Request) {
	org := req.URL.Query().Get("organizationId")
	client := req.URL.Query().Get("clientId")
	if org == "" || client == "" {
		http.Error(w, "organizationId and clientId are required", http.StatusBadRequest)
		return
	}
	balance, err := r.balances.GetBalance(req.Context(), org, client)
	if err != nil {
		r.fail(w, "GetBalanceHandler", err)
		return
	}
	r.writeJSON(w, "GetBalanceHandler", balance)
}

func (r *MagicHandler) readEvaluate(w http.ResponseWriter, req *http.Request, service string) (body EvaluateRequest, ok bool) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		r.Log("Get request body", service, err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return body, false
	}
	defer req.Body.Close()
	err = json.Unmarshal(data, &body)
	if err != nil {
		r.Log("Unmarshal", service, err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return body, false
	}
	if body.OrganizationID == "" {
		http.Error(w, "organizationId is required", http.StatusBadRequest)
		return body, false
	}
	if body.Event != "" && !body.Event.Valid() {
		http.Error(w, "unknown event", http.StatusBadRequest)
		return body, false
	}
	return body, true
}

func (r *MagicHandler) fail(w http.ResponseWriter, service string, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		r.Log("Request failed", service, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (r *MagicHandler) writeJSON(w http.ResponseWriter, service string, v any) {
	j, err := json.Marshal(v)
	if err != nil {
		r.Log("Marshal", service, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}
