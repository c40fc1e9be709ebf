package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/service"
	"github.com/mmeshcher/bakkerij/internal/validation"
)

const paymentMethodCash = "cash"

var paymentMethods = []string{"card", "bancontact", paymentMethodCash}

type pickupContent struct {
	MinDate string
	MaxDate string
	Date    string
	Time    string
	Invalid bool
}

type paymentContent struct {
	Retry             bool
	LastPaymentMethod string
	Methods           []string
	Pickup            *model.PickupDetails
	Total             decimal.Decimal
}

type paymentSuccessContent struct {
	Cash   bool
	Placed bool
	Order  model.Order
}

// requireLogin перенаправляет в личный кабинет, если сессия не связана с пользователем.
func (h *Handler) requireLogin(w http.ResponseWriter, r *http.Request) bool {
	if h.service.IsLoggedIn(sessionID(r)) {
		return true
	}
	http.Redirect(w, r, accountURL(language(r), false), http.StatusFound)
	return false
}

func (h *Handler) pickupContent(date, time string, invalid bool) pickupContent {
	minDate, maxDate := validation.PickupWindow(h.now())
	return pickupContent{
		MinDate: minDate.Format(validation.DateLayout),
		MaxDate: maxDate.Format(validation.DateLayout),
		Date:    date,
		Time:    time,
		Invalid: invalid,
	}
}

// GetPickup отображает выбор даты и времени самовывоза.
func (h *Handler) GetPickup(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	var date, time string
	if d, ok := h.service.PickupDetails(sessionID(r)); ok {
		date, time = d.Date, d.Time
	}
	h.renderPage(w, r, "pickup", h.pickupContent(date, time, false))
}

// ConfirmPickup сохраняет дату и время самовывоза и переходит к оплате.
func (h *Handler) ConfirmPickup(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	date := strings.TrimSpace(r.FormValue("pickupDate"))
	time := strings.TrimSpace(r.FormValue("pickupTime"))

	if !validation.IsValidPickupDate(date, h.now()) || time == "" {
		h.renderTemplate(w, r, http.StatusUnprocessableEntity, "pickup", "content", h.pickupContent(date, time, true))
		return
	}

	h.service.SavePickupDetails(sessionID(r), date, time)
	h.GetPayment(w, r)
}

// GetPayment отображает выбор способа оплаты.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	sid := sessionID(r)
	content := paymentContent{
		Retry:             r.URL.Query().Get("retry") == "true",
		LastPaymentMethod: h.service.LastPaymentMethod(sid),
		Methods:           paymentMethods,
		Total:             h.service.CartView(sid).Total,
	}
	if d, ok := h.service.PickupDetails(sid); ok {
		content.Pickup = &d
	}

	h.renderPage(w, r, "payment", content)
}

// GetPaymentSuccess оформляет заказ из корзины и отображает подтверждение.
func (h *Handler) GetPaymentSuccess(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	sid := sessionID(r)
	method := r.URL.Query().Get("method")
	if method != "" {
		h.service.SaveLastPaymentMethod(sid, method)
	}

	order, placed, err := h.service.PlaceOrder(sid)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			http.Redirect(w, r, accountURL(language(r), false), http.StatusFound)
			return
		}
		h.logger.Error("place order error", zap.Error(err), zap.String("session", sid))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderPage(w, r, "payment-success", paymentSuccessContent{
		Cash:   method == paymentMethodCash,
		Placed: placed,
		Order:  order,
	})
}

// GetPaymentFailed отображает сообщение о неудачной оплате.
func (h *Handler) GetPaymentFailed(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	if method := r.URL.Query().Get("method"); method != "" {
		h.service.SaveLastPaymentMethod(sessionID(r), method)
	}
	h.renderPage(w, r, "payment-failed", nil)
}
