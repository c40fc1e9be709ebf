package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/service"
)

type accountContent struct {
	LoggedIn bool
	Username string
	Orders   []model.Order
	Address  model.Address
	Error    bool
}

func accountURL(lang string, invalid bool) string {
	q := url.Values{}
	q.Set("lang", lang)
	if invalid {
		q.Set("error", "invalid")
	}
	return "/account?" + q.Encode()
}

// GetAccount отображает страницу входа или личный кабинет с историей заказов.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	content := accountContent{
		Error: r.URL.Query().Get("error") == "invalid",
	}

	if username, ok := h.service.Username(sessionID(r)); ok {
		content.LoggedIn = true
		content.Username = username
		content.Orders = h.service.OrderHistory(username)
		content.Address, _ = h.service.Address(username)
	}

	h.renderPage(w, r, "account", content)
}

// Login выполняет вход по имени и паролю и перенаправляет в личный кабинет.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	lang := language(r)
	sid := sessionID(r)

	if !h.service.Login(sid, r.FormValue("firstname"), r.FormValue("password")) {
		http.Redirect(w, r, accountURL(lang, true), http.StatusFound)
		return
	}

	h.logger.Info("user logged in", zap.String("session", sid))
	http.Redirect(w, r, accountURL(lang, false), http.StatusFound)
}

// Logout завершает вход. Корзина сессии сохраняется.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(sessionID(r))
	http.Redirect(w, r, accountURL(language(r), false), http.StatusFound)
}

// ChangePassword подтверждает смену пароля, если оба значения совпадают.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	err := h.service.ChangePassword(sessionID(r), r.FormValue("newPassword"), r.FormValue("confirmPassword"))
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		h.renderMessage(w, r, http.StatusUnauthorized, "error", "msg.notloggedin")
	case errors.Is(err, service.ErrPasswordMismatch):
		h.renderMessage(w, r, http.StatusOK, "error", "msg.passwordmismatch")
	case err != nil:
		h.logger.Error("change password error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		h.renderMessage(w, r, http.StatusOK, "success", "msg.passwordchanged")
	}
}

// UpdateAddress сохраняет адрес доставки текущего пользователя.
func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	username, ok := h.service.Username(sessionID(r))
	if !ok {
		h.renderMessage(w, r, http.StatusUnauthorized, "error", "msg.notloggedin")
		return
	}

	h.service.UpdateAddress(username, model.Address{
		Street:  r.FormValue("street"),
		Postal:  r.FormValue("postal"),
		City:    r.FormValue("city"),
		Country: r.FormValue("country"),
	})

	h.renderMessage(w, r, http.StatusOK, "success", "msg.addresssaved")
}

// RepeatOrder добавляет в корзину все позиции заказа из истории пользователя.
func (h *Handler) RepeatOrder(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "orderNumber"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	if err := h.service.RepeatOrder(sid, number); err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			http.Error(w, "Not logged in", http.StatusUnauthorized)
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		default:
			h.logger.Error("repeat order error", zap.Error(err), zap.Int("order", number))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	h.triggerCartModal(w, model.CartModal{Lang: language(r), Type: model.CartModalRepeat})
	h.writeCartCount(w, sid)
}
