package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/validation"
)

type cartContent struct {
	View      model.CartView
	ItemCount int
}

func (h *Handler) cartContent(sessionID string) cartContent {
	return cartContent{
		View:      h.service.CartView(sessionID),
		ItemCount: h.service.CartCount(sessionID),
	}
}

func productIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// GetCart отображает содержимое корзины текущей сессии.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "cart", h.cartContent(sessionID(r)))
}

// GetCartCount возвращает счётчик товаров в корзине.
func (h *Handler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	h.writeCartCount(w, sessionID(r))
}

// AddToCart добавляет товар в корзину и отправляет событие showCartModal.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	quantity, ok := validation.ParseQuantity(r.FormValue("quantity"), 1)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	h.service.AddToCart(sid, productID, quantity)
	h.logger.Debug("cart item added",
		zap.String("session", sid), zap.Int("product", productID), zap.Int("quantity", quantity))

	h.triggerCartModal(w, h.service.CartModal(productID, quantity, language(r)))
	h.writeCartCount(w, sid)
}

// UpdateCartItem устанавливает количество товара в корзине. Неположительное количество удаляет строку.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	quantity, ok := validation.ParseQuantity(r.FormValue("quantity"), 0)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	h.service.UpdateCartItem(sid, productID, quantity)
	w.Header().Set("HX-Trigger", "cartUpdated")
	h.renderTemplate(w, r, http.StatusOK, "cart", "cart-content", h.cartContent(sid))
}

// RemoveFromCart удаляет товар из корзины.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	h.service.RemoveFromCart(sid, productID)
	w.Header().Set("HX-Trigger", "cartUpdated")
	h.renderTemplate(w, r, http.StatusOK, "cart", "cart-content", h.cartContent(sid))
}
