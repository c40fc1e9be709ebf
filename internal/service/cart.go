package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/bakkerij/internal/model"
)

// AddToCart добавляет quantity единиц товара в корзину сессии.
// Наличие товара в каталоге не проверяется.
func (s *Service) AddToCart(sessionID string, productID, quantity int) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	s.carts.GetCart(sessionID).AddItem(productID, quantity)
}

// UpdateCartItem устанавливает количество товара; quantity <= 0 удаляет строку.
func (s *Service) UpdateCartItem(sessionID string, productID, quantity int) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	s.carts.GetCart(sessionID).UpdateItem(productID, quantity)
}

// RemoveFromCart удаляет строку корзины.
func (s *Service) RemoveFromCart(sessionID string, productID int) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	s.carts.GetCart(sessionID).RemoveItem(productID)
}

// CartCount возвращает общее количество товаров в корзине.
func (s *Service) CartCount(sessionID string) int {
	return s.carts.GetCart(sessionID).TotalItems()
}

// IsCartEmpty сообщает, что корзина сессии пуста.
func (s *Service) IsCartEmpty(sessionID string) bool {
	return s.carts.GetCart(sessionID).IsEmpty()
}

// CartView сопоставляет строки корзины с каталогом. Строки с товарами, которых нет
// в каталоге, пропускаются и не входят в итоговую сумму.
func (s *Service) CartView(sessionID string) model.CartView {
	return s.cartView(s.carts.GetCart(sessionID))
}

func (s *Service) cartView(cart *model.Cart) model.CartView {
	view := model.CartView{Total: decimal.Zero}

	for _, item := range cart.Items() {
		product, ok := s.catalog.FindByID(item.ProductID)
		if !ok {
			continue
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, model.CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}

	return view
}

// CartModal формирует уведомление о добавлении товара в корзину на языке lang.
func (s *Service) CartModal(productID, quantity int, lang string) model.CartModal {
	modal := model.CartModal{Lang: lang, Type: model.CartModalAdd}

	product, ok := s.catalog.FindByID(productID)
	if !ok {
		return modal
	}

	price := product.Price
	modal.ProductName = product.Name(lang)
	modal.Quantity = quantity
	modal.Price = &price
	return modal
}
