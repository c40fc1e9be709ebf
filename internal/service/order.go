package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
)

const (
	// OrderDateLayout — формат даты и времени оформленного заказа.
	OrderDateLayout = "02/01/2006 15:04"
	// HistoryDateLayout — формат даты заказа из сгенерированной истории.
	HistoryDateLayout = "2006-01-02"

	orderNumberMin   = 10000
	orderNumberRange = 90000

	// HistoryCategory — категория товаров для сгенерированной истории.
	HistoryCategory = "brood"

	historyMaxOrders   = 6
	historyMaxQuantity = 200
	historyMaxLineQty  = 20
	historyMaxDaysAgo  = 365
)

// Checkout создаёт заказ из представления корзины и добавляет его в начало истории пользователя.
// Номер заказа — случайное пятизначное число без проверки уникальности.
// Пустое представление корзины возвращает ErrEmptyCart, заказ при этом не создаётся.
func (s *Service) Checkout(username string, view model.CartView) (model.Order, error) {
	if view.IsEmpty() {
		return model.Order{}, ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		item, err := model.NewOrderItem(line.Product, line.Quantity)
		if err != nil {
			return model.Order{}, fmt.Errorf("build order item: %w", err)
		}
		items = append(items, item)
	}

	number := orderNumberMin + s.rand.IntN(orderNumberRange)
	date := s.now().Format(OrderDateLayout)

	order, err := model.NewOrder(number, date, items, model.SumSubtotals(items))
	if err != nil {
		return model.Order{}, fmt.Errorf("build order: %w", err)
	}

	s.orders.AddOrder(username, order)

	s.logger.Info("order placed",
		zap.String("username", username),
		zap.Int("order", order.Number),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// PlaceOrder оформляет заказ из корзины сессии и очищает корзину.
// Возвращает false без ошибки, если в корзине нет товаров из каталога.
func (s *Service) PlaceOrder(sessionID string) (model.Order, bool, error) {
	unlock := s.lockSession(sessionID)
	defer unlock()

	username, ok := s.users.GetUsername(sessionID)
	if !ok {
		return model.Order{}, false, ErrNotLoggedIn
	}

	cart := s.carts.GetCart(sessionID)
	if cart.IsEmpty() {
		return model.Order{}, false, nil
	}

	view := s.cartView(cart)
	if view.IsEmpty() {
		return model.Order{}, false, nil
	}

	order, err := s.Checkout(username, view)
	if err != nil {
		return model.Order{}, false, err
	}

	s.carts.ClearCart(sessionID)

	return order, true, nil
}

// OrderHistory возвращает историю заказов пользователя, новые заказы первыми.
func (s *Service) OrderHistory(username string) []model.Order {
	return s.orders.FindByUsername(username)
}

// FindOrderByNumber возвращает первый заказ пользователя с указанным номером.
func (s *Service) FindOrderByNumber(username string, number int) (model.Order, bool) {
	for _, o := range s.orders.FindByUsername(username) {
		if o.Number == number {
			return o, true
		}
	}
	return model.Order{}, false
}

// RepeatOrder добавляет в корзину сессии все позиции заказа из истории пользователя.
func (s *Service) RepeatOrder(sessionID string, number int) error {
	username, ok := s.users.GetUsername(sessionID)
	if !ok {
		return ErrNotLoggedIn
	}

	order, ok := s.FindOrderByNumber(username, number)
	if !ok {
		return ErrOrderNotFound
	}

	unlock := s.lockSession(sessionID)
	defer unlock()

	cart := s.carts.GetCart(sessionID)
	for _, item := range order.Items {
		cart.AddItem(item.Product.ID, item.Quantity)
	}

	return nil
}

// GenerateOrderHistory создаёт демонстрационную историю заказов при первом входе пользователя.
// Если история уже есть, она возвращается без изменений.
func (s *Service) GenerateOrderHistory(username string) []model.Order {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	if s.orders.HasOrderHistory(username) {
		return s.orders.FindByUsername(username)
	}

	orders := make([]model.Order, 0)
	orderCount := s.rand.IntN(historyMaxOrders + 1)

	pool := s.catalog.FindByCategory(HistoryCategory)
	if len(pool) == 0 {
		return orders
	}

	now := s.now()
	for i := 0; i < orderCount; i++ {
		var items []model.OrderItem

		remaining := s.rand.IntN(historyMaxQuantity) + 1
		for remaining > 0 {
			product := pool[s.rand.IntN(len(pool))]
			qty := min(s.rand.IntN(historyMaxLineQty)+1, remaining)

			item, err := model.NewOrderItem(product, qty)
			if err != nil {
				s.logger.Error("generate order item", zap.Error(err))
				return orders
			}
			items = append(items, item)
			remaining -= qty
		}

		daysAgo := s.rand.IntN(historyMaxDaysAgo)
		date := now.AddDate(0, 0, -daysAgo).Format(HistoryDateLayout)

		order, err := model.NewOrder(orderCount-i, date, items, model.SumSubtotals(items))
		if err != nil {
			s.logger.Error("generate order", zap.Error(err))
			return orders
		}
		orders = append(orders, order)
	}

	s.orders.SetOrderHistory(username, orders)

	s.logger.Debug("order history generated",
		zap.String("username", username),
		zap.Int("orders", len(orders)),
	)

	return orders
}
