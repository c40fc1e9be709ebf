package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyOrder возвращается при попытке создать заказ без позиций.
	ErrEmptyOrder = errors.New("order must have at least one item")
	// ErrNilProduct возвращается при создании позиции заказа без товара.
	ErrNilProduct = errors.New("order item product is nil")
	// ErrInvalidQuantity возвращается при создании позиции с неположительным количеством.
	ErrInvalidQuantity = errors.New("order item quantity must be positive")
)

// OrderItem — позиция заказа: товар и положительное количество.
type OrderItem struct {
	Product  *Product
	Quantity int
}

// NewOrderItem создаёт позицию заказа, проверяя товар и количество.
func NewOrderItem(product *Product, quantity int) (OrderItem, error) {
	if product == nil {
		return OrderItem{}, ErrNilProduct
	}
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	return OrderItem{Product: product, Quantity: quantity}, nil
}

// Subtotal возвращает цену позиции: цена товара × количество.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order описывает оформленный заказ. Заказы сравниваются только по номеру.
type Order struct {
	Number int
	Date   string
	Items  []OrderItem
	Total  decimal.Decimal
}

// NewOrder создаёт заказ. Список позиций копируется и не может быть пустым.
func NewOrder(number int, date string, items []OrderItem, total decimal.Decimal) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	return Order{
		Number: number,
		Date:   date,
		Items:  append([]OrderItem(nil), items...),
		Total:  total,
	}, nil
}

// TotalQuantity возвращает суммарное количество товаров в заказе.
func (o Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// Equal сравнивает заказы по номеру, независимо от содержимого.
func (o Order) Equal(other Order) bool {
	return o.Number == other.Number
}

// SumSubtotals возвращает сумму цен всех позиций.
func SumSubtotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
