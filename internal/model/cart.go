package model

import (
	"sort"
	"sync"
)

// MaxLineQuantity — наибольшее количество одного товара в корзине.
const MaxLineQuantity = 9999

// Cart — корзина одной сессии: productID -> количество.
// Количество в корзине всегда больше нуля.
type Cart struct {
	mu    sync.RWMutex
	items map[int]int
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{items: make(map[int]int)}
}

// AddItem увеличивает количество товара на quantity.
// Итоговое количество ограничено MaxLineQuantity.
func (c *Cart) AddItem(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.items[productID] + min(quantity, MaxLineQuantity)
	if total <= 0 {
		delete(c.items, productID)
		return
	}
	c.items[productID] = min(total, MaxLineQuantity)
}

// UpdateItem устанавливает количество товара. Количество <= 0 удаляет строку,
// количество больше MaxLineQuantity заменяется на MaxLineQuantity.
func (c *Cart) UpdateItem(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		delete(c.items, productID)
		return
	}
	c.items[productID] = min(quantity, MaxLineQuantity)
}

// RemoveItem удаляет строку корзины. Удаление отсутствующей строки ничего не делает.
func (c *Cart) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, productID)
}

// Quantity возвращает количество товара в корзине или 0.
func (c *Cart) Quantity(productID int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items[productID]
}

// CartItem — пара productID и количество.
type CartItem struct {
	ProductID int
	Quantity  int
}

// Items возвращает копию строк корзины, упорядоченную по productID.
func (c *Cart) Items() []CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]CartItem, 0, len(c.items))
	for id, qty := range c.items {
		res = append(res, CartItem{ProductID: id, Quantity: qty})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ProductID < res[j].ProductID })
	return res
}

// TotalItems возвращает сумму количеств всех строк.
func (c *Cart) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, qty := range c.items {
		total += qty
	}
	return total
}

// Clear очищает корзину на месте.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
}

// IsEmpty сообщает, что корзина пуста.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items) == 0
}
