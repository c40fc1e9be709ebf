// Package repository содержит хранилища состояния пекарни: каталог товаров,
// корзины, историю заказов и данные пользователей.
package repository

import (
	"sync"

	"github.com/mmeshcher/bakkerij/internal/model"
)

// MemoryCartRepository хранит корзины сессий в памяти процесса.
type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

// NewMemoryCartRepository создаёт пустое хранилище корзин.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]*model.Cart)}
}

// GetCart возвращает корзину сессии, создавая её при первом обращении.
func (r *MemoryCartRepository) GetCart(sessionID string) *model.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		cart = model.NewCart()
		r.carts[sessionID] = cart
	}
	return cart
}

// ClearCart очищает корзину сессии, сохраняя сам объект корзины.
func (r *MemoryCartRepository) ClearCart(sessionID string) {
	r.mu.Lock()
	cart, ok := r.carts[sessionID]
	r.mu.Unlock()

	if ok {
		cart.Clear()
	}
}

// MemoryOrderRepository хранит историю заказов пользователей, новые заказы идут первыми.
type MemoryOrderRepository struct {
	mu      sync.RWMutex
	history map[string][]model.Order
}

// NewMemoryOrderRepository создаёт пустое хранилище заказов.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{history: make(map[string][]model.Order)}
}

// FindByUsername возвращает копию истории заказов пользователя.
func (r *MemoryOrderRepository) FindByUsername(username string) []model.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := r.history[username]
	res := make([]model.Order, len(orders))
	copy(res, orders)
	return res
}

// AddOrder вставляет заказ в начало истории пользователя.
func (r *MemoryOrderRepository) AddOrder(username string, order model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.history[username]
	next := make([]model.Order, 0, len(orders)+1)
	next = append(next, order)
	next = append(next, orders...)
	r.history[username] = next
}

// SetOrderHistory заменяет историю пользователя списком orders без пересортировки.
func (r *MemoryOrderRepository) SetOrderHistory(username string, orders []model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history[username] = append([]model.Order(nil), orders...)
}

// HasOrderHistory сообщает, записывалась ли история для пользователя.
// Пустая, но записанная история тоже считается существующей.
func (r *MemoryOrderRepository) HasOrderHistory(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.history[username]
	return ok
}

// MemoryUserRepository хранит привязку сессий к пользователям, адреса,
// данные самовывоза и последний способ оплаты.
type MemoryUserRepository struct {
	mu                sync.RWMutex
	sessions          map[string]string
	addresses         map[string]model.Address
	pickupDetails     map[string]model.PickupDetails
	lastPaymentMethod map[string]string
}

// NewMemoryUserRepository создаёт пустое хранилище пользователей.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		sessions:          make(map[string]string),
		addresses:         make(map[string]model.Address),
		pickupDetails:     make(map[string]model.PickupDetails),
		lastPaymentMethod: make(map[string]string),
	}
}

// Login привязывает сессию к имени пользователя.
func (r *MemoryUserRepository) Login(sessionID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = username
}

// Logout отвязывает сессию от пользователя.
func (r *MemoryUserRepository) Logout(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
}

// GetUsername возвращает имя пользователя сессии.
func (r *MemoryUserRepository) GetUsername(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.sessions[sessionID]
	return name, ok
}

// SaveAddress перезаписывает адрес пользователя.
func (r *MemoryUserRepository) SaveAddress(username string, address model.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.addresses[username] = address
}

// GetAddress возвращает адрес пользователя.
func (r *MemoryUserRepository) GetAddress(username string) (model.Address, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.addresses[username]
	return a, ok
}

// SavePickupDetails перезаписывает дату и время самовывоза сессии.
func (r *MemoryUserRepository) SavePickupDetails(sessionID string, details model.PickupDetails) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pickupDetails[sessionID] = details
}

// GetPickupDetails возвращает данные самовывоза сессии.
func (r *MemoryUserRepository) GetPickupDetails(sessionID string) (model.PickupDetails, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.pickupDetails[sessionID]
	return d, ok
}

// SaveLastPaymentMethod запоминает способ оплаты сессии.
func (r *MemoryUserRepository) SaveLastPaymentMethod(sessionID, method string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastPaymentMethod[sessionID] = method
}

// GetLastPaymentMethod возвращает последний способ оплаты сессии или пустую строку.
func (r *MemoryUserRepository) GetLastPaymentMethod(sessionID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastPaymentMethod[sessionID]
}
