// Package service реализует бизнес-логику пекарни: корзины, заказы и сессии пользователей.
package service

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
)

var (
	// ErrEmptyCart возвращается при оформлении заказа из пустой корзины.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotLoggedIn возвращается, если операция требует входа пользователя.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrOrderNotFound возвращается, если заказ не найден в истории пользователя.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPasswordMismatch возвращается, если новый пароль и подтверждение различаются.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Catalog описывает доступ к каталогу товаров.
type Catalog interface {
	FindAll() []*model.Product
	FindByID(id int) (*model.Product, bool)
	FindByCategory(category string) []*model.Product
	Categories() []string
}

// CartRepository описывает хранилище корзин сессий.
type CartRepository interface {
	GetCart(sessionID string) *model.Cart
	ClearCart(sessionID string)
}

// OrderRepository описывает хранилище истории заказов.
type OrderRepository interface {
	FindByUsername(username string) []model.Order
	AddOrder(username string, order model.Order)
	SetOrderHistory(username string, orders []model.Order)
	HasOrderHistory(username string) bool
}

// UserRepository описывает хранилище сессий пользователей и их настроек.
type UserRepository interface {
	Login(sessionID, username string)
	Logout(sessionID string)
	GetUsername(sessionID string) (string, bool)
	SaveAddress(username string, address model.Address)
	GetAddress(username string) (model.Address, bool)
	SavePickupDetails(sessionID string, details model.PickupDetails)
	GetPickupDetails(sessionID string) (model.PickupDetails, bool)
	SaveLastPaymentMethod(sessionID, method string)
	GetLastPaymentMethod(sessionID string) string
}

// Randomizer — источник случайных чисел в диапазоне [0, n).
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option настраивает сервис.
type Option func(*Service)

// WithRand задаёт источник случайных чисел для номеров и истории заказов.
func WithRand(r Randomizer) Option {
	return func(s *Service) {
		s.rand = r
	}
}

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger задаёт логгер сервиса.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service координирует каталог, корзины, заказы и данные пользователей.
//
// Все изменения корзины одной сессии, включая оформление заказа, выполняются
// под эксклюзивной блокировкой этой сессии.
type Service struct {
	catalog Catalog
	carts   CartRepository
	orders  OrderRepository
	users   UserRepository

	logger *zap.Logger
	rand   Randomizer
	now    func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	historyMu sync.Mutex
}

// NewService создаёт сервис поверх указанных хранилищ.
func NewService(catalog Catalog, carts CartRepository, orders OrderRepository, users UserRepository, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		users:   users,
		logger:  zap.NewNop(),
		rand:    globalRand{},
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// lockSession захватывает блокировку сессии и возвращает функцию её освобождения.
func (s *Service) lockSession(sessionID string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[sessionID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// Products возвращает все товары каталога.
func (s *Service) Products() []*model.Product {
	return s.catalog.FindAll()
}

// ProductByID возвращает товар по идентификатору.
func (s *Service) ProductByID(id int) (*model.Product, bool) {
	return s.catalog.FindByID(id)
}

// ProductsByCategory возвращает товары категории; "all" возвращает весь каталог.
func (s *Service) ProductsByCategory(category string) []*model.Product {
	return s.catalog.FindByCategory(category)
}

// Categories возвращает категории каталога.
func (s *Service) Categories() []string {
	return s.catalog.Categories()
}
