package service

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/repository"
)

var fixedNow = time.Date(2026, 3, 10, 14, 5, 0, 0, time.UTC)

// seqRand возвращает заранее заданную последовательность значений.
type seqRand struct {
	vals []int
	pos  int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.pos%len(r.vals)]
	r.pos++
	return v % n
}

func newProduct(id int, price, category string) *model.Product {
	return &model.Product{
		ID:       id,
		Names:    model.LocalizedText{NL: "Product NL", EN: "Product EN"},
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func defaultCatalog() *repository.Catalog {
	return repository.NewCatalog([]*model.Product{
		newProduct(1, "2.50", "brood"),
		newProduct(2, "1.50", "brood"),
		newProduct(3, "4.00", "gebak"),
	})
}

type fixture struct {
	svc    *Service
	carts  *repository.MemoryCartRepository
	orders *repository.MemoryOrderRepository
	users  *repository.MemoryUserRepository
}

func newFixture(t *testing.T, catalog *repository.Catalog, opts ...Option) fixture {
	t.Helper()

	f := fixture{
		carts:  repository.NewMemoryCartRepository(),
		orders: repository.NewMemoryOrderRepository(),
		users:  repository.NewMemoryUserRepository(),
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	f.svc = NewService(catalog, f.carts, f.orders, f.users, opts...)
	return f
}

func TestCartTotals(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	f.svc.AddToCart("s1", 1, 2)
	f.svc.AddToCart("s1", 1, 3)
	f.svc.AddToCart("s1", 2, 4)
	assert.Equal(t, 9, f.svc.CartCount("s1"))

	f.svc.UpdateCartItem("s1", 1, 1)
	assert.Equal(t, 5, f.svc.CartCount("s1"))

	f.svc.UpdateCartItem("s1", 2, 0)
	f.svc.RemoveFromCart("s1", 42)
	assert.Equal(t, 1, f.svc.CartCount("s1"))

	f.svc.RemoveFromCart("s1", 1)
	assert.Equal(t, 0, f.svc.CartCount("s1"))
	assert.True(t, f.svc.IsCartEmpty("s1"))
}

func TestCartViewDropsUnknownProducts(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	f.svc.AddToCart("s1", 99, 3)
	view := f.svc.CartView("s1")
	assert.True(t, view.IsEmpty())
	assert.True(t, view.Total.IsZero())

	f.svc.AddToCart("s1", 1, 2)
	view = f.svc.CartView("s1")
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Product.ID)
	assert.True(t, decimal.RequireFromString("5.00").Equal(view.Total))
	assert.Equal(t, 5, f.svc.CartCount("s1"))
}

func TestCartModal(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	modal := f.svc.CartModal(1, 2, "en")
	assert.Equal(t, model.CartModalAdd, modal.Type)
	assert.Equal(t, "Product EN", modal.ProductName)
	assert.Equal(t, 2, modal.Quantity)
	require.NotNil(t, modal.Price)
	assert.True(t, decimal.RequireFromString("2.50").Equal(*modal.Price))

	modal = f.svc.CartModal(99, 2, "fr")
	assert.Equal(t, model.CartModal{Lang: "fr", Type: model.CartModalAdd}, modal)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		ok        bool
	}{
		{name: "letters", firstName: "Anna", ok: true},
		{name: "digit", firstName: "Anna2", ok: false},
		{name: "empty", firstName: "", ok: false},
		{name: "blank", firstName: "  ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, defaultCatalog())

			got := f.svc.Login("s1", tt.firstName, "any password")
			assert.Equal(t, tt.ok, got)
			assert.Equal(t, tt.ok, f.svc.IsLoggedIn("s1"))

			name, ok := f.svc.Username("s1")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.firstName, name)
			}
		})
	}
}

func TestLoginGeneratesHistoryOnce(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(rand.New(rand.NewPCG(1, 2))))

	require.True(t, f.svc.Login("s1", "Anna", ""))
	first := f.svc.OrderHistory("Anna")

	require.True(t, f.svc.Login("s2", "Anna", ""))
	assert.Equal(t, first, f.svc.OrderHistory("Anna"))
}

func TestLogoutKeepsCartAndAddress(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	require.True(t, f.svc.Login("s1", "Anna", "secret"))
	f.svc.AddToCart("s1", 1, 2)
	f.svc.UpdateAddress("Anna", model.Address{Street: "Markt 1", Postal: "9000", City: "Gent", Country: "BE"})

	f.svc.Logout("s1")

	assert.False(t, f.svc.IsLoggedIn("s1"))
	assert.Equal(t, 2, f.svc.CartCount("s1"))
	addr, ok := f.svc.Address("Anna")
	require.True(t, ok)
	assert.Equal(t, "Gent", addr.City)
}

func TestCheckoutThenClear(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{2345}}))

	require.True(t, f.svc.Login("s1", "Anna", ""))
	f.orders.SetOrderHistory("Anna", nil)

	f.svc.AddToCart("s1", 1, 2)
	f.svc.AddToCart("s1", 2, 3)

	order, placed, err := f.svc.PlaceOrder("s1")
	require.NoError(t, err)
	require.True(t, placed)

	assert.True(t, decimal.RequireFromString("9.50").Equal(order.Total))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 12345, order.Number)
	assert.Equal(t, "10/03/2026 14:05", order.Date)
	assert.True(t, f.svc.IsCartEmpty("s1"))

	history := f.svc.OrderHistory("Anna")
	require.Len(t, history, 1)
	assert.True(t, order.Equal(history[0]))
}

func TestCheckoutRejectsEmptyView(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	_, err := f.svc.Checkout("Anna", model.CartView{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, f.orders.HasOrderHistory("Anna"))
}

func TestCheckoutOrderNumberRange(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(rand.New(rand.NewPCG(7, 7))))
	f.svc.AddToCart("s1", 1, 1)

	for i := 0; i < 100; i++ {
		order, err := f.svc.Checkout("Anna", f.svc.CartView("s1"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, order.Number, 10000)
		assert.Less(t, order.Number, 100000)
	}
	assert.Len(t, f.svc.OrderHistory("Anna"), 100)
}

func TestPlaceOrderNotLoggedIn(t *testing.T) {
	f := newFixture(t, defaultCatalog())
	f.svc.AddToCart("s1", 1, 1)

	_, placed, err := f.svc.PlaceOrder("s1")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, placed)
	assert.Equal(t, 1, f.svc.CartCount("s1"))
}

func TestPlaceOrderUnresolvableCartIsNoop(t *testing.T) {
	f := newFixture(t, defaultCatalog())
	require.True(t, f.svc.Login("s1", "Anna", ""))
	before := f.svc.OrderHistory("Anna")

	_, placed, err := f.svc.PlaceOrder("s1")
	require.NoError(t, err)
	assert.False(t, placed)

	f.svc.AddToCart("s1", 99, 1)
	_, placed, err = f.svc.PlaceOrder("s1")
	require.NoError(t, err)
	assert.False(t, placed)
	assert.Equal(t, 1, f.svc.CartCount("s1"))
	assert.Equal(t, before, f.svc.OrderHistory("Anna"))
}

func TestPlaceOrderConcurrentWithAdds(t *testing.T) {
	f := newFixture(t, defaultCatalog())
	require.True(t, f.svc.Login("s1", "Anna", ""))
	f.orders.SetOrderHistory("Anna", nil)

	const adds = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < adds; i++ {
			f.svc.AddToCart("s1", 1, 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _, err := f.svc.PlaceOrder("s1")
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	ordered := 0
	for _, o := range f.svc.OrderHistory("Anna") {
		ordered += o.TotalQuantity()
	}
	assert.Equal(t, adds, ordered+f.svc.CartCount("s1"))
}

func TestRepeatOrder(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{0}}))

	assert.ErrorIs(t, f.svc.RepeatOrder("s1", 10000), ErrNotLoggedIn)

	require.True(t, f.svc.Login("s1", "Anna", ""))
	f.orders.SetOrderHistory("Anna", nil)

	f.svc.AddToCart("s1", 1, 2)
	f.svc.AddToCart("s1", 3, 1)
	order, placed, err := f.svc.PlaceOrder("s1")
	require.NoError(t, err)
	require.True(t, placed)

	require.NoError(t, f.svc.RepeatOrder("s1", order.Number))
	require.NoError(t, f.svc.RepeatOrder("s1", order.Number))
	assert.Equal(t, 6, f.svc.CartCount("s1"))

	assert.ErrorIs(t, f.svc.RepeatOrder("s1", 1), ErrOrderNotFound)
}

func TestFindOrderByNumber(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{5}}))
	f.svc.AddToCart("s1", 1, 1)

	order, err := f.svc.Checkout("Anna", f.svc.CartView("s1"))
	require.NoError(t, err)

	got, ok := f.svc.FindOrderByNumber("Anna", order.Number)
	require.True(t, ok)
	assert.Equal(t, order.Number, got.Number)

	_, ok = f.svc.FindOrderByNumber("Anna", 1)
	assert.False(t, ok)
	_, ok = f.svc.FindOrderByNumber("Bob", order.Number)
	assert.False(t, ok)
}

func TestGenerateOrderHistoryDeterministic(t *testing.T) {
	// count=1, target=5, product idx 0 qty 3, product idx 1 qty min(20,2)=2, 10 days ago
	r := &seqRand{vals: []int{1, 4, 0, 2, 1, 19, 10}}
	f := newFixture(t, defaultCatalog(), WithRand(r))

	orders := f.svc.GenerateOrderHistory("Anna")
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, 1, o.Number)
	assert.Equal(t, "2026-02-28", o.Date)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 1, o.Items[0].Product.ID)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, 2, o.Items[1].Product.ID)
	assert.Equal(t, 2, o.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("10.50").Equal(o.Total))
}

func TestGenerateOrderHistoryInvariants(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		f := newFixture(t, defaultCatalog(), WithRand(rand.New(rand.NewPCG(seed, seed+1))))

		orders := f.svc.GenerateOrderHistory("Anna")
		assert.LessOrEqual(t, len(orders), 6)

		for i, o := range orders {
			assert.Equal(t, len(orders)-i, o.Number)
			assert.NotEmpty(t, o.Items)

			qty := o.TotalQuantity()
			assert.GreaterOrEqual(t, qty, 1)
			assert.LessOrEqual(t, qty, 200)

			for _, item := range o.Items {
				assert.Equal(t, HistoryCategory, item.Product.Category)
				assert.GreaterOrEqual(t, item.Quantity, 1)
				assert.LessOrEqual(t, item.Quantity, 20)
			}
			assert.True(t, model.SumSubtotals(o.Items).Equal(o.Total))

			date, err := time.Parse(HistoryDateLayout, o.Date)
			require.NoError(t, err)
			assert.False(t, date.After(fixedNow))
			assert.True(t, date.After(fixedNow.AddDate(0, 0, -366)))
		}
	}
}

func TestGenerateOrderHistoryIdempotent(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{3, 9, 1, 4}}))

	first := f.svc.GenerateOrderHistory("Anna")
	require.Len(t, first, 3)

	second := f.svc.GenerateOrderHistory("Anna")
	assert.Equal(t, first, second)
}

func TestGenerateOrderHistoryIndependentItems(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{2, 5, 0, 3}}))

	orders := f.svc.GenerateOrderHistory("Anna")
	require.Len(t, orders, 2)
	assert.NotSame(t, &orders[0].Items[0], &orders[1].Items[0])
}

func TestGenerateOrderHistoryEmptyPool(t *testing.T) {
	catalog := repository.NewCatalog([]*model.Product{newProduct(3, "4.00", "gebak")})
	f := newFixture(t, catalog, WithRand(&seqRand{vals: []int{5}}))

	orders := f.svc.GenerateOrderHistory("Anna")
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	assert.Empty(t, f.svc.GenerateOrderHistory("Anna"))
}

func TestGenerateOrderHistoryKeepsCheckoutOrders(t *testing.T) {
	f := newFixture(t, defaultCatalog(), WithRand(&seqRand{vals: []int{3}}))
	f.svc.AddToCart("s1", 1, 1)

	order, err := f.svc.Checkout("Anna", f.svc.CartView("s1"))
	require.NoError(t, err)

	history := f.svc.GenerateOrderHistory("Anna")
	require.Len(t, history, 1)
	assert.True(t, order.Equal(history[0]))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	assert.ErrorIs(t, f.svc.ChangePassword("s1", "a", "a"), ErrNotLoggedIn)

	require.True(t, f.svc.Login("s1", "Anna", ""))
	assert.ErrorIs(t, f.svc.ChangePassword("s1", "a", "b"), ErrPasswordMismatch)
	assert.NoError(t, f.svc.ChangePassword("s1", "a", "a"))
}

func TestPreferences(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	assert.Equal(t, "", f.svc.LastPaymentMethod("s1"))
	f.svc.SaveLastPaymentMethod("s1", "ideal")
	f.svc.SaveLastPaymentMethod("s1", "cash")
	assert.Equal(t, "cash", f.svc.LastPaymentMethod("s1"))

	_, ok := f.svc.PickupDetails("s1")
	assert.False(t, ok)
	f.svc.SavePickupDetails("s1", "2026-03-11", "08:30")
	d, ok := f.svc.PickupDetails("s1")
	require.True(t, ok)
	assert.Equal(t, model.PickupDetails{Date: "2026-03-11", Time: "08:30"}, d)
}

func TestCatalogAccess(t *testing.T) {
	f := newFixture(t, defaultCatalog())

	assert.Len(t, f.svc.Products(), 3)
	assert.Len(t, f.svc.ProductsByCategory("brood"), 2)
	assert.Len(t, f.svc.ProductsByCategory("all"), 3)
	assert.Empty(t, f.svc.ProductsByCategory("taart"))
	assert.Equal(t, []string{"brood", "gebak"}, f.svc.Categories())

	_, ok := f.svc.ProductByID(3)
	assert.True(t, ok)
	_, ok = f.svc.ProductByID(4)
	assert.False(t, ok)
}
