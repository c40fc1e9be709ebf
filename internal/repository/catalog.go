package repository

import (
	"sort"

	"github.com/mmeshcher/bakkerij/internal/model"
)

// CategoryAll — категория, для которой фильтрация не выполняется.
const CategoryAll = "all"

// Catalog — неизменяемый каталог товаров, загруженный при старте.
// После создания доступен только на чтение, поэтому блокировки не нужны.
type Catalog struct {
	products []*model.Product
	byID     map[int]*model.Product
}

// NewCatalog создаёт каталог из списка товаров. Товары упорядочиваются по идентификатору,
// при повторе идентификатора остаётся первый товар.
func NewCatalog(products []*model.Product) *Catalog {
	c := &Catalog{
		products: make([]*model.Product, 0, len(products)),
		byID:     make(map[int]*model.Product, len(products)),
	}

	for _, p := range products {
		if p == nil {
			continue
		}
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		c.byID[p.ID] = p
		c.products = append(c.products, p)
	}

	sort.SliceStable(c.products, func(i, j int) bool { return c.products[i].ID < c.products[j].ID })

	return c
}

// FindAll возвращает все товары каталога.
func (c *Catalog) FindAll() []*model.Product {
	res := make([]*model.Product, len(c.products))
	copy(res, c.products)
	return res
}

// FindByID возвращает товар по идентификатору.
func (c *Catalog) FindByID(id int) (*model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// FindByCategory возвращает товары с точным совпадением категории.
// Для CategoryAll возвращается весь каталог.
func (c *Catalog) FindByCategory(category string) []*model.Product {
	if category == CategoryAll {
		return c.FindAll()
	}

	res := make([]*model.Product, 0)
	for _, p := range c.products {
		if p.Category == category {
			res = append(res, p)
		}
	}
	return res
}

// Categories возвращает список категорий в порядке первого появления.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var res []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		res = append(res, p.Category)
	}
	return res
}

// Len возвращает количество товаров в каталоге.
func (c *Catalog) Len() int {
	return len(c.products)
}
