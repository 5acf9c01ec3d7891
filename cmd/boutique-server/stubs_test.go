package main

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/category"
	"boutique-backend/internal/customer"
	"boutique-backend/internal/order"
	"boutique-backend/internal/product"
	"boutique-backend/internal/relsql"
	"boutique-backend/internal/user"
)

// memCartRepo keeps carts in memory and resolves the customer relation from
// a seeded customer table, the way the eager select would.
type memCartRepo struct {
	carts     map[int64]cart.ShoppingCart
	customers map[int64]customer.CustomerDetails
	nextID    int64
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{
		carts:     map[int64]cart.ShoppingCart{},
		customers: map[int64]customer.CustomerDetails{},
		nextID:    1,
	}
}

func (m *memCartRepo) hydrate(c cart.ShoppingCart) cart.ShoppingCart {
	if c.CustomerDetailsID != nil {
		if cd, ok := m.customers[*c.CustomerDetailsID]; ok {
			c.CustomerDetails = &cd
		}
	}
	return c
}

func (m *memCartRepo) Save(ctx context.Context, c *cart.ShoppingCart) (*cart.ShoppingCart, error) {
	if c.ID != 0 {
		return nil, cart.ErrIDSet
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	saved := *c
	saved.ID = m.nextID
	m.nextID++
	m.carts[saved.ID] = saved
	return &saved, nil
}

func (m *memCartRepo) Update(ctx context.Context, c *cart.ShoppingCart) (*cart.ShoppingCart, error) {
	if c.ID == 0 {
		return nil, cart.ErrIDRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, ok := m.carts[c.ID]; !ok {
		return nil, cart.ErrNotFound
	}
	m.carts[c.ID] = *c
	return c, nil
}

func (m *memCartRepo) FindByID(ctx context.Context, id int64) (*cart.ShoppingCart, error) {
	c, ok := m.carts[id]
	if !ok {
		return nil, cart.ErrNotFound
	}
	c = m.hydrate(c)
	return &c, nil
}

// slice orders by id and applies the page bounds, mirroring the
// ORDER BY/LIMIT/OFFSET the real repository emits.
func (m *memCartRepo) slice(page *relsql.Page) []cart.ShoppingCart {
	out := make([]cart.ShoppingCart, 0, len(m.carts))
	for _, c := range m.carts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if page != nil && page.Desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	if page == nil {
		return out
	}
	lo := page.Offset
	if lo > int64(len(out)) {
		lo = int64(len(out))
	}
	hi := lo + page.Limit
	if page.Limit <= 0 || hi > int64(len(out)) {
		hi = int64(len(out))
	}
	return out[lo:hi]
}

func (m *memCartRepo) FindAll(ctx context.Context, page *relsql.Page) ([]cart.ShoppingCart, error) {
	return m.slice(page), nil
}

func (m *memCartRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]cart.ShoppingCart, error) {
	out := m.slice(page)
	for i := range out {
		out[i] = m.hydrate(out[i])
	}
	return out, nil
}

func (m *memCartRepo) FindByCustomerDetails(ctx context.Context, customerDetailsID int64) ([]cart.ShoppingCart, error) {
	var out []cart.ShoppingCart
	for _, c := range m.carts {
		if c.CustomerDetailsID != nil && *c.CustomerDetailsID == customerDetailsID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCartRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := m.carts[id]
	return ok, nil
}

func (m *memCartRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.carts)), nil
}

func (m *memCartRepo) DeleteByID(ctx context.Context, id int64) error {
	delete(m.carts, id)
	return nil
}

// memCategoryRepo keeps product categories in memory.
type memCategoryRepo struct {
	categories map[int64]category.ProductCategory
	nextID     int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[int64]category.ProductCategory{}, nextID: 1}
}

func (m *memCategoryRepo) Save(ctx context.Context, c *category.ProductCategory) (*category.ProductCategory, error) {
	if c.ID != 0 {
		return nil, category.ErrIDSet
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	saved := *c
	saved.ID = m.nextID
	m.nextID++
	m.categories[saved.ID] = saved
	return &saved, nil
}

func (m *memCategoryRepo) Update(ctx context.Context, c *category.ProductCategory) (*category.ProductCategory, error) {
	if c.ID == 0 {
		return nil, category.ErrIDRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, ok := m.categories[c.ID]; !ok {
		return nil, category.ErrNotFound
	}
	m.categories[c.ID] = *c
	return c, nil
}

func (m *memCategoryRepo) FindByID(ctx context.Context, id int64) (*category.ProductCategory, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	return &c, nil
}

func (m *memCategoryRepo) FindAll(ctx context.Context, page *relsql.Page) ([]category.ProductCategory, error) {
	var out []category.ProductCategory
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategoryRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := m.categories[id]
	return ok, nil
}

func (m *memCategoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.categories)), nil
}

func (m *memCategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	delete(m.categories, id)
	return nil
}

// memUserRepo keeps user accounts in memory, keyed by their uuid.
type memUserRepo struct {
	users map[string]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]user.User{}}
}

func (m *memUserRepo) Save(ctx context.Context, u *user.User) (*user.User, error) {
	if u.ID != "" {
		return nil, user.ErrIDSet
	}
	for _, existing := range m.users {
		if existing.Login == u.Login || existing.Email == u.Email {
			return nil, user.ErrAlreadyExist
		}
	}
	saved := *u
	saved.ID = uuid.NewString()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	m.users[saved.ID] = saved
	return &saved, nil
}

func (m *memUserRepo) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u.ID == "" {
		return nil, user.ErrIDRequired
	}
	current, ok := m.users[u.ID]
	if !ok {
		return nil, user.ErrNotFound
	}
	saved := *u
	saved.CreatedAt = current.CreatedAt
	saved.UpdatedAt = time.Now()
	m.users[saved.ID] = saved
	return &saved, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (m *memUserRepo) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	for _, u := range m.users {
		if u.Login == login {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memUserRepo) FindAll(ctx context.Context, page *relsql.Page) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memUserRepo) DeleteByID(ctx context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type testEnv struct {
	router     *gin.Engine
	carts      *memCartRepo
	categories *memCategoryRepo
	users      *memUserRepo
}

// newTestEnv wires the router against in-memory stores. Entities a test does
// not touch get services with no backing store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	carts := newMemCartRepo()
	categories := newMemCategoryRepo()
	users := newMemUserRepo()

	s := services{
		users:      user.NewService(users, log),
		customers:  customer.NewService(nil, log),
		carts:      cart.NewService(carts, log),
		orders:     order.NewService(nil, log),
		products:   product.NewService(nil, log),
		categories: category.NewService(categories, log),
	}
	return &testEnv{router: newRouter(s, log), carts: carts, categories: categories, users: users}
}
