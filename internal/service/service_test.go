package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/notify"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.User{},
		&models.Order{}, &models.OrderItem{},
		&models.Return{}, &models.ReturnItem{},
	))
	return db
}

type stubMailer struct {
	mu   sync.Mutex
	sent []notify.Email
}

func (m *stubMailer) Send(_ context.Context, msg notify.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type stubStatusCache struct {
	mu sync.Mutex
	m  map[uint]models.OrderStatus
}

func newStubStatusCache() *stubStatusCache {
	return &stubStatusCache{m: make(map[uint]models.OrderStatus)}
}

func (c *stubStatusCache) SetOrderStatus(_ context.Context, orderID uint, status models.OrderStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[orderID] = status
}

func (c *stubStatusCache) GetOrderStatus(_ context.Context, orderID uint) (models.OrderStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status, ok := c.m[orderID]
	return status, ok
}

type publishedEvent struct {
	Topic string
	Key   string
	Event any
}

type stubPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *stubPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *stubPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	p := models.Product{Name: name, Description: name, Price: price, Category: "women", Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Address:    "12 Analytical St",
		City:       "London",
		Country:    "UK",
		PostalCode: "E1 6AN",
		Email:      "ada@example.com",
	}
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}
