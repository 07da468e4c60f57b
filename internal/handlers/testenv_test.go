package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chicfit/storefront/internal/models"
	"github.com/chicfit/storefront/internal/notify"
	"github.com/chicfit/storefront/internal/service"
	"github.com/chicfit/storefront/internal/service/token"
)

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

type stubPublisher struct {
	mu     sync.Mutex
	events []map[string]string
}

func (p *stubPublisher) PublishEvent(_ context.Context, topic, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, map[string]string{"topic": topic, "key": key})
	return nil
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Mailer *stubMailer
	Pub    *stubPublisher

	Auth     *AuthHandler
	Products *ProductHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.User{}, &models.RefreshToken{},
		&models.Order{}, &models.OrderItem{},
		&models.Return{}, &models.ReturnItem{},
		&models.Review{}, &models.ContactMessage{}, &models.NewsletterSubscriber{},
	))

	mailer := &stubMailer{}
	pub := &stubPublisher{}
	tokens := &token.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Mailer: mailer,
		Pub:    pub,
		Auth:   &AuthHandler{DB: db, Tokens: tokens, Events: pub},
		Products: &ProductHandler{
			DB:     db,
			Events: pub,
		},
		Checkout: &CheckoutHandler{
			Checkout: &service.Checkout{DB: db, Mailer: mailer, Events: pub},
		},
		Orders: &OrderHandler{
			Orders: &service.Orders{DB: db, Mailer: mailer, Events: pub},
		},
	}
}

func (env *testEnv) doJSONRequest(method, path string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body bytes.Buffer
	if payload != nil {
		require.NoError(env.T, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// as stamps the identity the auth middleware would have set.
func as(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

func (env *testEnv) seedProduct(name string, price float64, stock int) models.Product {
	p := models.Product{Name: name, Description: name, Price: price, Category: "women", Stock: stock}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func validCheckoutPayload(productID uint, qty int) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product": productID, "quantity": qty},
		},
		"shippingAddress": map[string]string{
			"firstName":  "Ada",
			"lastName":   "Lovelace",
			"address":    "12 Analytical St",
			"city":       "London",
			"country":    "UK",
			"postalCode": "E1 6AN",
			"email":      "ada@example.com",
		},
		"paymentMethod": "card",
	}
}
