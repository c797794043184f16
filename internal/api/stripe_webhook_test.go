package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aebox-api/internal/database"
	"aebox-api/internal/models"
	"aebox-api/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// stubProvider returns canned parse results so handler behavior can be
// driven without real Stripe payloads.
type stubProvider struct {
	event         *services.ProviderEvent
	parseErr      error
	emailErr      error
	emailFailures int // transient CustomerEmail failures before succeeding
}

func (s *stubProvider) ParseEvent(payload []byte, sigHeader string) (*services.ProviderEvent, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.event, nil
}

func (s *stubProvider) CustomerEmail(customerID string) (string, error) {
	if s.emailErr != nil {
		return "", s.emailErr
	}
	if s.emailFailures > 0 {
		s.emailFailures--
		return "", errors.New("stripe timeout")
	}
	return "alice@example.com", nil
}

func (s *stubProvider) SubscriptionDetail(subscriptionID string) (*services.PlanDetail, error) {
	return &services.PlanDetail{
		ID:               subscriptionID,
		Status:           "active",
		Interval:         "month",
		CurrentPeriodEnd: time.Now().Add(30 * 24 * time.Hour),
		Amount:           999,
		Currency:         "usd",
		TransactionID:    "in_1",
	}, nil
}

func (s *stubProvider) CreateCheckoutSession(params services.CheckoutParams) (string, error) {
	return "https://checkout.test/session", nil
}

func setupWebhookTest(t *testing.T, provider *stubProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Subscription{}, &models.PaymentHistory{}))
	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		_ = sqlDB.Close()
	})

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	paymentProvider = provider
	subscriptionService = services.NewSubscriptionService(provider, nil)
	replayProtection = services.NewReplayProtection(redisClient)

	r := gin.New()
	r.POST("/api/subscriptions/:username", func(c *gin.Context) {
		switch c.Param("username") {
		case "webhook":
			StripeWebhook(c)
		case "checkout":
			CreateCheckoutSession(c)
		default:
			UpsertSubscription(c)
		}
	})
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions/webhook", strings.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=stubbed")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{parseErr: errors.New("bad signature")})

	w := postWebhook(r, `{"id":"evt_1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookRejectsEmptyBody(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{})

	w := postWebhook(r, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookProcessesEvent(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{
		event: &services.ProviderEvent{
			ID:             "evt_1",
			Kind:           services.EventCheckoutCompleted,
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
			DeviceID:       "device_abc",
		},
	})

	w := postWebhook(r, `{"id":"evt_1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	sub, err := database.GetSubscriptionByUsername("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "device_abc", sub.DeviceID)
}

func TestWebhookAcknowledgesDuplicate(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{
		event: &services.ProviderEvent{
			ID:             "evt_1",
			Kind:           services.EventCheckoutCompleted,
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		},
	})

	first := postWebhook(r, `{"id":"evt_1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postWebhook(r, `{"id":"evt_1"}`)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Duplicate")

	history, err := database.GetPaymentHistoryByUsername("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestWebhookRedeliveryAfterFailureReprocesses(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{
		event: &services.ProviderEvent{
			ID:             "evt_1",
			Kind:           services.EventCheckoutCompleted,
			CustomerID:     "cus_1",
			SubscriptionID: "sub_1",
		},
		emailFailures: 1,
	})

	// A failed dispatch returns 500 and must leave no trace in the
	// replay guard: the provider's redelivery has to do the real work.
	first := postWebhook(r, `{"id":"evt_1"}`)
	require.Equal(t, http.StatusInternalServerError, first.Code)

	second := postWebhook(r, `{"id":"evt_1"}`)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.NotContains(t, second.Body.String(), "Duplicate")

	sub, err := database.GetSubscriptionByUsername("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "active", sub.Status)
}

func TestWebhookRetriesOnStoreFailure(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{
		event: &services.ProviderEvent{
			ID:         "evt_1",
			Kind:       services.EventCheckoutCompleted,
			CustomerID: "cus_1",
		},
		emailErr: errors.New("stripe is down"),
	})

	w := postWebhook(r, `{"id":"evt_1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReservedNamesDoNotShadowUsernames(t *testing.T) {
	r := setupWebhookTest(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions/alice@example.com",
		strings.NewReader(`{"subscription_type":"monthly","status":"active"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	_, err := database.GetSubscriptionByUsername("alice@example.com")
	assert.NoError(t, err)
}
