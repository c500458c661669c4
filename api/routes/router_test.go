package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketplace-zw/storefront-backend/internal/cart"
	checkoutsvc "github.com/marketplace-zw/storefront-backend/internal/checkout"
	"github.com/marketplace-zw/storefront-backend/internal/coupons"
	"github.com/marketplace-zw/storefront-backend/internal/notifications"
	"github.com/marketplace-zw/storefront-backend/internal/payments"
	"github.com/marketplace-zw/storefront-backend/internal/pricing"
	"github.com/marketplace-zw/storefront-backend/pkg/config"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/logger"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type memoryCartStore struct {
	carts   map[string][]types.LineItem
	snaps   map[string][]types.LineItem
	coupons map[string]*coupons.Coupon
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{
		carts:   map[string][]types.LineItem{},
		snaps:   map[string][]types.LineItem{},
		coupons: map[string]*coupons.Coupon{},
	}
}

func (s *memoryCartStore) GetCart(_ context.Context, cartID string) ([]types.LineItem, error) {
	return s.carts[cartID], nil
}

func (s *memoryCartStore) SaveCart(_ context.Context, cartID string, items []types.LineItem) error {
	s.carts[cartID] = items
	return nil
}

func (s *memoryCartStore) GetCheckoutCart(_ context.Context, cartID string) ([]types.LineItem, error) {
	return s.snaps[cartID], nil
}

func (s *memoryCartStore) SaveCheckoutCart(_ context.Context, cartID string, items []types.LineItem) error {
	s.snaps[cartID] = items
	return nil
}

func (s *memoryCartStore) GetAppliedCoupon(_ context.Context, cartID string) (*coupons.Coupon, error) {
	return s.coupons[cartID], nil
}

func (s *memoryCartStore) SaveAppliedCoupon(_ context.Context, cartID string, coupon *coupons.Coupon) error {
	if coupon == nil {
		delete(s.coupons, cartID)
		return nil
	}
	s.coupons[cartID] = coupon
	return nil
}

func (s *memoryCartStore) ClearCheckoutState(_ context.Context, cartID string) error {
	delete(s.carts, cartID)
	delete(s.snaps, cartID)
	delete(s.coupons, cartID)
	return nil
}

type memorySessions struct {
	sessions map[string]*checkoutsvc.Session
}

func (s *memorySessions) Get(_ context.Context, reference string) (*checkoutsvc.Session, error) {
	session, ok := s.sessions[reference]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}
	copied := *session
	return &copied, nil
}

func (s *memorySessions) Save(_ context.Context, session *checkoutsvc.Session) error {
	copied := *session
	s.sessions[session.Reference] = &copied
	return nil
}

func (s *memorySessions) Delete(_ context.Context, reference string) error {
	delete(s.sessions, reference)
	return nil
}

type confirmPolicy struct{}

func (confirmPolicy) Confirmed(payments.Request) bool {
	return true
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Pricing: config.PricingConfig{
			FreeShippingThreshold: "50",
			StandardShippingRate:  "9.99",
			TaxRate:               "0.08",
		},
		Payment: config.PaymentConfig{
			PayNowSuccessRate: 1,
			BankName:          "ZB Bank",
			BankAccountName:   "Marketplace ZW",
			BankAccountNumber: "4501-000123-405",
			BankBranchCode:    "4501",
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *memoryCartStore) {
	t.Helper()

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	cartStore := newMemoryCartStore()
	sessions := &memorySessions{sessions: map[string]*checkoutsvc.Session{}}
	sink := notifications.NewLogSink(logg)

	engine, err := pricing.NewEngine(cfg.Pricing)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}

	simulator, err := payments.NewSimulator(cfg.Payment, confirmPolicy{})
	if err != nil {
		t.Fatalf("build simulator: %v", err)
	}

	cartService, err := cart.NewService(cartStore, coupons.NewRegistry(), engine, sink, nil)
	if err != nil {
		t.Fatalf("build cart service: %v", err)
	}

	checkoutService, err := checkoutsvc.NewService(sessions, cartStore, engine, simulator, sink, nil)
	if err != nil {
		t.Fatalf("build checkout service: %v", err)
	}

	return NewRouter(cfg, logg, stubPinger{}, nil, cartService, checkoutService), cartStore
}

func doJSON(t *testing.T, router http.Handler, method, path, cartID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cartID != "" {
		req.Header.Set("X-Cart-Id", cartID)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected payload %T", envelope.Data)
	}
	return data
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := doJSON(t, router, http.MethodGet, path, "", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestCartAssignsIdentityWhenHeaderMissing(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/cart/", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Cart-Id") == "" {
		t.Fatal("expected an assigned cart id header")
	}
}

func TestCartAddItemRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "c1", map[string]any{
		"title": "incomplete",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUnknownCheckoutReference(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/checkout/MP-missing/", "c1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestFullCheckoutFlow(t *testing.T) {
	router, cartStore := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "c1", map[string]any{
		"product_id": "p1",
		"title":      "Mbira",
		"unit_price": "30",
		"quantity":   1,
		"category":   "physical",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", "c1", map[string]any{"code": "WELCOME10"})
	if resp.Code != http.StatusOK {
		t.Fatalf("apply coupon: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", "c1", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("begin checkout: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	entry := decodeData(t, resp)
	reference, _ := entry["reference"].(string)
	if reference == "" {
		t.Fatalf("missing checkout reference in %v", entry)
	}

	base := fmt.Sprintf("/api/v1/checkout/%s", reference)

	resp = doJSON(t, router, http.MethodPost, base+"/advance", "c1", map[string]any{
		"customer": map[string]any{
			"first_name":  "Tendai",
			"last_name":   "Moyo",
			"email":       "tendai@example.com",
			"phone":       "+263771234567",
			"address":     "12 Samora Machel Ave",
			"city":        "Harare",
			"postal_code": "0000",
			"country":     "ZW",
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("advance customer: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, base+"/advance", "c1", map[string]any{
		"payment_method": "paynow",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("advance payment: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if step := decodeData(t, resp)["step"]; step != "review" {
		t.Fatalf("expected review step, got %v", step)
	}

	resp = doJSON(t, router, http.MethodPost, base+"/submit", "c1", map[string]any{
		"terms_accepted": true,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("submit: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, base+"/confirm", "c1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if completed := decodeData(t, resp)["completed"]; completed != true {
		t.Fatalf("expected completed order, got %v", completed)
	}

	if len(cartStore.carts["c1"]) != 0 || cartStore.coupons["c1"] != nil {
		t.Fatal("completion must clear the stored cart and coupon")
	}
}

func TestCODCompletesOnSubmit(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "c2", map[string]any{
		"product_id": "p9",
		"title":      "Basket",
		"unit_price": "60",
		"quantity":   1,
		"category":   "physical",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201 got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", "c2", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("begin checkout: expected 201 got %d", resp.Code)
	}
	reference := decodeData(t, resp)["reference"].(string)
	base := fmt.Sprintf("/api/v1/checkout/%s", reference)

	doJSON(t, router, http.MethodPost, base+"/advance", "c2", map[string]any{
		"customer": map[string]any{
			"first_name":  "Rudo",
			"last_name":   "Ncube",
			"email":       "rudo@example.com",
			"phone":       "+263712345678",
			"address":     "5 Leopold Takawira St",
			"city":        "Bulawayo",
			"postal_code": "0000",
			"country":     "ZW",
		},
	})
	doJSON(t, router, http.MethodPost, base+"/advance", "c2", map[string]any{"payment_method": "cod"})

	resp = doJSON(t, router, http.MethodPost, base+"/submit", "c2", map[string]any{"terms_accepted": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("submit: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	data := decodeData(t, resp)
	session, _ := data["session"].(map[string]any)
	if session == nil || session["completed"] != true {
		t.Fatalf("cod order should complete on submit, got %v", data)
	}
}
