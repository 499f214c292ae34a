package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/api/middleware"
	cartsvc "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/internal/cart"
	pkgAuth "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
)

type recordingCartService struct {
	cartsvc.Service
	addedProduct uuid.UUID
	addedQty     int
}

func (r *recordingCartService) AddItem(ctx context.Context, sess pkgAuth.Session, productID uuid.UUID, quantity int) (*cartsvc.CartView, error) {
	r.addedProduct = productID
	r.addedQty = quantity
	return cartsvc.EmptyView(), nil
}

func (r *recordingCartService) GetCart(ctx context.Context, sess pkgAuth.Session) (*cartsvc.CartView, error) {
	return cartsvc.EmptyView(), nil
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	svc := &recordingCartService{}
	handler := CartAdd(svc, nil)

	productID := uuid.New()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":"`+productID.String()+`"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.addedProduct != productID {
		t.Fatalf("expected product %s, got %s", productID, svc.addedProduct)
	}
	if svc.addedQty != 1 {
		t.Fatalf("expected default quantity 1, got %d", svc.addedQty)
	}
}

func TestCartAddRejectsMalformedProductID(t *testing.T) {
	handler := CartAdd(&recordingCartService{}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(http.MethodPost, "/api/v1/cart/items", `{"product_id":"not-a-uuid"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCartFetchAnonymousIsEmpty(t *testing.T) {
	handler := CartFetch(&recordingCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), pkgAuth.Anonymous))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data cartsvc.CartView `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode cart view: %v", err)
	}
	if body.Data.Count != 0 || !body.Data.Total.IsZero() {
		t.Fatalf("expected empty cart, got %+v", body.Data)
	}
}
