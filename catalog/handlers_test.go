package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"snatchup/models"
)

func TestGetProductsRejectsMalformedPriceFilters(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"bad min", "/api/products?min=abc"},
		{"bad max", "/api/products?max=1x0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			GetProducts(rec, httptest.NewRequest(http.MethodGet, tc.url, nil), nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 for %s, got %d", tc.url, rec.Code)
			}
		})
	}
}

func TestGetProductsAppliesValidPriceFilters(t *testing.T) {
	rec := httptest.NewRecorder()
	GetProducts(rec, httptest.NewRequest(http.MethodGet, "/api/products?min=300", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products at or above $300, got %d", len(got))
	}
	for _, p := range got {
		if p.Price < 300 {
			t.Fatalf("product %q priced %v below the filter", p.Name, p.Price)
		}
	}
}
