package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniPOS/internal/app"
	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/ledger"
)

const metricsToken = "test-token"

func newPOSTS(t *testing.T, limitPerMin int) *httptest.Server {
	t.Helper()

	cat := catalog.New(catalog.NewMemStore())
	if err := catalog.Seed(context.Background(), cat, catalog.DefaultProducts()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	led := ledger.New(ledger.NewMemStore())
	reg := prometheus.NewRegistry()

	h := app.NewHandler(
		app.Deps{
			Catalog:  cat,
			Ledger:   led,
			Checkout: &cart.Service{Catalog: cat, Ledger: led, Metrics: cart.NewMetrics(reg)},
		},
		app.HTTPDeps{
			Log:              zap.NewNop(),
			Service:          "posd",
			Registry:         reg,
			MetricsEnabled:   true,
			MetricsToken:     metricsToken,
			WriteLimitPerMin: limitPerMin,
		},
	)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestPOS_HappyPath(t *testing.T) {
	ts := newPOSTS(t, 0)

	{
		resp, _ := doJSON(t, http.MethodGet, ts.URL+"/readyz", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("readyz status=%d", resp.StatusCode)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodGet, ts.URL+"/products", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("products status=%d", resp.StatusCode)
		}
		var products []catalog.Product
		if err := json.Unmarshal(raw, &products); err != nil {
			t.Fatalf("decode products: %v body=%s", err, raw)
		}
		if len(products) != 10 || products[0].Name != "Bone" {
			t.Fatalf("products=%+v", products)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPut, ts.URL+"/products/Caneta", map[string]any{"unit_price": "3.00"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("upsert status=%d body=%s", resp.StatusCode, raw)
		}
	}

	var receipt cart.Receipt
	{
		resp, raw := doJSON(t, http.MethodPost, ts.URL+"/checkouts", map[string]any{
			"items": []map[string]any{
				{"product": "Caneta", "qty": 4},
				{"product": "Bone", "qty": 2},
			},
		}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("checkout status=%d body=%s", resp.StatusCode, raw)
		}
		if err := json.Unmarshal(raw, &receipt); err != nil {
			t.Fatalf("decode receipt: %v body=%s", err, raw)
		}
		if receipt.Total.StringFixed(2) != "51.80" {
			t.Fatalf("total=%s", receipt.Total)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodGet, ts.URL+"/sales", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("sales status=%d", resp.StatusCode)
		}
		var sales []ledger.SaleRecord
		if err := json.Unmarshal(raw, &sales); err != nil {
			t.Fatalf("decode sales: %v", err)
		}
		if len(sales) != 2 || sales[0].Product != "Bone" || sales[1].CheckoutID != receipt.CheckoutID {
			t.Fatalf("sales=%+v", sales)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodGet, ts.URL+"/sales/summary", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("summary status=%d", resp.StatusCode)
		}
		var sum ledger.Summary
		if err := json.Unmarshal(raw, &sum); err != nil {
			t.Fatalf("decode summary: %v", err)
		}
		if sum.Units != 6 || sum.Revenue.StringFixed(2) != "51.80" {
			t.Fatalf("summary=%+v", sum)
		}
	}
}

func TestPOS_ErrorEnvelope(t *testing.T) {
	ts := newPOSTS(t, 0)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/checkouts", map[string]any{"items": []any{}}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var e struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("decode: %v body=%s", err, raw)
	}
	if e.Error != "empty cart" || e.RequestID == "" {
		t.Fatalf("error body=%s", raw)
	}
}

func TestPOS_MetricsRequiresToken(t *testing.T) {
	ts := newPOSTS(t, 0)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("no token status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{"Authorization": "Bearer wrong"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("wrong token status=%d", resp.StatusCode)
	}

	doJSON(t, http.MethodPost, ts.URL+"/checkouts", map[string]any{
		"items": []map[string]any{{"product": "Bone", "qty": 1}},
	}, nil)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil, map[string]string{"Authorization": "Bearer " + metricsToken})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status=%d", resp.StatusCode)
	}
	body := string(raw)
	for _, want := range []string{"pos_http_requests_total", `pos_checkouts_total{result="ok"} 1`} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestPOS_WriteRateLimit(t *testing.T) {
	ts := newPOSTS(t, 2)

	for i := 0; i < 2; i++ {
		resp, raw := doJSON(t, http.MethodPut, ts.URL+"/products/Caneta", map[string]any{"unit_price": "2.50"}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("attempt %d status=%d body=%s", i, resp.StatusCode, raw)
		}
	}

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/products/Caneta", map[string]any{"unit_price": "2.50"}, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	// reads are not limited
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/products/Caneta", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("read status=%d", resp.StatusCode)
	}
}
