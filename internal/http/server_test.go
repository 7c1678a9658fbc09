package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cuppa/internal/kv"
	"cuppa/internal/services"
	"cuppa/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := kv.NewMemory()
	habits := services.NewHabitService(
		store.NewDrinkLogStore(mem),
		store.NewBudgetStore(mem),
		store.NewCoinStore(mem),
		store.NewCupStore(mem),
	)
	srv := NewServer("127.0.0.1:0", habits, false)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateLog(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/logs", map[string]any{
		"type":   "COFFEE",
		"amount": 4.5,
		"name":   "Latte",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	res := decode[services.LogResult](t, resp)
	if res.Reward != 100 {
		t.Errorf("reward = %d, want 100", res.Reward)
	}
	if res.Log.ID == "" || res.Log.Type != "COFFEE" {
		t.Errorf("log = %+v, want assigned id and COFFEE type", res.Log)
	}

	listResp, err := http.Get(ts.URL + "/api/logs")
	if err != nil {
		t.Fatal(err)
	}
	logs := decode[[]map[string]any](t, listResp)
	if len(logs) != 1 {
		t.Errorf("ledger has %d logs, want 1", len(logs))
	}
}

func TestCreateLogAcceptsLegacyTypeAlias(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/logs", map[string]any{
		"type":   "BOBA",
		"amount": 6,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	res := decode[services.LogResult](t, resp)
	if res.Log.Type != "BUBBLE" {
		t.Errorf("type = %q, want normalized BUBBLE", res.Log.Type)
	}
}

func TestCreateLogValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unknown type", map[string]any{"type": "TEA", "amount": 3}, http.StatusUnprocessableEntity},
		{"zero amount", map[string]any{"type": "COFFEE", "amount": 0}, http.StatusUnprocessableEntity},
		{"negative amount", map[string]any{"type": "COFFEE", "amount": -2}, http.StatusUnprocessableEntity},
		{"bad date", map[string]any{"type": "COFFEE", "amount": 3, "date": "not-a-date"}, http.StatusUnprocessableEntity},
		{"conflicting names", map[string]any{"type": "COFFEE", "amount": 3, "customName": "X"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/logs", tt.body)
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestClearLogs(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/api/logs", map[string]any{"type": "COFFEE", "amount": 3}).Body.Close()

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/logs", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	listResp, err := http.Get(ts.URL + "/api/logs")
	if err != nil {
		t.Fatal(err)
	}
	if logs := decode[[]map[string]any](t, listResp); len(logs) != 0 {
		t.Errorf("ledger has %d logs after clear, want 0", len(logs))
	}
}

func TestBudgetRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/budget")
	if err != nil {
		t.Fatal(err)
	}
	if b := decode[budgetResponse](t, resp); b.HasBudget {
		t.Error("fresh state should have no budget")
	}

	setResp := doJSON(t, http.MethodPut, ts.URL+"/api/budget", map[string]any{"value": 150.0})
	if b := decode[budgetResponse](t, setResp); !b.HasBudget || b.Budget != 150 {
		t.Errorf("after set: %+v, want budget 150", b)
	}

	clearResp := doJSON(t, http.MethodPut, ts.URL+"/api/budget", map[string]any{"value": 0})
	if b := decode[budgetResponse](t, clearResp); b.HasBudget {
		t.Errorf("after clear: %+v, want no budget", b)
	}
}

func TestCoins(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/coins")
	if err != nil {
		t.Fatal(err)
	}
	if c := decode[map[string]int](t, resp); c["coins"] != store.DefaultCoins {
		t.Errorf("coins = %d, want %d", c["coins"], store.DefaultCoins)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/logs", map[string]any{"type": "COFFEE", "amount": 3}).Body.Close()

	resetResp := doJSON(t, http.MethodPost, ts.URL+"/api/coins/reset", nil)
	if c := decode[map[string]int](t, resetResp); c["coins"] != store.DefaultCoins {
		t.Errorf("coins after reset = %d, want %d", c["coins"], store.DefaultCoins)
	}
}

func TestCupPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cups")
	if err != nil {
		t.Fatal(err)
	}
	cups := decode[[]services.CupListing](t, resp)
	if len(cups) != 10 {
		t.Fatalf("catalog has %d cups, want 10", len(cups))
	}
	if !cups[0].Owned || !cups[0].Current {
		t.Errorf("default cup listing = %+v, want owned and current", cups[0])
	}

	buyResp := doJSON(t, http.MethodPost, ts.URL+"/api/cups/2/purchase", nil)
	if buyResp.StatusCode != http.StatusOK {
		t.Fatalf("purchase status = %d, want 200", buyResp.StatusCode)
	}
	buyResp.Body.Close()

	again := doJSON(t, http.MethodPost, ts.URL+"/api/cups/2/purchase", nil)
	again.Body.Close()
	if again.StatusCode != http.StatusConflict {
		t.Errorf("repurchase status = %d, want 409", again.StatusCode)
	}

	unknown := doJSON(t, http.MethodPost, ts.URL+"/api/cups/42/purchase", nil)
	unknown.Body.Close()
	if unknown.StatusCode != http.StatusNotFound {
		t.Errorf("unknown cup status = %d, want 404", unknown.StatusCode)
	}

	// Galaxy Cup costs more than the remaining balance.
	broke := doJSON(t, http.MethodPost, ts.URL+"/api/cups/10/purchase", nil)
	broke.Body.Close()
	if broke.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("insufficient coins status = %d, want 422", broke.StatusCode)
	}
}

func TestSelectCup(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/cups/current", map[string]any{"id": 3})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("select unowned status = %d, want 409", resp.StatusCode)
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/cups/2/purchase", nil).Body.Close()

	ok := doJSON(t, http.MethodPut, ts.URL+"/api/cups/current", map[string]any{"id": 2})
	if ok.StatusCode != http.StatusOK {
		t.Fatalf("select owned status = %d, want 200", ok.StatusCode)
	}
	if body := decode[map[string]int](t, ok); body["currentCup"] != 2 {
		t.Errorf("currentCup = %d, want 2", body["currentCup"])
	}
}

func TestOverviewReflectsNewLogs(t *testing.T) {
	ts := newTestServer(t)

	url := fmt.Sprintf("%s/api/overview?window=month&date=2024-03-15", ts.URL)

	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	before := decode[services.Overview](t, resp)
	if len(before.Logs) != 0 {
		t.Fatalf("fresh overview has %d logs, want 0", len(before.Logs))
	}

	doJSON(t, http.MethodPost, ts.URL+"/api/logs", map[string]any{
		"type": "COFFEE", "amount": 3, "date": "2024-03-10",
	}).Body.Close()

	// The cached overview must be invalidated by the write.
	resp2, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	after := decode[services.Overview](t, resp2)
	if len(after.Logs) != 1 {
		t.Errorf("overview after write has %d logs, want 1", len(after.Logs))
	}
	if after.Summary.TotalSpent != 3 {
		t.Errorf("TotalSpent = %v, want 3", after.Summary.TotalSpent)
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/dashboard")
	if err != nil {
		t.Fatal(err)
	}
	dash := decode[services.Dashboard](t, resp)
	if dash.Coins != store.DefaultCoins {
		t.Errorf("Coins = %d, want %d", dash.Coins, store.DefaultCoins)
	}
	if dash.CurrentCup != store.DefaultCupID {
		t.Errorf("CurrentCup = %d, want %d", dash.CurrentCup, store.DefaultCupID)
	}
	if !dash.NewDay {
		t.Error("first dashboard fetch should report a new day")
	}
}
