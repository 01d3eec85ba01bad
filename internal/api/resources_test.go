package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyodha/terminal/internal/serviceerr"
)

func TestClient_Search(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/stocks/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reliance", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "nse", r.URL.Query().Get("exchange"))

		writeJSON(t, w, http.StatusOK, []Stock{{Symbol: "RELIANCE", Exchange: "NSE", Name: "Reliance Industries"}})
	})

	client, _ := newTestClient(t, mux)

	stocks, err := client.Search(t.Context(), "  reliance ", "nse", 5)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "RELIANCE", stocks[0].Symbol)
}

func TestClient_SearchQueryTooShort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/stocks/search", func(w http.ResponseWriter, r *http.Request) {
		t.Error("short queries must not reach the platform")
	})

	client, _ := newTestClient(t, mux)

	tests := []struct {
		name  string
		query string
	}{
		{name: "two ascii runes", query: "re"},
		{name: "padded whitespace only counts the runes", query: "  re  "},
		// Multibyte queries are measured in runes, not bytes.
		{name: "one multibyte rune", query: "日"},
		{name: "two multibyte runes", query: "日本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Search(t.Context(), tt.query, "", 5)
			require.Error(t, err)

			var coded *serviceerr.Error
			require.ErrorAs(t, err, &coded)
			assert.Equal(t, serviceerr.CodeValidation, coded.Err)
		})
	}
}

func TestClient_HistoryRejectsNonNSE(t *testing.T) {
	mux := http.NewServeMux()

	client, _ := newTestClient(t, mux)

	_, err := client.History(t.Context(), "bse", "RELIANCE", ResolutionOneDay, 0, 100)
	require.Error(t, err)

	var coded *serviceerr.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, serviceerr.CodeValidation, coded.Err)
}

func TestClient_History(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/stocks/nse/RELIANCE/history", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ONE_DAY", r.URL.Query().Get("resolution"))
		assert.Equal(t, "1700000000", r.URL.Query().Get("from"))
		assert.Equal(t, "1700086400", r.URL.Query().Get("to"))

		writeJSON(t, w, http.StatusOK, []HistoryPoint{
			{T: 1700000000, O: 100, H: 110, L: 95, C: 105, V: 12345},
		})
	})

	client, _ := newTestClient(t, mux)

	points, err := client.History(t.Context(), "nse", "RELIANCE", ResolutionOneDay, 1700000000, 1700086400)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 105.0, points[0].C, 0.0001)
}

func TestClient_Trends(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/market/trends", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TOP_LOSERS", r.URL.Query().Get("type"))
		assert.Equal(t, "SYNIFTY100", r.URL.Query().Get("index"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		writeJSON(t, w, http.StatusOK, []Trend{
			{Company: Company{Name: "Tata Steel"}, Stats: Stats{LTP: 120.5}},
		})
	})

	client, _ := newTestClient(t, mux)

	trends, err := client.Trends(t.Context(), TrendTopLosers, IndexNifty100, 10)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "Tata Steel", trends[0].Company.Name)
}

func TestClient_PlaceOrder(t *testing.T) {
	limitPrice := "2450.00"

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		var create OrderCreate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&create))

		assert.Equal(t, OrderTypeLimit, create.OrderType)
		assert.Equal(t, TransactionBuy, create.TransactionType)
		require.NotNil(t, create.LimitPrice)
		assert.Equal(t, limitPrice, *create.LimitPrice)

		writeJSON(t, w, http.StatusCreated, Order{
			ID:              "o1",
			PortfolioID:     create.PortfolioID,
			Symbol:          create.Symbol,
			Exchange:        create.Exchange,
			OrderType:       create.OrderType,
			TransactionType: create.TransactionType,
			Quantity:        create.Quantity,
			LimitPrice:      create.LimitPrice,
			Status:          OrderStatusPending,
			CreatedAt:       "2026-01-02T03:04:05Z",
		})
	})

	client, _ := newTestClient(t, mux)

	order, err := client.PlaceOrder(t.Context(), OrderCreate{
		PortfolioID:     "p1",
		Symbol:          "RELIANCE",
		Exchange:        "NSE",
		OrderType:       OrderTypeLimit,
		TransactionType: TransactionBuy,
		Quantity:        5,
		LimitPrice:      &limitPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestClient_CancelOrderConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/orders/o1/cancel", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"detail": "Order already executed"})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.CancelOrder(t.Context(), "o1")
	require.Error(t, err)

	var coded *serviceerr.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, serviceerr.CodeConflict, coded.Err)
}

func TestClient_WatchlistStockLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/watchlists/w1/stocks", func(w http.ResponseWriter, r *http.Request) {
		var payload stockIdentifier
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "NSE", payload.Exchange)
		assert.Equal(t, "INFY", payload.Symbol)

		writeJSON(t, w, http.StatusCreated, WatchlistStock{
			Symbol:   payload.Symbol,
			Exchange: payload.Exchange,
			AddedAt:  "2026-01-02T03:04:05Z",
		})
	})
	mux.HandleFunc("DELETE /api/v1/watchlists/w1/stocks/NSE/INFY", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestClient(t, mux)

	added, err := client.AddWatchlistStock(t.Context(), "w1", "NSE", "INFY")
	require.NoError(t, err)
	assert.Equal(t, "INFY", added.Symbol)

	err = client.RemoveWatchlistStock(t.Context(), "w1", "NSE", "INFY")
	require.NoError(t, err)
}

func TestClient_PortfolioPerformance(t *testing.T) {
	want := PortfolioPerformance{
		PortfolioID:          "p1",
		TotalCostBasis:       "10000.00",
		CurrentMarketValue:   "10500.00",
		TotalUnrealizedPL:    "500.00",
		CalculationTimestamp: "2026-01-02T03:04:05Z",
		MissingPriceData:     []string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/portfolios/p1/performance", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, want)
	})

	client, _ := newTestClient(t, mux)

	performance, err := client.Performance(t.Context(), "p1")
	require.NoError(t, err)

	if diff := cmp.Diff(want, performance); diff != "" {
		t.Fatalf("Unexpected performance payload (-want, +got):\n%s", diff)
	}
}

func TestClient_RecentNews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/news/recent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10800", r.URL.Query().Get("last_seconds"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		ago := "5 minutes ago"
		writeJSON(t, w, http.StatusOK, []News{
			{ID: "n1", Title: "Markets rally", CreatedAt: "2026-01-02T03:04:05Z", Ago: &ago},
		})
	})

	client, _ := newTestClient(t, mux)

	news, err := client.RecentNews(t.Context(), 10800, 5)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Markets rally", news[0].Title)
}
