package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/api/response"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/factory"
	"github.com/P4CodeMaxxers/DBS2-Backend/internal/testutil"
)

// testServer wraps the wired router for end-to-end request tests
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp(t)
	require.NoError(t, app.GameData.Init())

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		PlayerService:      app.PlayerService,
		WalletService:      app.WalletService,
		ShopService:        app.ShopService,
		LeaderboardService: app.LeaderboardService,
		AshTrailService:    app.AshTrailService,
		PriceCache:         app.PriceCache,
		GameData:           app.GameData,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, userKey string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if userKey != "" {
		req.Header.Set("X-User-Key", userKey)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestGetPlayerRequiresIdentity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/player", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetPlayerCreatesOnFirstAccess(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/player", nil, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.UserKey)
	assert.Equal(t, int64(0), resp.Satoshis)
	assert.Equal(t, resp.Satoshis, resp.Crypto)
	assert.False(t, resp.CompletedAll)
}

func TestIdentityFromBearerToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dbs2/player", nil)
	req.Header.Set("Authorization", "Bearer bob")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "bob", resp.UserKey)
}

func TestUpdatePlayerFieldMap(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"crypto":            5000,
		"wallet_eth":        1.25,
		"has_seen_intro":    true,
		"completed_laundry": true,
	}
	rr := ts.request(http.MethodPut, "/api/dbs2/player", body, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(5000), resp.Satoshis)
	assert.Equal(t, 1.25, resp.Wallet["ethereum"])
	assert.True(t, resp.HasSeenIntro)
	assert.True(t, resp.Minigames["laundry"])
	assert.False(t, resp.CompletedAll)
}

func TestUpdatePlayerRejectsUnknownField(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"crypto": 5000, "hax": true}
	rr := ts.request(http.MethodPut, "/api/dbs2/player", body, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// The valid field must not have been applied either
	rr = ts.request(http.MethodGet, "/api/dbs2/crypto", nil, "alice")
	var crypto response.CryptoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &crypto))
	assert.Equal(t, int64(0), crypto.Crypto)
}

func TestUpdatePlayerAcceptsNumericStrings(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"crypto": "750"}
	rr := ts.request(http.MethodPut, "/api/dbs2/player", body, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(750), resp.Satoshis)
}

func TestCryptoAddAndSet(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"crypto": 100}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"add": 50}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.CryptoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(150), resp.Crypto)

	// Negative adds clamp at zero
	rr = ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"add": -1000}, "alice")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Crypto)
}

func TestInventoryLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/dbs2/inventory",
		map[string]string{"name": "Burnt Ledger", "found_at": "archive"}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var inv response.InventoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &inv))
	require.Len(t, inv.Inventory, 1)
	assert.Equal(t, "Burnt Ledger", inv.Inventory[0].Name)

	rr = ts.request(http.MethodDelete, "/api/dbs2/inventory", map[string]int{"index": 0}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &inv))
	assert.Empty(t, inv.Inventory)
}

func TestScoreMonotonicity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/dbs2/scores",
		map[string]any{"game": "laundry", "score": 80}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ScoresResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.IsHighScore)

	rr = ts.request(http.MethodPut, "/api/dbs2/scores",
		map[string]any{"game": "laundry", "score": 40}, "alice")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.IsHighScore)
	assert.Equal(t, 80.0, resp.Scores["laundry"])
}

func TestMinigamesCompletionDerivesCompletedAll(t *testing.T) {
	ts := newTestServer(t)

	games := []string{"crypto_miner", "infinite_user", "laundry", "ash_trail", "whackarat"}
	var resp response.MinigamesResponse
	for _, game := range games {
		rr := ts.request(http.MethodPut, "/api/dbs2/minigames", map[string]bool{game: true}, "alice")
		assert.Equal(t, http.StatusOK, rr.Code)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	assert.True(t, resp.CompletedAll)
}

func TestWalletConvert(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"crypto": 100_000_000}, "alice")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/dbs2/wallet/convert",
		map[string]any{"from": "satoshis", "to": "bitcoin", "amount": 100_000_000}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var conv struct {
		ToAmount float64            `json:"to_amount"`
		Wallet   map[string]float64 `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &conv))
	assert.InDelta(t, 0.95, conv.ToAmount, 1e-9)
	assert.Equal(t, 0.0, conv.Wallet["satoshis"])
}

func TestWalletConvertInsufficientBalance(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/dbs2/wallet/convert",
		map[string]any{"from": "satoshis", "to": "bitcoin", "amount": 1000}, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBitcoinBoost(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/bitcoin-boost", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.BitcoinBoostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 100_000.0, resp.BTCPriceUSD)
	assert.InDelta(t, 1.1, resp.BoostMultiplier, 1e-9)
}

func TestShopPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/shop", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"crypto": 3000}, "alice")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/dbs2/shop/purchase",
		map[string]string{"item_id": "scrap_crypto_miner"}, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	var receipt response.PurchaseResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &receipt))
	assert.Equal(t, 500.0, receipt.NewBalance)
	assert.True(t, receipt.ScrapOwned["crypto_miner"])

	// Second purchase conflicts
	rr = ts.request(http.MethodPost, "/api/dbs2/shop/purchase",
		map[string]string{"item_id": "scrap_crypto_miner"}, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGlobalLeaderboard(t *testing.T) {
	ts := newTestServer(t)

	for i, key := range []string{"alice", "bob", "carol"} {
		rr := ts.request(http.MethodPut, "/api/dbs2/crypto",
			map[string]int64{"crypto": int64((i + 1) * 100)}, key)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/dbs2/leaderboard?limit=2", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.LeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "carol", resp.Leaderboard[0].UserKey)
	assert.Equal(t, int64(300), resp.Leaderboard[0].Crypto)
}

func TestAshTrailRunFlow(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"book_id": "defi_grimoire",
		"score":   250,
		"trace":   []map[string]float64{{"x": 0, "y": 0}, {"x": 1, "y": 1}},
	}
	rr := ts.request(http.MethodPost, "/api/dbs2/ashtrail/runs", body, "alice")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var run response.RunDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
	assert.Equal(t, 100.0, run.Score) // clamped
	assert.NotZero(t, run.ID)

	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/dbs2/ashtrail/runs/%d", run.ID), nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/dbs2/ashtrail/runs?book=defi_grimoire", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.RunListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Runs, 1)
	assert.Equal(t, "alice", list.Runs[0].Name)
}

func TestAshTrailGuestSubmitNeedsName(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"book_id": "defi_grimoire", "score": 10}
	rr := ts.request(http.MethodPost, "/api/dbs2/ashtrail/runs", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body["guest_name"] = "Wandering Ghost"
	rr = ts.request(http.MethodPost, "/api/dbs2/ashtrail/runs", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAshTrailBookLeaderboard(t *testing.T) {
	ts := newTestServer(t)

	for key, score := range map[string]float64{"alice": 60, "bob": 90} {
		body := map[string]any{"book_id": "lost_ledger", "score": score}
		rr := ts.request(http.MethodPost, "/api/dbs2/ashtrail/runs", body, key)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/dbs2/ashtrail/leaderboard?book=lost_ledger", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.BookLeaderboardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Leaderboard, 2)
	assert.Equal(t, "bob", resp.Leaderboard[0].Name)

	rr = ts.request(http.MethodGet, "/api/dbs2/ashtrail/leaderboard?book=unknown", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestItemsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/dbs2/items", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var items response.ItemsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Len(t, items.Items, 2)

	rr = ts.request(http.MethodGet, "/api/dbs2/items/count", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "2")

	rr = ts.request(http.MethodGet, "/api/dbs2/items/0", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/dbs2/items/99", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPasswordRotation(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"old": "backendintegration", "new": "freshword"}
	rr := ts.request(http.MethodPost, "/api/dbs2/items/passwords/rotate", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PasswordsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"freshword"}, resp.Passwords)

	// Banned words are rejected
	body = map[string]string{"old": "freshword", "new": "adminpanel"}
	rr = ts.request(http.MethodPost, "/api/dbs2/items/passwords/rotate", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/dbs2/crypto", map[string]int64{"crypto": 500}, "alice")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/dbs2/admin/players", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.PlayersResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	// Admin reset
	rr = ts.request(http.MethodPut, "/api/dbs2/admin/players/alice", map[string]bool{"reset": true}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, int64(0), p.Satoshis)

	// Bulk update
	rr = ts.request(http.MethodPost, "/api/dbs2/admin/bulk",
		map[string]any{"action": "add_crypto", "amount": 1000}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/dbs2/admin/stats", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "total_players")

	// Unknown player lookups are 404, not creations
	rr = ts.request(http.MethodGet, "/api/dbs2/admin/players/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminPurgeGuests(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"book_id": "defi_grimoire", "score": 10, "guest_name": "Ghosty"}
	rr := ts.request(http.MethodPost, "/api/dbs2/ashtrail/runs", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/dbs2/admin/guests", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PurgeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.DeletedRuns)
}
