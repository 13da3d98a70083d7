package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/P4CodeMaxxers/DBS2-Backend/internal/model"
)

// DefaultFeedURL is the CoinGecko simple-price endpoint
const DefaultFeedURL = "https://api.coingecko.com/api/v3"

// fetchTimeout bounds the blocking price-feed call
const fetchTimeout = 5 * time.Second

// CoinGeckoClient fetches USD spot prices from the CoinGecko API.
// Coin ids match CoinGecko ids directly (bitcoin, ethereum, ...).
type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a client against the public CoinGecko API
func NewCoinGeckoClient() *CoinGeckoClient {
	return NewCoinGeckoClientWithURL(DefaultFeedURL)
}

// NewCoinGeckoClientWithURL creates a client against a custom base URL
// (used in tests)
func NewCoinGeckoClientWithURL(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Ensure CoinGeckoClient implements Source
var _ Source = (*CoinGeckoClient)(nil)

// Quotes fetches USD prices and 24h change for the given coins
func (c *CoinGeckoClient) Quotes(ctx context.Context, coins []model.CoinID) (map[model.CoinID]Quote, error) {
	ids := make([]string, len(coins))
	for i, coin := range coins {
		ids[i] = string(coin)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")

	reqURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD       float64 `json:"usd"`
		Change24h float64 `json:"usd_24h_change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	quotes := make(map[model.CoinID]Quote, len(body))
	for id, q := range body {
		quotes[model.CoinID(id)] = Quote{USD: q.USD, Change24h: q.Change24h}
	}
	return quotes, nil
}
