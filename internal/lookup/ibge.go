package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbiancareli/studio-manager/internal/metrics"
)

type State struct {
	ID     int    `json:"id"`
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
}

type City struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// IBGEClient proxies the IBGE locality directory (states and
// municipalities), ordered by name.
type IBGEClient struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	log     zerolog.Logger
}

func NewIBGEClient(baseURL string, cache *Cache, log zerolog.Logger) *IBGEClient {
	return &IBGEClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		log:     log,
	}
}

func (c *IBGEClient) States(ctx context.Context) ([]State, error) {
	var states []State
	if c.cache.Get(ctx, "ibge:states", &states) {
		return states, nil
	}

	url := fmt.Sprintf("%s/localidades/estados?orderBy=nome", c.baseURL)
	if err := c.getJSON(ctx, url, &states); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, "ibge:states", states)
	return states, nil
}

func (c *IBGEClient) CitiesByState(ctx context.Context, stateID string) ([]City, error) {
	cacheKey := "ibge:cities:" + stateID

	var cities []City
	if c.cache.Get(ctx, cacheKey, &cities) {
		return cities, nil
	}

	url := fmt.Sprintf("%s/localidades/estados/%s/municipios?orderBy=nome", c.baseURL, stateID)
	if err := c.getJSON(ctx, url, &cities); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, cacheKey, cities)
	return cities, nil
}

func (c *IBGEClient) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("ibge request failed")
		metrics.IncLookupFailure("ibge")
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("url", url).Msg("ibge returned error status")
		metrics.IncLookupFailure("ibge")
		return ErrUnavailable
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		metrics.IncLookupFailure("ibge")
		return ErrUnavailable
	}
	return nil
}
