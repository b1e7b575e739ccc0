package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/metrics"
)

// ErrUnavailable marks an upstream failure with no usable fallback.
var ErrUnavailable = errors.New("upstream_unavailable")

type CEPAddress struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type ViaCEPClient struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	log     zerolog.Logger
}

func NewViaCEPClient(baseURL string, cache *Cache, log zerolog.Logger) *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
		log:     log,
	}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// AddressByCEP resolves a Brazilian postal code to an address. A CEP
// without exactly 8 digits is rejected before the upstream is called.
func (c *ViaCEPClient) AddressByCEP(ctx context.Context, cep string) (*CEPAddress, error) {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return nil, httperr.ErrBusiness("invalid_cep")
	}

	cacheKey := "cep:" + digits

	var cached CEPAddress
	if c.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("cep", digits).Msg("viacep request failed")
		metrics.IncLookupFailure("viacep")
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("cep", digits).Msg("viacep returned error status")
		metrics.IncLookupFailure("viacep")
		return nil, ErrUnavailable
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.IncLookupFailure("viacep")
		return nil, ErrUnavailable
	}

	if body.Erro {
		return nil, httperr.ErrBusiness("cep_not_found")
	}

	addr := &CEPAddress{
		CEP:          body.CEP,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}

	c.cache.Set(ctx, cacheKey, addr)
	return addr, nil
}

func onlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
