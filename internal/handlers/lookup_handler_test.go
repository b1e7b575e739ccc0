package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbiancareli/studio-manager/internal/lookup"
)

func lookupRouter(t *testing.T, upstream string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viacep := lookup.NewViaCEPClient(upstream, nil, zerolog.Nop())
	ibge := lookup.NewIBGEClient(upstream, nil, zerolog.Nop())
	whatsapp := lookup.NewWhatsAppSender("", "", "", zerolog.Nop())

	h := NewLookupHandler(viacep, ibge, whatsapp)

	r := gin.New()
	r.GET("/external/cep/:cep", h.AddressByCEP)
	r.GET("/external/states", h.States)
	r.POST("/external/whatsapp/generate-link", h.GenerateWhatsAppLink)
	r.POST("/external/whatsapp/send", h.SendWhatsAppMessage)
	return r
}

func TestLookupCEPEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer srv.Close()

	r := lookupRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/external/cep/01310-100", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Bela Vista", body["neighborhood"])
	assert.Equal(t, "SP", body["state"])
}

func TestLookupCEPEndpointRejectsBadCEP(t *testing.T) {
	r := lookupRouter(t, "http://unused")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/external/cep/12", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_cep")
}

func TestLookupCEPEndpointUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := lookupRouter(t, srv.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/external/cep/01310100", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "upstream_unavailable")
}

func TestGenerateWhatsAppLinkEndpoint(t *testing.T) {
	r := lookupRouter(t, "http://unused")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/external/whatsapp/generate-link",
		strings.NewReader(`{"phone":"(11) 98765-4321","message":"oi"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://wa.me/11987654321")
}

func TestGenerateWhatsAppLinkEndpointRejectsShortPhone(t *testing.T) {
	r := lookupRouter(t, "http://unused")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/external/whatsapp/generate-link",
		strings.NewReader(`{"phone":"123","message":"oi"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_phone")
}

func TestSendWhatsAppFallsBackToLink(t *testing.T) {
	// unconfigured provider degrades to a wa.me link instead of failing
	r := lookupRouter(t, "http://unused")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/external/whatsapp/send",
		strings.NewReader(`{"phone":"11987654321","message":"oi"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://wa.me/11987654321")
}
