package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/lookup"
)

// ======================================================
// HANDLER
// ======================================================

// LookupHandler proxies the external directories (ViaCEP, IBGE) and the
// WhatsApp sender. Address and locality lookups are public; message
// operations require a session.
type LookupHandler struct {
	viacep   *lookup.ViaCEPClient
	ibge     *lookup.IBGEClient
	whatsapp *lookup.WhatsAppSender
}

func NewLookupHandler(
	viacep *lookup.ViaCEPClient,
	ibge *lookup.IBGEClient,
	whatsapp *lookup.WhatsAppSender,
) *LookupHandler {
	return &LookupHandler{viacep: viacep, ibge: ibge, whatsapp: whatsapp}
}

// ======================================================
// ADDRESS / LOCALITIES
// ======================================================

func (h *LookupHandler) AddressByCEP(c *gin.Context) {
	addr, err := h.viacep.AddressByCEP(c.Request.Context(), c.Param("cep"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (h *LookupHandler) States(c *gin.Context) {
	states, err := h.ibge.States(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

func (h *LookupHandler) CitiesByState(c *gin.Context) {
	cities, err := h.ibge.CitiesByState(c.Request.Context(), c.Param("stateId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// ======================================================
// WHATSAPP
// ======================================================

type WhatsAppMessageRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *LookupHandler) GenerateWhatsAppLink(c *gin.Context) {
	var req WhatsAppMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	link, err := lookup.Link(req.Phone, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (h *LookupHandler) SendWhatsAppMessage(c *gin.Context) {
	var req WhatsAppMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.whatsapp.Send(req.Phone, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *LookupHandler) writeError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_cep"):
		httperr.BadRequest(c, "invalid_cep", "CEP inválido. Informe 8 dígitos.")
	case httperr.IsBusiness(err, "cep_not_found"):
		httperr.NotFound(c, "cep_not_found", "CEP não encontrado.")
	case httperr.IsBusiness(err, "invalid_phone"):
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido. Informe DDD e número.")
	case errors.Is(err, lookup.ErrUnavailable):
		httperr.UpstreamUnavailable(c, "upstream_unavailable", "Serviço externo indisponível no momento.")
	default:
		httperr.Internal(c, "lookup_error", "Erro ao consultar serviço externo.")
	}
}
