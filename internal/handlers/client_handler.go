package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/httpresp"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// --------- Requests ---------

type ClientAddressRequest struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
}

type CreateClientRequest struct {
	Name    string                `json:"name" binding:"required"`
	Phone   string                `json:"phone" binding:"required"`
	Email   string                `json:"email"`
	Address *ClientAddressRequest `json:"address"`
	IsVIP   bool                  `json:"is_vip"`
	Notes   string                `json:"notes"`
}

type UpdateClientRequest struct {
	Name    *string               `json:"name,omitempty"`
	Phone   *string               `json:"phone,omitempty"`
	Email   *string               `json:"email,omitempty"`
	Address *ClientAddressRequest `json:"address,omitempty"`
	IsVIP   *bool                 `json:"is_vip,omitempty"`
	Notes   *string               `json:"notes,omitempty"`
}

func (r *ClientAddressRequest) toModel() models.ClientAddress {
	return models.ClientAddress{
		CEP:          r.CEP,
		State:        r.State,
		City:         r.City,
		Neighborhood: r.Neighborhood,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
	}
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("user_id = ?", userID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	client := models.Client{
		UserID: userID,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		IsVIP:  req.IsVIP,
		Notes:  req.Notes,
	}
	if req.Address != nil {
		client.Address = req.Address.toModel()
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	client, ok := h.findOwned(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	client, ok := h.findOwned(c, userID)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = req.Address.toModel()
	}
	if req.IsVIP != nil {
		client.IsVIP = *req.IsVIP
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Client{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao remover cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) findOwned(c *gin.Context, userID uuid.UUID) (*models.Client, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return nil, false
	}

	return &client, true
}
