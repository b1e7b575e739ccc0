package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	financedomain "github.com/mbiancareli/studio-manager/internal/domain/finance"
	"github.com/mbiancareli/studio-manager/internal/domain/period"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/httpresp"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/models"
	"github.com/mbiancareli/studio-manager/internal/timezone"
)

type FinanceHandler struct {
	db *gorm.DB
}

func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{db: db}
}

// --------- Requests ---------

type CreateFinanceRequest struct {
	Type      string   `json:"type" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Amount    *float64 `json:"amount" binding:"required,min=0"`
	Date      string   `json:"date" binding:"required"`
	Category  string   `json:"category"`
	ServiceID *string  `json:"service_id"`
}

type UpdateFinanceRequest struct {
	Type      *string  `json:"type,omitempty"`
	Name      *string  `json:"name,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Category  *string  `json:"category,omitempty"`
	ServiceID *string  `json:"service_id,omitempty"`
}

// --------- Handlers ---------

func (h *FinanceHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !financedomain.IsValidType(financedomain.Type(req.Type)) {
		httperr.BadRequest(c, "invalid_type", "Tipo deve ser income ou expense.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	entry := models.Finance{
		UserID: userID,
		Type:   req.Type,
		Name:   req.Name,
		Amount: *req.Amount,
		Date:   date,
	}

	// category belongs to expenses, service reference to income
	if req.Category != "" {
		if financedomain.Type(req.Type) != financedomain.TypeExpense {
			httperr.BadRequest(c, "category_on_income", "Categoria só se aplica a despesas.")
			return
		}
		if !financedomain.IsValidCategory(req.Category) {
			httperr.BadRequest(c, "invalid_category", "Categoria inválida.")
			return
		}
		entry.Category = req.Category
	}

	if req.ServiceID != nil {
		if financedomain.Type(req.Type) != financedomain.TypeIncome {
			httperr.BadRequest(c, "service_on_expense", "Serviço só se aplica a receitas.")
			return
		}
		sid, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Identificador de serviço inválido.")
			return
		}
		entry.ServiceID = &sid
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_finance", "Erro ao criar registro financeiro.")
		return
	}

	httpresp.Created(c, entry)
}

func (h *FinanceHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	entries, ok := h.listFiltered(c, userID)
	if !ok {
		return
	}

	httpresp.List(c, entries)
}

// GetSummary re-runs the same filtered listing and aggregates it in
// memory, so summary and list always describe the same entry set.
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	userID := middleware.UserID(c)

	entries, ok := h.listFiltered(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, financedomain.Summarize(entries))
}

func (h *FinanceHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	entry, ok := h.findOwned(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FinanceHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	entry, ok := h.findOwned(c, userID)
	if !ok {
		return
	}

	var req UpdateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Type != nil {
		if !financedomain.IsValidType(financedomain.Type(*req.Type)) {
			httperr.BadRequest(c, "invalid_type", "Tipo deve ser income ou expense.")
			return
		}
		entry.Type = *req.Type
	}
	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			httperr.BadRequest(c, "invalid_amount", "Valor não pode ser negativo.")
			return
		}
		entry.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		entry.Date = date
	}
	if req.Category != nil {
		if *req.Category != "" && !financedomain.IsValidCategory(*req.Category) {
			httperr.BadRequest(c, "invalid_category", "Categoria inválida.")
			return
		}
		entry.Category = *req.Category
	}
	if req.ServiceID != nil {
		if *req.ServiceID == "" {
			entry.ServiceID = nil
		} else {
			sid, err := uuid.Parse(*req.ServiceID)
			if err != nil {
				httperr.BadRequest(c, "invalid_service_id", "Identificador de serviço inválido.")
				return
			}
			entry.ServiceID = &sid
		}
	}

	if err := h.db.Save(entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_finance", "Erro ao atualizar registro financeiro.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FinanceHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Finance{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_finance", "Erro ao remover registro financeiro.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "finance_not_found", "Registro financeiro não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

// listFiltered applies the named period window (or custom bounds) and
// returns entries newest-first. A false return means the response was
// already written.
func (h *FinanceHandler) listFiltered(c *gin.Context, userID uuid.UUID) ([]models.Finance, bool) {
	q := h.db.Where("user_id = ?", userID)

	periodStr := c.Query("period")
	switch period.LedgerPeriod(periodStr) {
	case "":
		// no window, everything

	case period.PeriodCustom:
		if startStr := c.Query("startDate"); startStr != "" {
			start, err := parseDate(startStr)
			if err != nil {
				httperr.BadRequest(c, "invalid_start_date", "Data inicial inválida.")
				return nil, false
			}
			q = q.Where("date >= ?", start)
		}
		if endStr := c.Query("endDate"); endStr != "" {
			end, err := parseDate(endStr)
			if err != nil {
				httperr.BadRequest(c, "invalid_end_date", "Data final inválida.")
				return nil, false
			}
			q = q.Where("date <= ?", end)
		}

	default:
		start, end, err := period.LedgerWindow(period.LedgerPeriod(periodStr), timezone.Now())
		if err != nil {
			httperr.BadRequest(c, "invalid_period", "Período inválido.")
			return nil, false
		}
		q = q.Where("date >= ? AND date <= ?", start, end)
	}

	var entries []models.Finance
	if err := q.
		Order("date DESC").
		Find(&entries).Error; err != nil {

		httperr.Internal(c, "failed_to_list_finances", "Erro ao listar registros financeiros.")
		return nil, false
	}

	return entries, true
}

func (h *FinanceHandler) findOwned(c *gin.Context, userID uuid.UUID) (*models.Finance, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var entry models.Finance
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "finance_not_found", "Registro financeiro não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_finance", "Erro ao buscar registro financeiro.")
		return nil, false
	}

	return &entry, true
}
