package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appointmentdomain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/domain/finance"
	"github.com/mbiancareli/studio-manager/internal/domain/period"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/insights"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/models"
	"github.com/mbiancareli/studio-manager/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// InsightsHandler reads completed appointments and the finance ledger
// and hands the record sets to the pure aggregations in the insights
// package.
type InsightsHandler struct {
	db *gorm.DB
}

func NewInsightsHandler(db *gorm.DB) *InsightsHandler {
	return &InsightsHandler{db: db}
}

func (h *InsightsHandler) insightWindow(c *gin.Context) (time.Time, bool) {
	p := period.InsightPeriod(c.DefaultQuery("period", string(period.InsightMonth)))
	start, err := period.InsightStart(p, timezone.Now())
	if err != nil {
		httperr.BadRequest(c, "invalid_period", "Período inválido.")
		return time.Time{}, false
	}
	return start, true
}

func (h *InsightsHandler) completedSince(userID uuid.UUID, start time.Time) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := h.db.
		Preload("Client").
		Preload("Services").
		Where(
			"user_id = ? AND status = ? AND date >= ?",
			userID, string(appointmentdomain.StatusCompleted), start,
		).
		Order("date DESC").
		Find(&aps).Error
	return aps, err
}

// ======================================================
// CLIENT PROFILE
// ======================================================

func (h *InsightsHandler) ClientInsights(c *gin.Context) {
	userID := middleware.UserID(c)

	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND user_id = ?", clientID, userID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Services").
		Where(
			"user_id = ? AND client_id = ? AND status = ?",
			userID, clientID, string(appointmentdomain.StatusCompleted),
		).
		Order("date DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular insights.")
		return
	}

	c.JSON(http.StatusOK, insights.BuildClientInsights(aps))
}

// ======================================================
// RE-VISIT PATTERNS
// ======================================================

func (h *InsightsHandler) Patterns(c *gin.Context) {
	userID := middleware.UserID(c)

	var clients []models.Client
	if err := h.db.
		Where("user_id = ?", userID).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular padrões.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Where(
			"user_id = ? AND status = ?",
			userID, string(appointmentdomain.StatusCompleted),
		).
		Order("date DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular padrões.")
		return
	}

	byClient := make(map[uuid.UUID][]models.Appointment)
	for _, ap := range aps {
		byClient[ap.ClientID] = append(byClient[ap.ClientID], ap)
	}

	now := timezone.Now()
	patterns := make([]insights.ClientPattern, 0)
	for _, client := range clients {
		if p, ok := insights.DetectPattern(client, byClient[client.ID], now); ok {
			patterns = append(patterns, p)
		}
	}

	c.JSON(http.StatusOK, patterns)
}

// ======================================================
// REVENUE RANKINGS
// ======================================================

func (h *InsightsHandler) TopServices(c *gin.Context) {
	userID := middleware.UserID(c)

	start, ok := h.insightWindow(c)
	if !ok {
		return
	}

	var incomes []models.Finance
	if err := h.db.
		Where(
			"user_id = ? AND type = ? AND date >= ?",
			userID, string(finance.TypeIncome), start,
		).
		Find(&incomes).Error; err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular ranking.")
		return
	}

	completed, err := h.completedSince(userID, start)
	if err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular ranking.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("user_id = ?", userID).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular ranking.")
		return
	}
	byID := make(map[uuid.UUID]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	c.JSON(http.StatusOK, insights.RankTopServices(incomes, completed, byID))
}

func (h *InsightsHandler) TopNeighborhoods(c *gin.Context) {
	userID := middleware.UserID(c)

	start, ok := h.insightWindow(c)
	if !ok {
		return
	}

	completed, err := h.completedSince(userID, start)
	if err != nil {
		httperr.Internal(c, "insights_error", "Erro ao calcular ranking.")
		return
	}

	c.JSON(http.StatusOK, insights.RankTopNeighborhoods(completed))
}

// ======================================================
// VIP CLIENTS
// ======================================================

func (h *InsightsHandler) VIPClients(c *gin.Context) {
	userID := middleware.UserID(c)

	start, _ := period.InsightStart(period.InsightMonth, timezone.Now())

	completed, err := h.completedSince(userID, start)
	if err != nil {
		httperr.Internal(c, "insights_error", "Erro ao identificar clientes VIP.")
		return
	}

	vips := insights.IdentifyVIPs(completed)

	// keep the roster flag in sync with the current classification
	ids := make([]uuid.UUID, 0, len(vips))
	for _, v := range vips {
		ids = append(ids, v.ClientID)
	}
	h.db.Model(&models.Client{}).
		Where("user_id = ?", userID).
		Update("is_vip", false)
	if len(ids) > 0 {
		h.db.Model(&models.Client{}).
			Where("user_id = ? AND id IN ?", userID, ids).
			Update("is_vip", true)
	}

	c.JSON(http.StatusOK, vips)
}
