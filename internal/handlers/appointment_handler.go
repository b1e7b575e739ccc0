package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/mbiancareli/studio-manager/internal/domain/appointment"
	"github.com/mbiancareli/studio-manager/internal/domain/period"
	"github.com/mbiancareli/studio-manager/internal/httperr"
	"github.com/mbiancareli/studio-manager/internal/middleware"
	"github.com/mbiancareli/studio-manager/internal/validators"
	ucAppointment "github.com/mbiancareli/studio-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo domain.Repository

	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	removeUC   *ucAppointment.RemoveAppointment
	listUC     *ucAppointment.ListAppointments
	upcomingUC *ucAppointment.UpcomingAppointments
	earningsUC *ucAppointment.TodayEarnings
}

func NewAppointmentHandler(
	repo domain.Repository,
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	removeUC *ucAppointment.RemoveAppointment,
	listUC *ucAppointment.ListAppointments,
	upcomingUC *ucAppointment.UpcomingAppointments,
	earningsUC *ucAppointment.TodayEarnings,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:       repo,
		createUC:   createUC,
		updateUC:   updateUC,
		removeUC:   removeUC,
		listUC:     listUC,
		upcomingUC: upcomingUC,
		earningsUC: earningsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   string   `json:"client_id" binding:"required"`
	ServiceIDs []string `json:"service_ids" binding:"required,min=1"`
	Date       string   `json:"date" binding:"required"`
	StartTime  string   `json:"start_time" binding:"required"`
	EndTime    string   `json:"end_time" binding:"required"`
	Status     string   `json:"status"`
	Notes      string   `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ClientID           *string  `json:"client_id,omitempty"`
	ServiceIDs         []string `json:"service_ids,omitempty"`
	Date               *string  `json:"date,omitempty"`
	StartTime          *string  `json:"start_time,omitempty"`
	EndTime            *string  `json:"end_time,omitempty"`
	Status             *string  `json:"status,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	CancellationReason *string  `json:"cancellation_reason,omitempty"`
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "Identificador de cliente inválido.")
		return
	}

	serviceIDs, err := parseUUIDs(req.ServiceIDs)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Identificador de serviço inválido.")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if !validators.IsTimeOfDay(req.StartTime) || !validators.IsTimeOfDay(req.EndTime) {
		httperr.BadRequest(c, "invalid_time", "Horário inválido.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:     userID,
		ClientID:   clientID,
		ServiceIDs: serviceIDs,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST / FIND
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	in := ucAppointment.ListAppointmentsInput{
		UserID: userID,
		View:   period.View(c.Query("view")),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		in.Date = &date
	}

	aps, err := h.listUC.Execute(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	userID := middleware.UserID(c)

	hours := ucAppointment.DefaultUpcomingHours
	if hoursStr := c.Query("hours"); hoursStr != "" {
		parsed, err := strconv.Atoi(hoursStr)
		if err != nil || parsed <= 0 {
			httperr.BadRequest(c, "invalid_hours", "Horas inválidas.")
			return
		}
		hours = parsed
	}

	aps, err := h.upcomingUC.Execute(c.Request.Context(), userID, hours)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) TodayEarnings(c *gin.Context) {
	userID := middleware.UserID(c)

	total, err := h.earningsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projected_earnings": total})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.repo.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := ucAppointment.UpdateAppointmentInput{
		UserID:             userID,
		ID:                 id,
		Status:             req.Status,
		Notes:              req.Notes,
		CancellationReason: req.CancellationReason,
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			httperr.BadRequest(c, "invalid_client_id", "Identificador de cliente inválido.")
			return
		}
		in.ClientID = &clientID
	}

	if req.ServiceIDs != nil {
		serviceIDs, err := parseUUIDs(req.ServiceIDs)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Identificador de serviço inválido.")
			return
		}
		in.ServiceIDs = serviceIDs
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		in.Date = &date
	}

	if req.StartTime != nil {
		if !validators.IsTimeOfDay(*req.StartTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido.")
			return
		}
		in.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		if !validators.IsTimeOfDay(*req.EndTime) {
			httperr.BadRequest(c, "invalid_time", "Horário inválido.")
			return
		}
		in.EndTime = req.EndTime
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// REMOVE (soft-cancel with reason, hard delete without)
// ======================================================

func (h *AppointmentHandler) Remove(c *gin.Context) {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	reason := c.Query("reason")

	if err := h.removeUC.Execute(c.Request.Context(), userID, id, reason); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case httperr.IsNotFound(err):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	case httperr.IsBusiness(err, "invalid_view"):
		httperr.BadRequest(c, "invalid_view", "Modo de visualização inválido.")
	case httperr.IsBusiness(err, "missing_services"):
		httperr.BadRequest(c, "missing_services", "Informe ao menos um serviço.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Um ou mais serviços não foram encontrados.")
	default:
		httperr.Internal(c, "appointment_error", "Erro ao processar agendamento.")
	}
}
