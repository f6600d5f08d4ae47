package get_shop_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/internal/service/appointments"
	"github.com/homemcom/AgendaService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgShopNotFound  = "магазин не найден"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopSlug}/appointments
// Query params: date, startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{slug}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetShopAppointmentsRequest{
		UserID:   userID,
		ShopSlug: shopSlug,
	}

	query := r.URL.Query()

	// date=YYYY-MM-DD — сокращение для границ одних суток
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /shops/{slug}/appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		end := date.AddDate(0, 0, 1)
		req.StartDate = &date
		req.EndDate = &end
	} else {
		if startStr := query.Get("startDate"); startStr != "" {
			start, err := time.Parse(domain.DateFormat, startStr)
			if err != nil {
				h.logger.Warn("GET /shops/{slug}/appointments - Invalid startDate: %v", err)
				handlers.RespondBadRequest(w, msgInvalidParams)
				return
			}
			req.StartDate = &start
		}
		if endStr := query.Get("endDate"); endStr != "" {
			end, err := time.Parse(domain.DateFormat, endStr)
			if err != nil {
				h.logger.Warn("GET /shops/{slug}/appointments - Invalid endDate: %v", err)
				handlers.RespondBadRequest(w, msgInvalidParams)
				return
			}
			req.EndDate = &end
		}
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetShopAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrShopNotFound):
			h.logger.Warn("GET /shops/{slug}/appointments - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /shops/{slug}/appointments - Access denied: user_id=%d, slug=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /shops/{slug}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /shops/{slug}/appointments - Failed: slug=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{slug}/appointments - %d appointments: slug=%s", len(result.Appointments), shopSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
