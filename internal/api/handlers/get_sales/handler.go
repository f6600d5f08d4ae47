package get_sales

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/domain"
	"github.com/homemcom/AgendaService/internal/service/sales"
	"github.com/homemcom/AgendaService/internal/service/sales/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgMissingPeriod = "необходимо указать startDate и endDate"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound  = "магазин не найден"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service SalesService
	logger  Logger
}

func NewHandler(service SalesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopSlug}/sales?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /sales - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /sales - Missing period: shop=%s", shopSlug)
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		h.logger.Warn("GET /sales - Invalid startDate=%s: %v", startDateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		h.logger.Warn("GET /sales - Invalid endDate=%s: %v", endDateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListSales(r.Context(), &models.ListSalesRequest{
		UserID:    userID,
		ShopSlug:  shopSlug,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrShopNotFound):
			h.logger.Warn("GET /sales - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, sales.ErrAccessDenied):
			h.logger.Warn("GET /sales - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sales.ErrInvalidInput):
			h.logger.Warn("GET /sales - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /sales - Failed: shop=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sales - Returned %d sales for shop=%s", len(result.Sales), shopSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
