package record_sale

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/service/sales"
	"github.com/homemcom/AgendaService/internal/service/sales/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgShopNotFound       = "магазин не найден"
	msgProductNotFound    = "товар не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/shops/{shopSlug}/sales
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sales - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RecordSaleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sales - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.RecordSale(r.Context(), shopSlug, &req)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrShopNotFound):
			h.logger.Warn("POST /sales - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, sales.ErrProductNotFound):
			h.logger.Warn("POST /sales - Product not found: id=%v", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, sales.ErrAccessDenied):
			h.logger.Warn("POST /sales - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sales.ErrInvalidInput):
			h.logger.Warn("POST /sales - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sales - Failed: shop=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sales - Recorded sale id=%d for shop=%s", result.ID, shopSlug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
