package create_recurring_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/service/schedule"
	"github.com/homemcom/AgendaService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgShopNotFound       = "магазин не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTimeRange   = "конец блока должен быть позже начала"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopSlug}/recurring-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /recurring-blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateRecurringBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /recurring-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateRecurringBlock(r.Context(), shopSlug, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrShopNotFound):
			h.logger.Warn("POST /recurring-blocks - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /recurring-blocks - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /recurring-blocks - Invalid time range: %s-%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /recurring-blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /recurring-blocks - Failed: shop=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurring-blocks - Created block id=%d for shop=%s", result.ID, shopSlug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
