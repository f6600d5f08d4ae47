package get_recurring_blocks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/service/schedule"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgShopNotFound  = "магазин не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/shops/{shopSlug}/recurring-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /recurring-blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListRecurringBlocks(r.Context(), shopSlug, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrShopNotFound):
			h.logger.Warn("GET /recurring-blocks - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /recurring-blocks - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /recurring-blocks - Failed: shop=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /recurring-blocks - Returned %d blocks for shop=%s", len(result.Blocks), shopSlug)
	handlers.RespondJSON(w, http.StatusOK, result)
}
