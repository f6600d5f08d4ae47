package delete_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/service/schedule"
)

const (
	msgInvalidBlockID = "некорректный ID блока"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgShopNotFound   = "магазин не найден"
	msgBlockNotFound  = "блок не найден"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/shops/{shopSlug}/working-hours/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shopSlug := vars["shopSlug"]

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /working-hours/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /working-hours/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteWorkingHours(r.Context(), shopSlug, blockID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrShopNotFound):
			h.logger.Warn("DELETE /working-hours/{id} - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /working-hours/{id} - Block not found: id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /working-hours/{id} - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /working-hours/{id} - Failed: id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /working-hours/{id} - Deleted block id=%d for shop=%s", blockID, shopSlug)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
