package create_working_hours

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
	msgOverlappingBlock   = "блок пересекается с существующим блоком рабочих часов"
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

// Handle POST /api/v1/shops/{shopSlug}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateWorkingHours(r.Context(), shopSlug, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrShopNotFound):
			h.logger.Warn("POST /working-hours - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /working-hours - Access denied: user_id=%d, shop=%s", userID, shopSlug)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrOverlappingBlock):
			h.logger.Warn("POST /working-hours - Overlapping block: shop=%s, weekday=%d, %s-%s",
				shopSlug, req.Weekday, req.Start, req.End)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingBlock)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /working-hours - Invalid time range: %s-%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /working-hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /working-hours - Failed: shop=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /working-hours - Created block id=%d for shop=%s", result.ID, shopSlug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
