package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/homemcom/AgendaService/internal/api/handlers"
	createBooking "github.com/homemcom/AgendaService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable    = "выбранный слот уже занят"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgShopNotFound        = "магазин не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgClientNotFound      = "клиент не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopSlug}/bookings
// Запись, создаваемая владельцем магазина: подтверждается сразу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopSlug := mux.Vars(r)["shopSlug"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{slug}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopSlug)
	if err != nil {
		h.logger.Warn("POST /shops/{slug}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /shops/{slug}/bookings - Slot not available: slug=%s, time=%s", shopSlug, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /shops/{slug}/bookings - Outside working hours: slug=%s, time=%s", shopSlug, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /shops/{slug}/bookings - Shop not found: slug=%s", shopSlug)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{slug}/bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /shops/{slug}/bookings - Client not found: client_id=%v", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /shops/{slug}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /shops/{slug}/bookings - Failed: slug=%s, error=%v", shopSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{slug}/bookings - Appointment created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
