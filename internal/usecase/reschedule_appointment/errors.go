package reschedule_appointment

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrAppointmentNotFound возвращается, когда запись не найдена в магазине
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAppointmentCancelled возвращается при попытке перенести отменённую запись
	ErrAppointmentCancelled = errors.New("appointment is already cancelled")

	// ErrOutsideWorkingHours возвращается, когда новый слот не помещается
	// ни в один блок рабочих часов
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
