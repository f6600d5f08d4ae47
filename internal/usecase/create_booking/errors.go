package create_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден или деактивирован
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrClientNotFound возвращается, когда указанный клиент не найден
	ErrClientNotFound = errors.New("client not found")

	// ErrClientBlocked возвращается, когда клиент заблокирован для онлайн-записи
	ErrClientBlocked = errors.New("client is blocked from online booking")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается целиком
	// ни в один блок рабочих часов
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с существующей
	// записью или повторяющимся блоком
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrShopNotSubscribed возвращается, когда подписка магазина не действует
	ErrShopNotSubscribed = errors.New("shop subscription is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
