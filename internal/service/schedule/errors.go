package schedule

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrBlockNotFound возвращается, когда блок не найден
	ErrBlockNotFound = errors.New("block not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTimeRange возвращается, когда конец блока не позже начала
	ErrInvalidTimeRange = errors.New("block end must be after start")

	// ErrOverlappingBlock возвращается, когда новый блок рабочих часов
	// пересекается с существующим активным блоком того же дня недели
	ErrOverlappingBlock = errors.New("block overlaps an existing block")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
