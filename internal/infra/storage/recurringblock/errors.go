package recurringblock

import "errors"

var (
	// ErrBlockNotFound возвращается, когда повторяющийся блок не найден
	ErrBlockNotFound = errors.New("recurringblock.repository: recurring block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("recurringblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("recurringblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("recurringblock.repository: failed to scan row")
)
