package billingservice

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда у магазина нет подписки
	ErrSubscriptionNotFound = errors.New("shop has no subscription")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("billingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("billingservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что BillingService недоступен и магазин следует считать активным
	ErrServiceDegraded = errors.New("billingservice unavailable: graceful degradation applied")
)
