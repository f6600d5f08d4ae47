package billingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с BillingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BillingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSubscription получает подписку магазина
func (c *Client) GetSubscription(ctx context.Context, shopID int64) (*Subscription, error) {
	url := fmt.Sprintf("%s/internal/shops/%d/subscription", c.baseURL, shopID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid shop ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrSubscriptionNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var sub Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &sub, nil
}

// GetSubscriptionWithGracefulDegradation получает подписку магазина с graceful degradation.
// При недоступности BillingService возвращает ErrServiceDegraded — вызывающая сторона
// считает магазин активным, чтобы не блокировать бронирования из-за падения биллинга.
func (c *Client) GetSubscriptionWithGracefulDegradation(ctx context.Context, shopID int64) (*Subscription, error) {
	c.log.Info("Fetching subscription for shop_id=%d", shopID)

	sub, err := c.GetSubscription(ctx, shopID)
	if err != nil {
		// Отсутствие подписки — бизнес-факт, пробрасываем дальше
		if err == ErrSubscriptionNotFound {
			c.log.Info("No subscription found for shop_id=%d", shopID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("BillingService unavailable, applying graceful degradation for shop_id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: shop_id=%d, error=%v", ErrServiceDegraded, shopID, err)
	}

	c.log.Info("Successfully fetched subscription for shop_id=%d, status=%s", shopID, sub.Status)
	return sub, nil
}

// DisabledClient заменяет Client, когда биллинг выключен в конфигурации:
// каждый магазин считается подписанным.
type DisabledClient struct{}

// NewDisabledClient создает клиент для работы без биллинга
func NewDisabledClient() *DisabledClient {
	return &DisabledClient{}
}

// GetSubscriptionWithGracefulDegradation всегда возвращает активную подписку
func (c *DisabledClient) GetSubscriptionWithGracefulDegradation(_ context.Context, shopID int64) (*Subscription, error) {
	return &Subscription{ShopID: shopID, Plan: "none", Status: "active"}, nil
}
