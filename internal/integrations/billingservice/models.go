package billingservice

// Subscription модель подписки магазина из BillingService
type Subscription struct {
	ID        int64  `json:"id"`
	ShopID    int64  `json:"shop_id"`
	Plan      string `json:"plan"`
	Status    string `json:"status"` // active, trial, past_due, cancelled
	ExpiresAt string `json:"expires_at"`
}

// IsActive сообщает, действует ли подписка
func (s *Subscription) IsActive() bool {
	return s.Status == "active" || s.Status == "trial"
}

// ErrorResponse модель ошибки от BillingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
