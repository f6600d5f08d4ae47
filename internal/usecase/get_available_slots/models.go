package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopSlug  string    // Публичный slug магазина
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ShopID          int64     // ID магазина
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Длительность услуги — шаг и длина каждого слота
	Timezone        string    // Таймзона магазина, в которой отдаются слоты
	Slots           []Slot    // Список свободных слотов в порядке обхода блоков
}

// Slot модель свободного слота
type Slot struct {
	StartsAt time.Time // Начало слота в таймзоне магазина
	EndsAt   time.Time // Конец слота: StartsAt + длительность услуги
}
