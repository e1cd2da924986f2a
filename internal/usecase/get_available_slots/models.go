package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	OwnerID       int64     // ID владельца календаря
	ServiceID     int64     // ID услуги (задает длительность)
	Date          time.Time // Дата (время игнорируется, берется локация даты)
	Step          int       // Шаг сетки в минутах, 0 = по умолчанию
	RequireFuture bool      // Помечать прошедшие слоты недоступными (публичная запись)
}

// Response модель ответа со слотами
type Response struct {
	Date            time.Time         // Дата
	ServiceID       int64             // ID услуги
	ServiceName     string            // Название услуги
	DurationMinutes int               // Длительность услуги
	Step            int               // Использованный шаг
	Slots           []domain.TimeSlot // Слоты по возрастанию времени
	AvailableCount  int               // Количество доступных слотов
}
