package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи оператором
// Клиент задается либо ClientID, либо именем и телефоном (ищется или создается по телефону)
type Request struct {
	OwnerID     int64            // ID владельца календаря
	ClientID    *int64           // ID существующего клиента (опционально)
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	ClientEmail *string          // Email клиента (опционально)
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени, в часовом поясе владельца)
	StartTime   types.TimeString // Время начала (например, "10:00")
	Notes       *string          // Заметки (опционально)
}
