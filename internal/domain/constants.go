package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// Значения рабочего времени по умолчанию
const (
	DefaultStartTime types.TimeString = "09:00"
	DefaultEndTime   types.TimeString = "18:00"
)

// DefaultDaysOff выходные по умолчанию (воскресенье)
var DefaultDaysOff = []int{0}

// Параметры генерации слотов
const (
	DefaultSlotStepMinutes = 30
	MinSlotStepMinutes     = 5
	MaxSlotStepMinutes     = 240
)

// Ограничения бизнес-валидации
const (
	MinDurationMinutes   = 1
	MaxDurationMinutes   = 12 * 60
	MaxNotesLength       = 1000
	MaxClientNameLength  = 200
	MaxSearchLength      = 100
	MaxListRangeDays     = 93
	MaxDaysInAdvance     = 365
	DefaultDaysInAdvance = 30
)

// Форматы даты и времени в API
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, занимающие интервал времени
// Используется при выборке записей для проверки пересечений
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
}
