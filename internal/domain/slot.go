package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// TimeSlot слот для записи на конкретный день
// Вычисляется при каждом запросе и нигде не кешируется
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

// CountAvailable возвращает количество свободных слотов
func CountAvailable(slots []TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
