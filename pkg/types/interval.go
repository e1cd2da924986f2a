package types

import "time"

// Overlaps проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB)
// Соприкасающиеся интервалы (endA == startB) НЕ пересекаются
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// OverlapsTime то же самое для абсолютных моментов времени
func OverlapsTime(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
