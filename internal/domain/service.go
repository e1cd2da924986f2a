package domain

// Service услуга из каталога владельца (только чтение)
type Service struct {
	ID              int64
	OwnerID         int64
	Name            string
	DurationMinutes int
	Price           float64
}
