package domain

import "time"

// FinancialRecordType тип финансовой записи
type FinancialRecordType string

const (
	RecordTypeIncome FinancialRecordType = "income"
)

// FinancialRecord запись о доходе, связанная с завершенной записью клиента
// На одну запись клиента приходится не более одной финансовой записи
type FinancialRecord struct {
	ID            int64
	OwnerID       int64
	Type          FinancialRecordType
	Amount        float64
	AppointmentID *int64
	Memo          string
	CreatedAt     time.Time
}
