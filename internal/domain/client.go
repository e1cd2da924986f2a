package domain

import "strings"

// Client клиент владельца, уникален по (OwnerID, Phone)
type Client struct {
	ID      int64
	OwnerID int64
	Name    string
	Phone   string
	Email   *string
}

// NormalizePhone оставляет в номере только цифры и ведущий "+"
// "+7 (900) 123-45-67" -> "+79001234567"
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
