package telegram

import (
	"time"

	"github.com/shopspring/decimal"
)

// DigestItem бронирование с приближающимся или просроченным дедлайном
type DigestItem struct {
	BookingID    string
	CustomerName string
	EventDate    time.Time
	Deadline     string // downpayment или final
	Label        string // "Due in 3 days", "2 days overdue"
	Outstanding  decimal.Decimal
}

// Digest ежедневная сводка по дедлайнам оплаты
type Digest struct {
	Date    time.Time
	Overdue []DigestItem
	DueSoon []DigestItem
}

// IsEmpty сводка без бронирований не отправляется
func (d Digest) IsEmpty() bool {
	return len(d.Overdue) == 0 && len(d.DueSoon) == 0
}
