package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

const tableName = "bookings"

// columns порядок колонок совпадает с BookingRow.scanTargets и BookingRow.values
var columns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"event_date",
	"event_type",
	"venue",
	"ceremony_venue",
	"guest_count",
	"lights",
	"sound",
	"led_wall",
	"projector",
	"smoke",
	"live_band",
	"live_band_rider",
	"notes",
	"total_amount",
	"quote_content",
	"status",
	"archived",
	"archived_at",
	"archived_by",
	"last_edited_by",
	"last_edited_at",
	"created_at",
	"updated_at",
}

// BookingRow строка таблицы bookings
// NULL колонки представлены указателями: nil остается nil при обратном преобразовании
type BookingRow struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	EventDate     time.Time
	EventType     string
	Venue         string
	CeremonyVenue *string
	GuestCount    *int64
	Lights        bool
	Sound         bool
	LEDWall       bool
	Projector     bool
	Smoke         bool
	LiveBand      bool
	LiveBandRider *string
	Notes         *string
	TotalAmount   decimal.NullDecimal
	QuoteContent  *string
	Status        string
	Archived      bool
	ArchivedAt    *time.Time
	ArchivedBy    *string
	LastEditedBy  *string
	LastEditedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *BookingRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.CustomerName,
		&r.CustomerEmail,
		&r.CustomerPhone,
		&r.EventDate,
		&r.EventType,
		&r.Venue,
		&r.CeremonyVenue,
		&r.GuestCount,
		&r.Lights,
		&r.Sound,
		&r.LEDWall,
		&r.Projector,
		&r.Smoke,
		&r.LiveBand,
		&r.LiveBandRider,
		&r.Notes,
		&r.TotalAmount,
		&r.QuoteContent,
		&r.Status,
		&r.Archived,
		&r.ArchivedAt,
		&r.ArchivedBy,
		&r.LastEditedBy,
		&r.LastEditedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// mutableValues значения колонок, которые меняются при обновлении
func (r *BookingRow) mutableValues() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":   r.CustomerName,
		"customer_email":  r.CustomerEmail,
		"customer_phone":  r.CustomerPhone,
		"event_date":      r.EventDate,
		"event_type":      r.EventType,
		"venue":           r.Venue,
		"ceremony_venue":  r.CeremonyVenue,
		"guest_count":     r.GuestCount,
		"lights":          r.Lights,
		"sound":           r.Sound,
		"led_wall":        r.LEDWall,
		"projector":       r.Projector,
		"smoke":           r.Smoke,
		"live_band":       r.LiveBand,
		"live_band_rider": r.LiveBandRider,
		"notes":           r.Notes,
		"total_amount":    r.TotalAmount,
		"quote_content":   r.QuoteContent,
		"status":          r.Status,
		"archived":        r.Archived,
		"archived_at":     r.ArchivedAt,
		"archived_by":     r.ArchivedBy,
		"last_edited_by":  r.LastEditedBy,
		"last_edited_at":  r.LastEditedAt,
	}
}

// MapRowToBooking преобразует строку БД в доменную модель
func MapRowToBooking(row *BookingRow) *domain.Booking {
	b := &domain.Booking{
		ID:            row.ID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerPhone: row.CustomerPhone,
		EventDate:     row.EventDate,
		EventType:     row.EventType,
		Venue:         row.Venue,
		CeremonyVenue: row.CeremonyVenue,
		Services: domain.ServiceFlags{
			Lights:        row.Lights,
			Sound:         row.Sound,
			LEDWall:       row.LEDWall,
			Projector:     row.Projector,
			Smoke:         row.Smoke,
			LiveBand:      row.LiveBand,
			LiveBandRider: row.LiveBandRider,
		},
		Notes:        row.Notes,
		QuoteContent: row.QuoteContent,
		Status:       domain.BookingStatus(row.Status),
		Archived:     row.Archived,
		ArchivedAt:   row.ArchivedAt,
		ArchivedBy:   row.ArchivedBy,
		LastEditedBy: row.LastEditedBy,
		LastEditedAt: row.LastEditedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	if row.GuestCount != nil {
		guests := int(*row.GuestCount)
		b.GuestCount = &guests
	}
	if row.TotalAmount.Valid {
		total := row.TotalAmount.Decimal
		b.TotalAmount = &total
	}

	return b
}

// MapBookingToRow преобразует доменную модель в строку БД
func MapBookingToRow(b *domain.Booking) *BookingRow {
	row := &BookingRow{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		EventDate:     b.EventDate,
		EventType:     b.EventType,
		Venue:         b.Venue,
		CeremonyVenue: b.CeremonyVenue,
		Lights:        b.Services.Lights,
		Sound:         b.Services.Sound,
		LEDWall:       b.Services.LEDWall,
		Projector:     b.Services.Projector,
		Smoke:         b.Services.Smoke,
		LiveBand:      b.Services.LiveBand,
		LiveBandRider: b.Services.LiveBandRider,
		Notes:         b.Notes,
		QuoteContent:  b.QuoteContent,
		Status:        string(b.Status),
		Archived:      b.Archived,
		ArchivedAt:    b.ArchivedAt,
		ArchivedBy:    b.ArchivedBy,
		LastEditedBy:  b.LastEditedBy,
		LastEditedAt:  b.LastEditedAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.GuestCount != nil {
		guests := int64(*b.GuestCount)
		row.GuestCount = &guests
	}
	if b.TotalAmount != nil {
		row.TotalAmount = decimal.NullDecimal{Decimal: *b.TotalAmount, Valid: true}
	}

	return row
}
