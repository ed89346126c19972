package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest фильтры списка бронирований
type ListBookingsRequest struct {
	Statuses  []string
	Archived  *bool // nil - любые
	Search    *string
	EventFrom *time.Time
	EventTo   *time.Time
	Limit     uint64
	Offset    uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		Archived:      r.Archived,
		Search:        r.Search,
		EventDateFrom: r.EventFrom,
		EventDateTo:   r.EventTo,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}

	for _, raw := range r.Statuses {
		status, err := domain.ParseBookingStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if r.EventFrom != nil && r.EventTo != nil && r.EventTo.Before(*r.EventFrom) {
		return filter, domain.NewValidationError("eventTo", "must not be before eventFrom")
	}

	return filter, nil
}

// Response модели

// ServicesResponse запрошенные услуги
type ServicesResponse struct {
	Lights        bool    `json:"lights"`
	Sound         bool    `json:"sound"`
	LEDWall       bool    `json:"ledWall"`
	Projector     bool    `json:"projector"`
	Smoke         bool    `json:"smoke"`
	LiveBand      bool    `json:"liveBand"`
	LiveBandRider *string `json:"liveBandRider,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string           `json:"id"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	EventDate     string           `json:"eventDate"` // "2025-12-25"
	EventType     string           `json:"eventType"`
	Venue         string           `json:"venue"`
	CeremonyVenue *string          `json:"ceremonyVenue,omitempty"`
	GuestCount    *int             `json:"guestCount,omitempty"`
	Services      ServicesResponse `json:"services"`
	Notes         *string          `json:"notes,omitempty"`
	TotalAmount   *float64         `json:"totalAmount,omitempty"`
	QuoteContent  *string          `json:"quoteContent,omitempty"`
	Status        string           `json:"status"`

	Archived     bool       `json:"archived"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty"`
	ArchivedBy   *string    `json:"archivedBy,omitempty"`
	LastEditedBy *string    `json:"lastEditedBy,omitempty"`
	LastEditedAt *time.Time `json:"lastEditedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID              int64     `json:"id"`
	BookingID       string    `json:"bookingId"`
	Amount          float64   `json:"amount"`
	PaymentType     string    `json:"paymentType"`
	PaymentMethod   string    `json:"paymentMethod"`
	ReferenceNumber *string   `json:"referenceNumber,omitempty"`
	TransactionID   *string   `json:"transactionId,omitempty"`
	PaidAt          time.Time `json:"paidAt"`
	PaidBy          *string   `json:"paidBy,omitempty"`
	ValidatedBy     *string   `json:"validatedBy,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PaymentSummaryResponse агрегаты по платежам
type PaymentSummaryResponse struct {
	TotalAmount          float64 `json:"totalAmount"`
	TotalPaid            float64 `json:"totalPaid"`
	RemainingBalance     float64 `json:"remainingBalance"`
	Overpayment          float64 `json:"overpayment"`
	IsFullyPaid          bool    `json:"isFullyPaid"`
	DownpaymentAmount    float64 `json:"downpaymentAmount"`
	FinalPaymentAmount   float64 `json:"finalPaymentAmount"`
	DownpaymentPaid      float64 `json:"downpaymentPaid"`
	DownpaymentRemaining float64 `json:"downpaymentRemaining"`
	PaymentCount         int     `json:"paymentCount"`
}

// DeadlineResponse срок платежа и его состояние
type DeadlineResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Days   int    `json:"days"`
	Label  string `json:"label"`
}

// PaymentStatusResponse сводка платежей со сроками
type PaymentStatusResponse struct {
	Summary      PaymentSummaryResponse `json:"summary"`
	Downpayment  DeadlineResponse       `json:"downpayment"`
	FinalPayment DeadlineResponse       `json:"finalPayment"`
}

// BookingDetailsResponse бронирование с платежами и сроками
type BookingDetailsResponse struct {
	Booking       BookingResponse       `json:"booking"`
	Payments      []PaymentResponse     `json:"payments"`
	PaymentStatus PaymentStatusResponse `json:"paymentStatus"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// PublicQuoteResponse представление котировки для клиента
// Не содержит служебных полей (архив, авторы правок, заметки)
type PublicQuoteResponse struct {
	BookingID         string                `json:"bookingId"`
	CustomerName      string                `json:"customerName"`
	EventDate         string                `json:"eventDate"`
	EventType         string                `json:"eventType"`
	Venue             string                `json:"venue"`
	CeremonyVenue     *string               `json:"ceremonyVenue,omitempty"`
	Status            string                `json:"status"`
	RequestedServices []string              `json:"requestedServices"`
	QuoteContent      *string               `json:"quoteContent,omitempty"`
	PaymentStatus     PaymentStatusResponse `json:"paymentStatus"`
}

// Методы конвертации

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		EventDate:     b.EventDate.Format(domain.DateFormat),
		EventType:     b.EventType,
		Venue:         b.Venue,
		CeremonyVenue: b.CeremonyVenue,
		GuestCount:    b.GuestCount,
		Services: ServicesResponse{
			Lights:        b.Services.Lights,
			Sound:         b.Services.Sound,
			LEDWall:       b.Services.LEDWall,
			Projector:     b.Services.Projector,
			Smoke:         b.Services.Smoke,
			LiveBand:      b.Services.LiveBand,
			LiveBandRider: b.Services.LiveBandRider,
		},
		Notes:        b.Notes,
		QuoteContent: b.QuoteContent,
		Status:       string(b.Status),
		Archived:     b.Archived,
		ArchivedAt:   b.ArchivedAt,
		ArchivedBy:   b.ArchivedBy,
		LastEditedBy: b.LastEditedBy,
		LastEditedAt: b.LastEditedAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.TotalAmount != nil {
		total := money(*b.TotalAmount)
		resp.TotalAmount = &total
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainPayment конвертирует платеж в DTO
func FromDomainPayment(p *domain.PaymentRecord) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		Amount:          money(p.Amount),
		PaymentType:     string(p.PaymentType),
		PaymentMethod:   string(p.PaymentMethod),
		ReferenceNumber: p.ReferenceNumber,
		TransactionID:   p.TransactionID,
		PaidAt:          p.PaidAt,
		PaidBy:          p.PaidBy,
		ValidatedBy:     p.ValidatedBy,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

// FromDomainPaymentList конвертирует список платежей в DTO
func FromDomainPaymentList(payments []*domain.PaymentRecord) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		if paymentResp := FromDomainPayment(p); paymentResp != nil {
			resp = append(resp, *paymentResp)
		}
	}
	return resp
}

// FromPaymentSummary конвертирует агрегаты платежей в DTO
func FromPaymentSummary(s domain.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		TotalAmount:          money(s.TotalAmount),
		TotalPaid:            money(s.TotalPaid),
		RemainingBalance:     money(s.RemainingBalance),
		Overpayment:          money(s.Overpayment),
		IsFullyPaid:          s.IsFullyPaid,
		DownpaymentAmount:    money(s.DownpaymentAmount),
		FinalPaymentAmount:   money(s.FinalPaymentAmount),
		DownpaymentPaid:      money(s.DownpaymentPaid),
		DownpaymentRemaining: money(s.DownpaymentRemaining),
		PaymentCount:         s.PaymentCount,
	}
}

// FromPaymentStatus конвертирует сводку со сроками в DTO
func FromPaymentStatus(s domain.PaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		Summary:      FromPaymentSummary(s.Summary),
		Downpayment:  fromDeadline(s.Deadlines.DownpaymentDeadline, s.DownpaymentStatus),
		FinalPayment: fromDeadline(s.Deadlines.FinalPaymentDeadline, s.FinalPaymentStatus),
	}
}

func fromDeadline(date time.Time, status domain.DeadlineStatus) DeadlineResponse {
	return DeadlineResponse{
		Date:   date.Format(domain.DateFormat),
		Status: string(status.Status),
		Days:   status.Days,
		Label:  status.Label,
	}
}

// NewBookingDetails собирает полное представление бронирования
func NewBookingDetails(b *domain.Booking, payments []*domain.PaymentRecord, now time.Time) *BookingDetailsResponse {
	return &BookingDetailsResponse{
		Booking:       *FromDomainBooking(b),
		Payments:      FromDomainPaymentList(payments),
		PaymentStatus: FromPaymentStatus(domain.BuildPaymentStatus(b, payments, now)),
	}
}

// NewPublicQuote собирает клиентское представление котировки
func NewPublicQuote(b *domain.Booking, payments []*domain.PaymentRecord, now time.Time) *PublicQuoteResponse {
	return &PublicQuoteResponse{
		BookingID:         b.ID,
		CustomerName:      b.CustomerName,
		EventDate:         b.EventDate.Format(domain.DateFormat),
		EventType:         b.EventType,
		Venue:             b.Venue,
		CeremonyVenue:     b.CeremonyVenue,
		Status:            string(b.Status),
		RequestedServices: b.Services.Requested(),
		QuoteContent:      b.QuoteContent,
		PaymentStatus:     FromPaymentStatus(domain.BuildPaymentStatus(b, payments, now)),
	}
}
