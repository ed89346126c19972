package models

import (
	bookingModels "github.com/m04kA/EventsBookingService/internal/service/bookings/models"
)

// RemovePaymentResponse результат удаления платежа
// Статус бронирования при удалении не меняется
type RemovePaymentResponse struct {
	PaymentID     int64                                `json:"paymentId"`
	BookingID     string                               `json:"bookingId"`
	BookingStatus string                               `json:"bookingStatus"`
	Summary       bookingModels.PaymentSummaryResponse `json:"summary"`
}
