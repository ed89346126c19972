package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

const (
	dateLayout  = "January 2, 2006"
	currency    = "PHP"
	qrImageName = "booking-qr"
	qrSize      = 256

	pageMargin   = 15.0
	contentRight = 195.0
	lineHeight   = 6.0
)

// QuoteRenderer формирует PDF котировки для клиента
type QuoteRenderer struct {
	companyName string
	publicURL   string // ссылка в QR коде; пусто - только ID бронирования
	compress    bool
}

// NewQuoteRenderer создает генератор PDF котировок
func NewQuoteRenderer(companyName, publicURL string) *QuoteRenderer {
	return &QuoteRenderer{
		companyName: companyName,
		publicURL:   strings.TrimRight(publicURL, "/"),
		compress:    true,
	}
}

// RenderQuote формирует одностраничный PDF: реквизиты мероприятия, состав котировки и график оплаты
func (r *QuoteRenderer) RenderQuote(booking *domain.Booking, status domain.PaymentStatus) ([]byte, error) {
	qr, err := qrcode.Encode(r.qrContent(booking.ID), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("%w: booking=%s: %v", ErrQRCode, booking.ID, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(fmt.Sprintf("Quotation %s", booking.ID), true)
	pdf.SetCreator(r.companyName, true)
	pdf.AddPage()

	// Встроенные шрифты работают в cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// 1. Шапка
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(r.companyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "QUOTATION", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(pageMargin, pdf.GetY(), contentRight, pdf.GetY())
	pdf.Ln(6)

	// 2. Реквизиты бронирования и QR код
	top := pdf.GetY()
	pdf.RegisterImageOptionsReader(qrImageName, gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qr))
	pdf.ImageOptions(qrImageName, 150, top, 40, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	field(pdf, tr, "Booking reference", booking.ID)
	field(pdf, tr, "Client", booking.CustomerName)
	field(pdf, tr, "Email", booking.CustomerEmail)
	if booking.CustomerPhone != nil {
		field(pdf, tr, "Phone", *booking.CustomerPhone)
	}
	field(pdf, tr, "Event", booking.EventType)
	field(pdf, tr, "Event date", booking.EventDate.Format(dateLayout))
	field(pdf, tr, "Venue", booking.Venue)
	if booking.CeremonyVenue != nil {
		field(pdf, tr, "Ceremony venue", *booking.CeremonyVenue)
	}
	if booking.GuestCount != nil {
		field(pdf, tr, "Guests", fmt.Sprintf("%d", *booking.GuestCount))
	}
	field(pdf, tr, "Status", string(booking.Status))
	if pdf.GetY() < top+45 {
		pdf.SetY(top + 45)
	}
	pdf.Ln(4)

	// 3. Состав котировки
	sectionTitle(pdf, "QUOTATION DETAILS")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range quoteLines(booking) {
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	// 4. Сумма и график оплаты
	sectionTitle(pdf, "PAYMENT SCHEDULE")
	pdf.SetFont("Helvetica", "", 11)
	if !booking.IsQuoted() {
		pdf.MultiCell(0, lineHeight, "The total amount will be provided once our team has reviewed your inquiry.", "", "L", false)
	} else {
		s := status.Summary
		amountRow(pdf, "Total amount", s.TotalAmount)
		amountRow(pdf, fmt.Sprintf("Downpayment (50%%) due %s", status.Deadlines.DownpaymentDeadline.Format(dateLayout)), s.DownpaymentAmount)
		amountRow(pdf, fmt.Sprintf("Final payment due %s", status.Deadlines.FinalPaymentDeadline.Format(dateLayout)), s.FinalPaymentAmount)
		pdf.Ln(2)
		amountRow(pdf, fmt.Sprintf("Paid to date (%d payments)", s.PaymentCount), s.TotalPaid)
		if s.Overpayment.IsPositive() {
			amountRow(pdf, "Overpayment", s.Overpayment)
		} else {
			amountRow(pdf, "Remaining balance", s.RemainingBalance)
		}
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		switch {
		case s.IsFullyPaid:
			pdf.CellFormat(0, lineHeight, "Fully paid. Thank you!", "", 1, "L", false, 0, "")
		case s.DownpaymentRemaining.IsPositive():
			pdf.CellFormat(0, lineHeight, fmt.Sprintf("Downpayment: %s", status.DownpaymentStatus.Label), "", 1, "L", false, 0, "")
		default:
			pdf.CellFormat(0, lineHeight, fmt.Sprintf("Final payment: %s", status.FinalPaymentStatus.Label), "", 1, "L", false, 0, "")
		}
	}

	// 5. Подвал
	pdf.SetY(-25)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageMargin, pdf.GetY(), contentRight, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Please quote %s in every payment reference.", booking.ID)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: booking=%s: %v", ErrRender, booking.ID, err)
	}

	return buf.Bytes(), nil
}

func (r *QuoteRenderer) qrContent(bookingID string) string {
	if r.publicURL == "" {
		return bookingID
	}
	return fmt.Sprintf("%s/%s", r.publicURL, bookingID)
}

// quoteLines текст котировки или перечень заказанных услуг по умолчанию
func quoteLines(booking *domain.Booking) []string {
	if booking.QuoteContent != nil && strings.TrimSpace(*booking.QuoteContent) != "" {
		return strings.Split(strings.TrimSpace(*booking.QuoteContent), "\n")
	}

	services := booking.Services.Requested()
	if len(services) == 0 {
		return []string{"Event production services as discussed."}
	}

	lines := make([]string, 0, len(services)+1)
	for _, s := range services {
		lines = append(lines, "- "+s)
	}
	if booking.Services.LiveBandRider != nil {
		lines = append(lines, "Live band rider: "+*booking.Services.LiveBandRider)
	}
	return lines
}

func field(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, lineHeight, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(90, lineHeight, tr(value), "", 1, "L", false, 0, "")
}

func amountRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(130, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("%s %s", currency, amount.StringFixed(2)), "", 1, "R", false, 0, "")
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}
