package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/m04kA/EventsBookingService/internal/domain"
)

const (
	dateLayout   = "Jan 2, 2006"
	moneyPlaces  = 2
	currencySign = "₱"
)

// Client клиент уведомлений в чат сотрудников
// Без токена работает в отключенном режиме: сообщения только логируются
type Client struct {
	sender Sender
	chatID int64
	log    Logger
}

// NewClient создает клиента Telegram бота
func NewClient(token string, chatID int64, log Logger) (*Client, error) {
	if token == "" || chatID == 0 {
		log.Warn("Telegram: bot token or chat id is empty, notifications disabled")
		return &Client{log: log}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create bot: %v", ErrInternal, err)
	}

	log.Info("Telegram: authorized as @%s, chat_id=%d", bot.Self.UserName, chatID)
	return NewClientWithSender(bot, chatID, log), nil
}

// NewClientWithSender создает клиента с готовым отправителем
func NewClientWithSender(sender Sender, chatID int64, log Logger) *Client {
	return &Client{sender: sender, chatID: chatID, log: log}
}

// Enabled уведомления включены
func (c *Client) Enabled() bool {
	return c.sender != nil
}

// NotifyNewInquiry сообщает о новой заявке
func (c *Client) NotifyNewInquiry(ctx context.Context, booking *domain.Booking) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>New inquiry %s</b>\n", esc(booking.ID))
	fmt.Fprintf(&b, "%s (%s)\n", esc(booking.CustomerName), esc(booking.CustomerEmail))
	fmt.Fprintf(&b, "%s on %s at %s\n", esc(booking.EventType), booking.EventDate.Format(dateLayout), esc(booking.Venue))
	if booking.GuestCount != nil {
		fmt.Fprintf(&b, "Guests: %d\n", *booking.GuestCount)
	}
	if services := booking.Services.Requested(); len(services) > 0 {
		fmt.Fprintf(&b, "Services: %s\n", esc(strings.Join(services, ", ")))
	}

	return c.send(ctx, b.String())
}

// NotifyPaymentValidated сообщает о подтвержденном платеже
func (c *Client) NotifyPaymentValidated(ctx context.Context, booking *domain.Booking, payment *domain.PaymentRecord) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Payment validated for %s</b>\n", esc(booking.ID))
	fmt.Fprintf(&b, "%s %s via %s\n", formatMoney(payment.Amount), esc(string(payment.PaymentType)), esc(string(payment.PaymentMethod)))
	if payment.ReferenceNumber != nil {
		fmt.Fprintf(&b, "Reference: %s\n", esc(*payment.ReferenceNumber))
	}
	if payment.ValidatedBy != nil {
		fmt.Fprintf(&b, "Validated by: %s\n", esc(*payment.ValidatedBy))
	}
	fmt.Fprintf(&b, "Status: %s", esc(string(booking.Status)))

	return c.send(ctx, b.String())
}

// SendDeadlineDigest отправляет сводку по дедлайнам; пустая сводка пропускается
func (c *Client) SendDeadlineDigest(ctx context.Context, digest Digest) error {
	if digest.IsEmpty() {
		c.log.Info("Telegram: deadline digest for %s is empty, skipping", digest.Date.Format(domain.DateFormat))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Payment deadlines, %s</b>\n", digest.Date.Format(dateLayout))
	writeSection(&b, "Overdue", digest.Overdue)
	writeSection(&b, "Due soon", digest.DueSoon)

	return c.send(ctx, strings.TrimRight(b.String(), "\n"))
}

func writeSection(b *strings.Builder, title string, items []DigestItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n<b>%s (%d)</b>\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(b, "• %s %s: %s payment %s, outstanding %s (event %s)\n",
			esc(item.BookingID),
			esc(item.CustomerName),
			esc(item.Deadline),
			esc(strings.ToLower(item.Label)),
			formatMoney(item.Outstanding),
			item.EventDate.Format(dateLayout),
		)
	}
}

func (c *Client) send(ctx context.Context, text string) error {
	if c.sender == nil {
		c.log.Info("Telegram: notification skipped (disabled): %s", firstLine(text))
		return nil
	}

	if err := ctx.Err(); err != nil {
		c.log.Warn("Telegram: notification skipped (context done): %v", err)
		return nil
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := c.sender.Send(msg); err != nil {
		c.log.Error("Telegram: failed to send to chat_id=%d: %v", c.chatID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return nil
}

func esc(s string) string {
	return html.EscapeString(s)
}

func formatMoney(d decimal.Decimal) string {
	return currencySign + d.StringFixed(moneyPlaces)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
