package domain

import (
	"fmt"
	"time"
)

// DeadlineUrgency classifies how close a payment deadline is
type DeadlineUrgency string

const (
	DeadlineOverdue  DeadlineUrgency = "overdue"
	DeadlineDueSoon  DeadlineUrgency = "due-soon"
	DeadlineUpcoming DeadlineUrgency = "upcoming"
)

// Deadlines are derived from the event date and never stored
type Deadlines struct {
	DownpaymentDeadline  time.Time
	FinalPaymentDeadline time.Time
}

// DeadlineStatus describes a deadline relative to today.
// Days is always non-negative; for overdue deadlines it counts days past due.
type DeadlineStatus struct {
	Status DeadlineUrgency
	Days   int
	Label  string
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddMonthsClamped shifts t by months calendar months. When the day of month
// does not exist in the target month it is clamped to the last valid day
// (March 31 minus one month is February 28 or 29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// CalculateDeadlines derives the downpayment and final payment deadlines of an event
func CalculateDeadlines(eventDate time.Time) Deadlines {
	event := DateOnly(eventDate)
	return Deadlines{
		DownpaymentDeadline:  AddMonthsClamped(event, -DownpaymentMonthsAhead),
		FinalPaymentDeadline: event,
	}
}

// DaysUntilDeadline counts calendar days from now's date to the deadline's date.
// Negative when the deadline has passed.
func DaysUntilDeadline(deadline, now time.Time) int {
	dy, dm, dd := deadline.Date()
	ny, nm, nd := now.Date()
	// Civil dates in UTC so DST changes do not produce 23 or 25 hour days.
	from := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	to := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FormatDeadlineStatus classifies a deadline as overdue, due-soon (0..7 days) or upcoming
func FormatDeadlineStatus(deadline, now time.Time) DeadlineStatus {
	days := DaysUntilDeadline(deadline, now)

	switch {
	case days < 0:
		overdue := -days
		return DeadlineStatus{
			Status: DeadlineOverdue,
			Days:   overdue,
			Label:  fmt.Sprintf("%d %s overdue", overdue, pluralDays(overdue)),
		}
	case days <= DueSoonWindowDays:
		return DeadlineStatus{
			Status: DeadlineDueSoon,
			Days:   days,
			Label:  fmt.Sprintf("Due in %d %s", days, pluralDays(days)),
		}
	default:
		return DeadlineStatus{
			Status: DeadlineUpcoming,
			Days:   days,
			Label:  fmt.Sprintf("Due in %d %s", days, pluralDays(days)),
		}
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
