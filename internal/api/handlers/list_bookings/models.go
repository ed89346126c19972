package list_bookings

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/internal/service/bookings/models"
)

const maxLimit = 500

// ToServiceRequest формирует запрос к сервису из query параметров
// status: через запятую или повтором параметра
// archived: true, false (по умолчанию) или all
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	archived := false
	req := &models.ListBookingsRequest{
		Archived: &archived,
	}

	for _, raw := range query["status"] {
		for _, status := range strings.Split(raw, ",") {
			if status = strings.TrimSpace(status); status != "" {
				req.Statuses = append(req.Statuses, status)
			}
		}
	}

	switch value := strings.ToLower(strings.TrimSpace(query.Get("archived"))); value {
	case "", "false":
	case "all":
		req.Archived = nil
	case "true":
		archived = true
	default:
		return nil, domain.NewValidationError("archived", "must be one of: true, false, all")
	}

	if search := strings.TrimSpace(query.Get("search")); search != "" {
		req.Search = &search
	}

	var err error
	if req.EventFrom, err = parseDate(query, "from"); err != nil {
		return nil, err
	}
	if req.EventTo, err = parseDate(query, "to"); err != nil {
		return nil, err
	}

	if req.Limit, err = parseUint(query, "limit"); err != nil {
		return nil, err
	}
	if req.Limit > maxLimit {
		return nil, domain.NewValidationError("limit", "must be at most "+strconv.Itoa(maxLimit))
	}
	if req.Offset, err = parseUint(query, "offset"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseDate(query url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be a date in YYYY-MM-DD format")
	}
	return &date, nil
}

func parseUint(query url.Values, key string) (uint64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(key, "must be a non-negative integer")
	}
	return n, nil
}
