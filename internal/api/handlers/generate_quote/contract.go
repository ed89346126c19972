package generate_quote

import (
	"context"

	"github.com/m04kA/EventsBookingService/internal/domain"
	generateQuote "github.com/m04kA/EventsBookingService/internal/usecase/generate_quote"
)

type GenerateQuoteUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, req *generateQuote.Request) (*generateQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
