package telegram

import "errors"

var (
	// ErrInternal возвращается при ошибке создания клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrSendFailed возвращается, если Telegram не принял сообщение
	ErrSendFailed = errors.New("telegram client: failed to send message")
)
