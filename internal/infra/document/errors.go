package document

import "errors"

var (
	// ErrQRCode возвращается при ошибке генерации QR кода
	ErrQRCode = errors.New("document: failed to encode qr code")

	// ErrRender возвращается при ошибке формирования PDF
	ErrRender = errors.New("document: failed to render pdf")
)
