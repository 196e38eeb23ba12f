package email

import "errors"

var (
	// ErrSendFailed возвращается, когда письмо не удалось отправить
	ErrSendFailed = errors.New("email client: send failed")

	// ErrRender возвращается при ошибке сборки тела письма
	ErrRender = errors.New("email client: render failed")
)
