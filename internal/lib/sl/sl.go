// Package sl содержит вспомогательные функции для работы с логгером slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil возвращает пустой атрибут, который slog пропускает.
//
// Пример:
//
//	log.Error("failed to create card", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Masked возвращает атрибут с последними четырьмя символами значения,
// остальное закрыто звёздочками. Используется для номеров карт.
func Masked(key, value string) slog.Attr {
	if len(value) <= 4 {
		return slog.String(key, "****")
	}
	return slog.String(key, "****"+value[len(value)-4:])
}
