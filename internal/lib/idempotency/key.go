// Package idempotency генерирует ключи идемпотентности для запросов к
// платёжному провайдеру.
package idempotency

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// KeyBytes число случайных байт в ключе; в hex ключ занимает 16 символов.
const KeyBytes = 8

// Generator возвращает новый ключ при каждом вызове.
type Generator func() (string, error)

// NewKey читает KeyBytes байт из crypto/rand и кодирует их в hex.
// Уникальность вероятностная.
func NewKey() (string, error) {
	return newKeyFrom(rand.Reader)
}

func newKeyFrom(r io.Reader) (string, error) {
	const op = "idempotency.NewKey"
	b := make([]byte, KeyBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(b), nil
}
