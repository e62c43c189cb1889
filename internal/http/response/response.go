// Package response содержит вспомогательные функции для JSON-ответов
// HTTP-обработчиков: запись с кодом статуса и тексты ошибок валидации.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// StatusResponse ответ служебных эндпоинтов.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// OK возвращает StatusResponse со статусом "ok".
func OK() StatusResponse {
	return StatusResponse{Status: "ok"}
}

// JSON пишет v в ответ с кодом status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// ValidationMessage собирает ошибки валидации в одну строку через запятую.
func ValidationMessage(errs validator.ValidationErrors) string {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}
