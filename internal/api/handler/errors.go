package handler

import (
	"errors"
	"net/http"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// validationMessage is shown when either identifier is missing.
const validationMessage = "Por favor, preencha o CNPJ e o Número da NF."

// Describe maps a service error to an HTTP status and the message shown to the
// user. Gateway detail never reaches the message; callers log err for it. known
// is false for errors that should be logged and hidden.
func Describe(err error) (status int, msg string, known bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, validationMessage, true
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusBadGateway, "Erro ao obter token: Falha ao obter token", true
	case errors.Is(err, domain.ErrQuery):
		return http.StatusBadGateway, "Erro na consulta: Falha na consulta", true
	case errors.Is(err, domain.ErrChargeUnavailable):
		return http.StatusConflict, err.Error(), true
	}
	return http.StatusInternalServerError, "internal server error", false
}
