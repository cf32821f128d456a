package domain

import "errors"

var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrQuery             = errors.New("query failed")
	ErrValidation        = errors.New("cnpj and invoice number are required")
	ErrDateParse         = errors.New("invalid expected delivery date")
	ErrChargeUnavailable = errors.New("charge delivery unavailable")
)
