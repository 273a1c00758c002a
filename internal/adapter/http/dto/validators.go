package dto

import (
	"errors"
	"fmt"
	"strings"

	"client-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("txkind", validateTxKind); err != nil {
			panic(fmt.Sprintf("register txkind validation: %v", err))
		}
	}
}

// validateTxKind accepts only the ledger's transaction kinds.
func validateTxKind(fl validator.FieldLevel) bool {
	return domain.TransactionKind(fl.Field().String()).Valid()
}

// BindingMessage turns a bind error into a short caller-facing reason.
// Field names are reported as they appear on the wire.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "malformed request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := wireName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		if field == "valor" {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must have between 1 and %d characters", field, domain.MaxDescriptionLength)
	case "min":
		return fmt.Sprintf("%s must have between 1 and %d characters", field, domain.MaxDescriptionLength)
	case "txkind":
		return field + " must be one of c, d"
	default:
		return field + " is invalid"
	}
}

func wireName(field string) string {
	switch field {
	case "Valor":
		return "valor"
	case "Tipo":
		return "tipo"
	case "Descricao":
		return "descricao"
	}
	return strings.ToLower(field)
}
