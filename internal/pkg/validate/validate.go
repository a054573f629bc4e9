package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError is the per-field entry of the API's validation error payload.
type FieldError struct {
	Msg string `json:"msg"`
}

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the validator tags on req and maps each failing field to the
// user-facing message registered for it in msgs. A nil return means the
// request is valid.
func Struct(req any, msgs map[string]string) []FieldError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Msg: "Invalid request"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := msgs[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out = append(out, FieldError{Msg: msg})
	}
	return out
}
