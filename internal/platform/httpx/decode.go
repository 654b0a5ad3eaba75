package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses the JSON request body into dst and runs struct
// validation. Validation failures come back as a *ValidationError so
// RespondError can report them per field.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed json: %s", ErrValidation, err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make(map[string]string, len(invalid))
			for _, fe := range invalid {
				fields[strings.ToLower(fe.Field())] = fe.Tag()
			}
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}
