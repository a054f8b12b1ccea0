package hobbies

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FormatValidationErrorToMap flattens an ozzo validation error into a map of
// field name to failure message
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	verr, ok := err.(validation.Errors)
	if !ok {
		out["error"] = err.Error()
		return out
	}

	for field, ferr := range verr {
		out[field] = ferr.Error()
	}

	return out
}

// firstValidationMessage picks one deterministic message out of a validation
// error. Fields are walked in sorted order so the same failure always reports
// the same message.
func firstValidationMessage(err error) string {
	if err == nil {
		return ""
	}

	verr, ok := err.(validation.Errors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(verr))
	for field := range verr {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if ferr := verr[field]; ferr != nil {
			return fmt.Sprintf("%s: %s", field, ferr.Error())
		}
	}

	return err.Error()
}
