package hobbies

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"
)

var phoneCharset = regexp.MustCompile(`^[0-9\s\-\+\(\)]*$`)

// PhoneNumber validates a phone value: digits, spaces, dashes, parens and a
// leading plus only, at least 10 characters. Values in international form get
// a structural check through the phone number library on top.
var PhoneNumber = validation.By(validatePhoneNumber)

func validatePhoneNumber(value any) error {
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if raw == "" {
		return nil
	}
	if !phoneCharset.MatchString(raw) {
		return fmt.Errorf("must be a valid phone number")
	}
	if len(raw) < 10 {
		return fmt.Errorf("must be at least 10 characters")
	}
	if strings.HasPrefix(raw, "+") {
		num, err := phonenumbers.Parse(raw, "")
		if err != nil {
			return fmt.Errorf("must be a valid phone number")
		}
		if !phonenumbers.IsPossibleNumber(num) {
			return fmt.Errorf("must be a valid phone number")
		}
	}
	return nil
}
