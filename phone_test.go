package hobbies_test

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	hobbies "github.com/goliatone/go-hobbies"
	"github.com/stretchr/testify/assert"
)

func TestPhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"international US number", "+12025550123", false},
		{"international UK number", "+442071838750", false},
		{"formatted number", "(202) 555-0123", false},
		{"plain digits", "2025550123", false},
		{"empty string passes", "", false},
		{"letters rejected", "20255501ab", true},
		{"too short", "555-0123", true},
		{"impossible international number", "+9999999999999999999", true},
		{"international form too short", "+1202", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, hobbies.PhoneNumber)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
