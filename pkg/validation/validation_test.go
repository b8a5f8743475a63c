package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FirstName string  `json:"first_name" validate:"required,max=5,no_emoji"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

func ptr(s string) *string { return &s }

func TestValidatorMessages(t *testing.T) {
	v := New()

	t.Run("Should accept a valid struct", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "Ann", Email: "ann@example.com", Phone: ptr("+1 (555) 010-1234")})
		assert.NoError(t, err)
	})

	t.Run("Should report json names with English labels", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "Annabelle", Email: "nope"})
		require.Error(t, err)
		msgs := FormatValidationErrors(err)
		assert.ElementsMatch(t, []string{
			"First name: must be at most 5 characters",
			"Email: is not a valid email address",
		}, msgs)
	})

	t.Run("Should reject emoji and an over-long phone", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "A😀", Email: "a@b.co", Phone: ptr("+1 555 0100 0100 0100 99")})
		require.Error(t, err)
		msgs := FormatValidationErrors(err)
		assert.Contains(t, msgs, "First name: must not contain emoji or symbols")
		assert.Contains(t, msgs, "Phone: must be at most 20 characters")
	})

	t.Run("Should accept any phone text up to 20 characters", func(t *testing.T) {
		for _, phone := range []string{"12345", "x100", "555-1234 ext 9"} {
			assert.NoError(t, v.Struct(sample{FirstName: "Ann", Email: "a@b.co", Phone: ptr(phone)}), phone)
		}
	})

	t.Run("Should pass through non-validation errors", func(t *testing.T) {
		assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
	})
}
