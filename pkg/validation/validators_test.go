package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"go-jobboard-backend/pkg/validation"
)

func TestValidPhone(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type form struct {
		Phone string `validate:"omitempty,valid_phone"`
	}

	t.Run("Should accept E.164-like numbers", func(t *testing.T) {
		assert.NoError(t, v.Struct(form{Phone: "+48123456789"}))
		assert.NoError(t, v.Struct(form{Phone: "123456789"}))
	})

	t.Run("Should accept an empty optional phone", func(t *testing.T) {
		assert.NoError(t, v.Struct(form{}))
	})

	t.Run("Should reject formatted or short numbers", func(t *testing.T) {
		assert.Error(t, v.Struct(form{Phone: "12 34 56"}))
		assert.Error(t, v.Struct(form{Phone: "123"}))
		assert.Error(t, v.Struct(form{Phone: "+48-123-456-789"}))
	})
}

func TestFieldErrors(t *testing.T) {
	v := validator.New()

	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,max=5"`
	}

	t.Run("Should flatten every violation into a reason", func(t *testing.T) {
		err := v.Struct(form{Email: "nope", Name: "toolongname"})
		details := validation.FieldErrors(err)
		assert.Len(t, details, 2)
		assert.Contains(t, details[0], "valid email")
		assert.Contains(t, details[1], "maximum length")
	})

	t.Run("Should pass through non-validator errors", func(t *testing.T) {
		details := validation.FieldErrors(assert.AnError)
		assert.Equal(t, []string{assert.AnError.Error()}, details)
	})
}
