package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := notFound("region", "abc")
	assert.Equal(t, "region with ID abc not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var nf *NotFoundError
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "abc", nf.ID)
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.Nil(t, verr.OrNil())

	verr.Add("phone", "digits only")
	verr.Add("email", "gmail only")
	verr.Add("phone", "too long")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, []string{"digits only", "too long"}, verr.Fields["phone"])
	assert.Equal(t, "validation failed: email: gmail only, phone: digits only; too long", verr.Error())
	assert.Error(t, verr.OrNil())
}
