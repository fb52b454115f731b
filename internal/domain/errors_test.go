package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("user with ID 1 not found")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("create: %w", Conflict("Email already exists."))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestError_MessageJoinsFields(t *testing.T) {
	err := Validation("invalid input",
		FieldError{Field: "email", Reason: "must be a valid email"},
		FieldError{Field: "age", Reason: "must be at most 100"},
	)
	assert.Equal(t, "email: must be a valid email; age: must be at most 100", err.Error())
}

func TestStorage_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("find user by id", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Contains(t, err.Error(), "find user by id")
}
