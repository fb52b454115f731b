package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeShape(t *testing.T) {
	raw, err := json.Marshal(OK(map[string]int{"id": 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":null,"data":{"id":3}}`, string(raw))

	raw, err = json.Marshal(Error(http.StatusConflict, "Email already exists."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Email already exists.","data":null}`, string(raw))
}

func TestErrorDefaultMessage(t *testing.T) {
	assert.Equal(t, "Internal server error", *Error(http.StatusInternalServerError, "").Message)
	assert.Equal(t, "I'm a teapot", *Error(http.StatusTeapot, "").Message)
}
