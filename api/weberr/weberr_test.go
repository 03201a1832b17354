package weberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDecoration(t *testing.T) {
	base := errors.New("stock row missing")
	err := NewError(base, "item 'Sunset' is out of stock", http.StatusBadRequest)

	body, status, ok := Response(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)

	resp, ok := body.(*ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "item 'Sunset' is out of stock", resp.Error)

	assert.True(t, errors.Is(err, base), "decoration must preserve the chain")
}

func TestResponseSurvivesWrapping(t *testing.T) {
	err := NotFound(errors.New("no such cart"))
	wrapped := fmt.Errorf("placing order: %w", err)

	_, status, ok := Response(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFields(t *testing.T) {
	err := Wrap(errors.New("boom"), WithFields(map[string]interface{}{"art_id": "42"}))

	fields, ok := Fields(err)
	require.True(t, ok)
	assert.Equal(t, "42", fields["art_id"])
}

func TestUndecorated(t *testing.T) {
	err := errors.New("plain")

	_, _, ok := Response(err)
	assert.False(t, ok)

	_, ok = Fields(err)
	assert.False(t, ok)
}
