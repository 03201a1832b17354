package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	type signup struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	assert.NoError(t, Check(signup{Username: "anna", Email: "anna@example.com"}))
	assert.Error(t, Check(signup{Username: "anna", Email: "not-an-email"}))
	assert.Error(t, Check(signup{}))
}

func TestCheckID(t *testing.T) {
	assert.NoError(t, CheckID(GenerateID()))
	assert.Error(t, CheckID("42"))
}

func TestCheckPrice(t *testing.T) {
	price, err := CheckPrice("149.90")
	require.NoError(t, err)
	assert.Equal(t, "149.9", price.String())

	_, err = CheckPrice("-3")
	assert.Error(t, err)

	_, err = CheckPrice("lots")
	assert.Error(t, err)
}
