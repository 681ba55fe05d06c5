package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Missing: []string{"date", "duration"}}

	assert.Equal(t, "required columns missing: date, duration", err.Error())
}

func TestRosterLoadErrorUnwraps(t *testing.T) {
	cause := errors.New("file corrupt")
	err := NewRosterLoadError("/data/roster.csv", cause)

	var loadErr *RosterLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/data/roster.csv", loadErr.Source)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/data/roster.csv")
}
