package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
	assert.Equal(t, Default(), Location("Mars/Olympus").String())
	assert.Equal(t, Default(), Location("").String())
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", Location("").String())

	SetDefault("nope")
	assert.Equal(t, "America/Sao_Paulo", Default())
}

func TestIn(t *testing.T) {
	instant := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	got := In("America/Sao_Paulo", instant)

	assert.Equal(t, 9, got.Hour())
	assert.True(t, got.Equal(instant))
}
