package sessionid

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-trainer/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
	assert.NotEqual(t, id, Generate())
}

func TestGeneratorIsDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	a := NewGenerator(clock, randutil.New(1)).Generate()
	b := NewGenerator(clock, randutil.New(1)).Generate()
	assert.Equal(t, a, b)
	require.NoError(t, Validate(a))
}

func TestIdentifiersSortByTime(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	g := NewGenerator(clock, randutil.New(2))

	first := g.Generate()
	clock.Advance(time.Millisecond)
	second := g.Generate()
	clock.Advance(time.Hour)
	third := g.Generate()

	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestValidate(t *testing.T) {
	valid := NewGenerator(nil, randutil.New(3)).Generate()

	tests := []struct {
		name string
		id   string
	}{
		{"too short", valid[:25]},
		{"too long", valid + "0"},
		{"excluded letter", "i" + valid[1:]},
		{"uppercase", "A" + valid[1:]},
		{"not version 7", "0000000000000000000000000" + "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.id))
		})
	}
}
