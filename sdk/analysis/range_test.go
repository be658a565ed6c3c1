package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-trainer/poker"
)

func TestParseRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		notation  string
		wantSize  int
		wantCount int
		wantErr   bool
	}{
		{name: "pocket aces", notation: "AA", wantSize: 6, wantCount: 1},
		{name: "ace king suited", notation: "AKs", wantSize: 4, wantCount: 1},
		{name: "ace king offsuit", notation: "AKo", wantSize: 12, wantCount: 1},
		{name: "ace king any", notation: "AK", wantSize: 16, wantCount: 2},
		{name: "multiple hands", notation: "AA,KK,AKs", wantSize: 16, wantCount: 3},
		{name: "pair ladder", notation: "22+", wantSize: 78, wantCount: 13},
		{name: "pocket pairs range", notation: "TT+", wantSize: 30, wantCount: 5},
		{name: "suited range plus", notation: "ATs+", wantSize: 16, wantCount: 4},
		{name: "offsuit range plus", notation: "KJo+", wantSize: 24, wantCount: 2},
		{name: "dash range pairs", notation: "22-55", wantSize: 24, wantCount: 4},
		{name: "dash range reversed", notation: "55-22", wantSize: 24, wantCount: 4},
		{name: "dash range suited", notation: "A5s-A2s", wantSize: 16, wantCount: 4},
		{name: "lowercase and spaces", notation: " aks , t t ", wantSize: 10, wantCount: 2},
		{name: "reversed ranks", notation: "KA", wantSize: 16, wantCount: 2},
		{name: "duplicates collapse", notation: "AA,AA,QQ+", wantSize: 18, wantCount: 3},
		{name: "empty", notation: "", wantSize: 0, wantCount: 0},
		{name: "invalid rank", notation: "XX", wantErr: true},
		{name: "invalid modifier", notation: "AKx", wantErr: true},
		{name: "suited pair", notation: "AAs", wantErr: true},
		{name: "too long", notation: "AKsx", wantErr: true},
		{name: "trailing plus text", notation: "22+3", wantErr: true},
		{name: "mixed span", notation: "22-AKs", wantErr: true},
		{name: "span across high cards", notation: "A5s-K2s", wantErr: true},
		{name: "span mixing suitedness", notation: "A5s-A2o", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := ParseRange(tt.notation)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, poker.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, r.Size())
			assert.Len(t, r, tt.wantCount)
			assert.Len(t, r.Combos(poker.NewDeck()), tt.wantSize)
		})
	}
}

func TestParseRangeClasses(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AKs,AQs,AJs", MustParseRange("AJs+").String())
	assert.Equal(t, "AA,KK,QQ", MustParseRange("QQ+").String())
	assert.Equal(t, "JJ,AKs,AKo,T9s", MustParseRange("T9s, AK, JJ").String())

	// Order of tokens never changes the result.
	assert.Equal(t, MustParseRange("22+,AJs+"), MustParseRange("AJs+, 22+"))
}

func TestCombosExcludeDeadCards(t *testing.T) {
	t.Parallel()
	hero := mustCombo(t, "AhKh")
	available := poker.NewDeck().Remove(hero.Hand())

	combos := MustParseRange("AA").Combos(available)
	// Three of the six aces combos use the Ah.
	require.Len(t, combos, 3)
	for _, c := range combos {
		assert.Zero(t, c.Hand()&hero.Hand(), "combo %s collides with hero", c)
	}

	board := poker.NewHand(poker.MustParseHand("AsAd2c")...)
	assert.Empty(t, MustParseRange("AA").Combos(available.Remove(board)))
}

func TestCombosDeduplicate(t *testing.T) {
	t.Parallel()
	n := Notation{High: poker.King, Low: poker.King, Kind: PairKind}
	combos := Combos([]Notation{n, n}, poker.NewDeck())
	assert.Len(t, combos, 6)
}

func TestComboNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		combo string
		want  string
	}{
		{"KdAs", "AKo"},
		{"7h7c", "77"},
		{"9sTs", "T9s"},
	}
	for _, tt := range tests {
		c := mustCombo(t, tt.combo)
		assert.Equal(t, tt.want, c.Notation().String())
		assert.Contains(t, MustParseRange(tt.want), c.Notation())
	}

	c := mustCombo(t, "KdAs")
	assert.Equal(t, "AsKd", c.String())
}

func TestParseCombo(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"Ah", "AhKhQh", "AhAh", "Zz2c"} {
		_, err := ParseCombo(bad)
		assert.ErrorIs(t, err, poker.ErrInvalidInput, bad)
	}
}

func mustCombo(t *testing.T, text string) Combo {
	t.Helper()
	c, err := ParseCombo(text)
	require.NoError(t, err)
	return c
}
