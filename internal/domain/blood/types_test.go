package blood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes_OrdenCanonico(t *testing.T) {
	got := Types()
	want := []Type{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}
	require.Equal(t, want, got, "el orden canónico ABO/Rh no debe cambiar")

	for i, bt := range got {
		assert.Equal(t, i, bt.Index(), "Index debe coincidir con la posición canónica de %s", bt)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"A+", true},
		{"O-", true},
		{"AB+", true},
		{"a+", false}, // sensible a mayúsculas
		{"A +", false},
		{"C+", false},
		{"", false},
	}
	for _, tc := range tests {
		_, ok := ParseType(tc.in)
		assert.Equal(t, tc.ok, ok, "ParseType(%q)", tc.in)
	}
}

func TestParseComponent(t *testing.T) {
	for _, c := range Components() {
		got, ok := ParseComponent(string(c))
		require.True(t, ok, "componente canónico %s debe parsear", c)
		assert.Equal(t, c, got)
	}

	_, ok := ParseComponent("red_cells")
	assert.False(t, ok, "componente fuera del conjunto canónico debe rechazarse")
}

func TestShelfLifeDays(t *testing.T) {
	assert.Equal(t, 42, ShelfLifeDays(WholeBlood))
	assert.Equal(t, 365, ShelfLifeDays(Plasma))
	assert.Equal(t, 5, ShelfLifeDays(Platelets))
}

func TestUrgency_Rank(t *testing.T) {
	assert.Less(t, Routine.Rank(), Urgent.Rank(), "routine debe ser menos severa que urgent")
	assert.Less(t, Urgent.Rank(), Emergency.Rank(), "urgent debe ser menos severa que emergency")
	assert.Equal(t, -1, Urgency("critical").Rank(), "urgencia desconocida devuelve -1")
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusFulfilled.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
