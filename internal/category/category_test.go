package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllDeclarationOrder(t *testing.T) {
	want := []Code{
		Blockchain, Earnings, IPO, MergersAndAcquisitions, FinancialMarkets,
		EconomyFiscal, EconomyMonetary, EconomyMacro, EnergyTransportation,
		Finance, LifeSciences, Manufacturing, RealEstate, RetailWholesale,
		Technology,
	}
	assert.Equal(t, want, All())
	assert.Equal(t, 15, Count())
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	assert.Equal(t, Blockchain, All()[0])
}

func TestLabelsAndDescriptions(t *testing.T) {
	for _, c := range All() {
		assert.True(t, c.Valid(), c)
		assert.NotEmpty(t, c.Label(), c)
		assert.NotEmpty(t, c.Description(), c)
	}
	assert.Equal(t, "Real Estate & Construction", RealEstate.Label())
	assert.Equal(t, "Economy - Macro/Overall", Baseline.Label())

	unknown := Code("sports")
	assert.False(t, unknown.Valid())
	assert.Equal(t, "sports", unknown.Label())
	assert.Empty(t, unknown.Description())
}

func TestParse(t *testing.T) {
	c, err := Parse("  Real_Estate ")
	require.NoError(t, err)
	assert.Equal(t, RealEstate, c)

	_, err = Parse("sports")
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	l, err := ParseList("finance, blockchain,,finance ,ECONOMY_MACRO")
	require.NoError(t, err)
	assert.Equal(t, List{Finance, Blockchain, EconomyMacro}, l)
	assert.Equal(t, "finance,blockchain,economy_macro", l.Join(","))
	assert.True(t, l.Contains(Blockchain))
	assert.False(t, l.Contains(IPO))

	_, err = ParseList("finance,sports")
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	s := NewSet(Finance)
	s.Add(Finance, IPO)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(IPO))
	assert.False(t, s.Has(Technology))
}
