package internal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	gen := sectorRow("California", 2022, map[string]float64{
		SourceCoal:           0.1,
		SourceNaturalGas:     96.7,
		SourcePetroleumCoke:  0.2,
		SourcePetroleum:      0.3,
		SourceOtherGases:     1.1,
		SourceTotalGenerated: 203.3,
	})

	src, err := Classify(gen, DefaultClassifyRules())
	require.NoError(t, err)

	assert.Equal(t, TotalCanonical, src.Total.Origin)
	assert.Equal(t, SourceTotalGenerated, src.Total.Column)
	assert.True(t, src.FossilFuels.Equal(decimal.RequireFromString("97.3")), "fossil = %s", src.FossilFuels)
	assert.True(t, src.Renewable.Equal(decimal.RequireFromString("106")), "renewable = %s", src.Renewable)

	// Exact, not approximate
	assert.True(t, src.FossilFuels.Add(src.Renewable).Equal(src.Total.Value))

	assert.Equal(t, 97.3, src.Value(SourceFossilFuels))
	assert.Equal(t, 106.0, src.Value(SourceRenewable))
	assert.Equal(t, 1.1, src.Value(SourceOtherGases), "source columns are kept")
	assert.InDelta(t, 106/203.3, src.RenewableShare(), 1e-12)
}

func TestClassify_DecimalFieldsStayExact(t *testing.T) {
	src, err := Classify(sectorRow("Oregon", 2022, map[string]float64{
		SourceCoal:           0.1,
		SourceTotalGenerated: 0.3,
	}), DefaultClassifyRules())
	require.NoError(t, err)

	assert.True(t, src.Renewable.Equal(decimal.RequireFromString("0.2")), "renewable = %s", src.Renewable)
	assert.True(t, src.FossilFuels.Add(src.Renewable).Equal(src.Total.Value))

	// Reports read the decimal fields, not the float copies
	rep := GenerationReport("GWh", src)
	fossil, renewable := rep.Rows[len(rep.Rows)-2], rep.Rows[len(rep.Rows)-1]
	assert.Equal(t, 0.1, fossil.Values[0])
	assert.Equal(t, 0.2, renewable.Values[0])
	assert.Equal(t, 0.3, rep.Footer.Values[0])
}

func TestClassify_MissingFossilSourcesCountZero(t *testing.T) {
	gen := sectorRow("Washington", 2022, map[string]float64{
		SourceNaturalGas:     12,
		SourceTotalGenerated: 100,
	})

	src, err := Classify(gen, DefaultClassifyRules())
	require.NoError(t, err)
	assert.Equal(t, "12", src.FossilFuels.String())
	assert.Equal(t, "88", src.Renewable.String())
}

func TestClassify_AlternateTotal(t *testing.T) {
	gen := sectorRow("Oregon", 2022, map[string]float64{
		SourceCoal:                  5,
		"All Fuels (utility-scale)": 60,
	})

	src, err := Classify(gen, DefaultClassifyRules())
	require.NoError(t, err)

	assert.Equal(t, TotalFromAlternate, src.Total.Origin)
	assert.Equal(t, "All Fuels (utility-scale)", src.Total.Column)
	assert.Equal(t, "55", src.Renewable.String())
	assert.Equal(t, 60.0, src.Value(SourceTotalGenerated))
}

func TestClassify_MissingTotal(t *testing.T) {
	gen := sectorRow("Oregon", 2022, map[string]float64{SourceCoal: 5})

	_, err := Classify(gen, DefaultClassifyRules())
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Classify(gen, ClassifyRules{FossilSources: []string{SourceCoal}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	gen := sectorRow("Oregon", 2022, map[string]float64{SourceCoal: 5, SourceTotalGenerated: 10})

	_, err := Classify(gen, DefaultClassifyRules())
	require.NoError(t, err)
	assert.False(t, gen.Has(SourceRenewable))
	assert.False(t, gen.Has(SourceFossilFuels))
}

func TestSourceRow_RenewableShareOfZeroTotal(t *testing.T) {
	gen := sectorRow("Oregon", 2022, map[string]float64{SourceTotalGenerated: 0})

	src, err := Classify(gen, DefaultClassifyRules())
	require.NoError(t, err)
	assert.Zero(t, src.RenewableShare())
}
