package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ClassifyRules lists the fossil sources and the fallback name of the total column
type ClassifyRules struct {
	FossilSources  []string
	AlternateTotal string
}

// DefaultClassifyRules returns the rules used for the EIA net generation table
func DefaultClassifyRules() ClassifyRules {
	return ClassifyRules{
		FossilSources:  []string{SourceCoal, SourceNaturalGas, SourcePetroleumCoke, SourcePetroleum},
		AlternateTotal: "all fuels (utility-scale)",
	}
}

// Classify splits a generation row into fossil and renewable totals.
//
// Fossil Fuels is the sum of the fossil source columns (absent ones count as
// zero) and Renewable is Total Generated minus Fossil Fuels. The arithmetic is
// decimal, so Fossil Fuels + Renewable equals the total exactly on the
// decimal fields of the result. The source columns are kept; Fossil Fuels,
// Renewable and Total Generated are also set on the returned row as float64
// display copies.
func Classify(row SectorRow, rules ClassifyRules) (SourceRow, error) {
	total, err := totalGenerated(row, rules.AlternateTotal)
	if err != nil {
		return SourceRow{}, err
	}

	fossil := decimal.Zero
	for _, source := range rules.FossilSources {
		fossil = fossil.Add(decimal.NewFromFloat(row.Value(source)))
	}
	renewable := total.Value.Sub(fossil)

	out := row.Clone()
	out.Values[SourceTotalGenerated] = total.Value.InexactFloat64()
	out.Values[SourceFossilFuels] = fossil.InexactFloat64()
	out.Values[SourceRenewable] = renewable.InexactFloat64()

	return SourceRow{
		SectorRow:   out,
		Total:       total,
		FossilFuels: fossil,
		Renewable:   renewable,
	}, nil
}

// totalGenerated reads the total from the canonical column, falling back to
// the alternate column name (matched case-insensitively)
func totalGenerated(row SectorRow, alternate string) (TotalGenerated, error) {
	if v, ok := row.Values[SourceTotalGenerated]; ok {
		return TotalGenerated{
			Value:  decimal.NewFromFloat(v),
			Column: SourceTotalGenerated,
			Origin: TotalCanonical,
		}, nil
	}
	if alternate != "" {
		for _, k := range row.Keys() {
			if strings.EqualFold(k, alternate) {
				return TotalGenerated{
					Value:  decimal.NewFromFloat(row.Values[k]),
					Column: k,
					Origin: TotalFromAlternate,
				}, nil
			}
		}
	}
	return TotalGenerated{}, fmt.Errorf("%w: generation row for %s (%d) has neither %q nor %q",
		ErrSchemaMismatch, row.Region, row.Year, SourceTotalGenerated, alternate)
}
