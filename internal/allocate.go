package internal

import "fmt"

// AllocationMode selects how gas burned for electricity lands in the gas row
type AllocationMode int

const (
	// AllocateCombine adds each sector's share onto the gas row's own sector column
	AllocateCombine AllocationMode = iota
	// AllocateSplit writes each share to a separate "<sector> Electricity" column
	AllocateSplit
)

func (m AllocationMode) String() string {
	switch m {
	case AllocateCombine:
		return "combine"
	case AllocateSplit:
		return "split"
	default:
		return fmt.Sprintf("AllocationMode(%d)", int(m))
	}
}

// ElectricitySuffix names the split-mode columns ("Residential Electricity")
const ElectricitySuffix = " Electricity"

// Allocation is the result of attributing gas-for-power to end-use sectors
type Allocation struct {
	// Gas is a copy of the gas row as it was before allocation
	Gas SectorRow
	// Row is the gas row with the allocated amounts merged in
	Row SectorRow
	// Shares is each sector's fraction of total electricity sales
	Shares map[string]float64
	// Allocated is the gas attributed to each sector
	Allocated map[string]float64
	// TotalElectricity is the sum of electricity sales over the end-use sectors
	TotalElectricity float64
	Mode             AllocationMode
}

// Allocate apportions the gas row's Electric Power quantity across the
// electricity row's end-use sectors in proportion to their share of sales.
// Neither input is modified. When there were no electricity sales at all every
// share and allocation is zero.
func Allocate(gas, electricity SectorRow, mode AllocationMode) (Allocation, error) {
	gasForPower, err := gas.Get(SectorElectricPower)
	if err != nil {
		return Allocation{}, fmt.Errorf("allocating gas for %s: %w", gas.Region, err)
	}
	if _, err := electricity.Get(SectorTotalDelivered); err != nil {
		return Allocation{}, fmt.Errorf("allocating gas for %s: %w", gas.Region, err)
	}

	result := Allocation{
		Gas:              gas.Clone(),
		Row:              gas.Clone(),
		Shares:           make(map[string]float64),
		Allocated:        make(map[string]float64),
		TotalElectricity: electricity.Sum(SectorTotalDelivered),
		Mode:             mode,
	}

	for _, sector := range electricity.Keys() {
		if sector == SectorTotalDelivered {
			continue
		}
		share := 0.0
		if result.TotalElectricity != 0 {
			share = electricity.Values[sector] / result.TotalElectricity
		}
		allocated := share * gasForPower
		result.Shares[sector] = share
		result.Allocated[sector] = allocated

		switch mode {
		case AllocateSplit:
			result.Row.Values[sector+ElectricitySuffix] = allocated
		default:
			result.Row.Values[sector] += allocated
		}
	}

	return result, nil
}

// Direct returns the gas a sector consumed itself, before allocation
func (a Allocation) Direct(sector string) float64 {
	return a.Gas.Value(sector)
}
