package pnl

import "time"

// FilterSpec is a conjunctive predicate over a swap history. Nil bounds
// are unconstrained; all bounds are inclusive.
type FilterSpec struct {
	From   *time.Time
	To     *time.Time
	MinSol *float64
	MaxSol *float64
	Mint   string
}

// FilterSwaps returns the swaps matching every constraint in spec,
// preserving input order.
func FilterSwaps(swaps []SwapPnLInfo, spec FilterSpec) []SwapPnLInfo {
	var out []SwapPnLInfo
	for _, swap := range swaps {
		if spec.From != nil && swap.Timestamp.Before(*spec.From) {
			continue
		}
		if spec.To != nil && swap.Timestamp.After(*spec.To) {
			continue
		}
		if spec.MinSol != nil && swap.SolAmount < *spec.MinSol {
			continue
		}
		if spec.MaxSol != nil && swap.SolAmount > *spec.MaxSol {
			continue
		}
		if spec.Mint != "" && swap.TokenMint != spec.Mint {
			continue
		}
		out = append(out, swap)
	}
	return out
}
