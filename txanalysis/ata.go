package txanalysis

// BuildAtaAnalysis folds detected ATA lifecycle events into an
// AtaAnalysis, partitioning WSOL (wrap/unwrap infrastructure) from real
// token accounts. Returns nil when the transaction touched no token
// account lifecycle at all.
//
// NetRentImpact is computed here exactly once as recovered - spent; nothing
// else re-derives it.
func BuildAtaAnalysis(ops []AtaOperation) *AtaAnalysis {
	if len(ops) == 0 {
		return nil
	}

	analysis := &AtaAnalysis{
		DetectedOperations: ops,
	}

	for _, op := range ops {
		switch op.OperationType {
		case AtaCreation:
			analysis.TotalAtaCreations++
			analysis.TotalRentSpent += op.RentAmount
			if op.IsWSOL {
				analysis.WsolAtaCreations++
				analysis.WsolRentSpent += op.RentAmount
			} else {
				analysis.TokenAtaCreations++
				analysis.TokenRentSpent += op.RentAmount
			}
		case AtaClosure:
			analysis.TotalAtaClosures++
			analysis.TotalRentRecovered += op.RentAmount
			if op.IsWSOL {
				analysis.WsolAtaClosures++
				analysis.WsolRentRecovered += op.RentAmount
			} else {
				analysis.TokenAtaClosures++
				analysis.TokenRentRecovered += op.RentAmount
			}
		}
	}

	analysis.NetRentImpact = analysis.TotalRentRecovered - analysis.TotalRentSpent
	return analysis
}
