package pnl

import "github.com/screenerbotio/ScreenerBot-sub002/txanalysis"

// GroupStats accumulates counts and SOL amounts for one grouping bucket.
type GroupStats struct {
	Count       int     `json:"count"`
	SolSpent    float64 `json:"sol_spent"`
	SolReceived float64 `json:"sol_received"`
	FeeSOL      float64 `json:"fee_sol"`
}

// AggregateStats is the batch-level descriptive report over a swap
// history: simple reductions, no ordering sensitivity.
type AggregateStats struct {
	TotalSwaps   int     `json:"total_swaps"`
	FailedSwaps  int     `json:"failed_swaps"`
	TotalFeeSOL  float64 `json:"total_fee_sol"`
	FailedFeeSOL float64 `json:"failed_fee_sol"`
	NetRentSOL   float64 `json:"net_rent_sol"`

	ByToken    map[string]*GroupStats `json:"by_token"`
	ByRouter   map[string]*GroupStats `json:"by_router"`
	BySwapType map[string]*GroupStats `json:"by_swap_type"`
}

// ComputeStats groups a swap history by token symbol, router and swap
// type.
func ComputeStats(swaps []SwapPnLInfo) *AggregateStats {
	stats := &AggregateStats{
		ByToken:    make(map[string]*GroupStats),
		ByRouter:   make(map[string]*GroupStats),
		BySwapType: make(map[string]*GroupStats),
	}

	bump := func(m map[string]*GroupStats, key string, swap SwapPnLInfo) {
		g, ok := m[key]
		if !ok {
			g = &GroupStats{}
			m[key] = g
		}
		g.Count++
		g.SolSpent += swap.EffectiveSolSpent
		g.SolReceived += swap.EffectiveSolReceived
		g.FeeSOL += swap.FeeSOL
	}

	for _, swap := range swaps {
		stats.TotalSwaps++
		stats.TotalFeeSOL += swap.FeeSOL
		stats.NetRentSOL += swap.AtaRents
		if swap.SwapType == SwapTypeFailedBuy || swap.SwapType == SwapTypeFailedSell {
			stats.FailedSwaps++
			stats.FailedFeeSOL += swap.FeeSOL
		}

		bump(stats.ByToken, swap.TokenSymbol, swap)
		bump(stats.ByRouter, swap.Router, swap)
		bump(stats.BySwapType, swap.SwapType, swap)
	}
	return stats
}

// CountByType tallies classified transactions by their type label.
// Unknown is a first-class bucket here, not an error category.
func CountByType(txs []*txanalysis.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, tx := range txs {
		if tx == nil || tx.Type == nil {
			continue
		}
		counts[tx.Type.Label()]++
	}
	return counts
}
