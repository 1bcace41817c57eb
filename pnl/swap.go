// Package pnl derives profit-and-loss views from classified transactions:
// per-swap records, FIFO realized P&L over a swap history, filtering and
// descriptive statistics.
package pnl

import (
	"time"

	"github.com/screenerbotio/ScreenerBot-sub002/tokens"
	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

// Swap type tags. Failed variants carry only their fee as a real loss.
const (
	SwapTypeBuy        = "Buy"
	SwapTypeSell       = "Sell"
	SwapTypeFailedBuy  = "Failed Buy"
	SwapTypeFailedSell = "Failed Sell"
)

// SwapPnLInfo is a read-only reporting view of one swap. It is not
// persisted independently: it is always reconstructible from the
// Transaction record plus token metadata.
type SwapPnLInfo struct {
	TokenMint   string    `json:"token_mint"`
	TokenSymbol string    `json:"token_symbol"`
	SwapType    string    `json:"swap_type"`
	SolAmount   float64   `json:"sol_amount"`
	TokenAmount float64   `json:"token_amount"`
	FeeSOL      float64   `json:"fee_sol"`
	Router      string    `json:"router"`
	Timestamp   time.Time `json:"timestamp"`
	Slot        uint64    `json:"slot"`

	// Effective amounts exclude ATA rent flow so aggregate P&L is not
	// polluted by one-time account-lifecycle costs. A swap is economically
	// one-directional: a Buy has zero received, a Sell zero spent.
	EffectiveSolSpent    float64 `json:"effective_sol_spent"`
	EffectiveSolReceived float64 `json:"effective_sol_received"`

	AtaCreatedCount int     `json:"ata_created_count"`
	AtaClosedCount  int     `json:"ata_closed_count"`
	AtaRents        float64 `json:"ata_rents"`
}

// ToSwapPnL converts a classified transaction into a SwapPnLInfo, or nil
// when the transaction is not SOL-denominated swap-family. With recalc set,
// the SOL leg is recomputed from the raw balance change instead of trusting
// the classified legs (useful for records produced by older rulesets).
//
// The full transaction fee is always attributed to the swap, success or
// not: fees are charged regardless of outcome on this chain.
func ToSwapPnL(tx *txanalysis.Transaction, lookup tokens.Lookup, recalc bool) *SwapPnLInfo {
	if tx == nil {
		return nil
	}

	var (
		mint        string
		router      string
		solAmount   float64
		tokenAmount float64
		buy         bool
	)

	switch t := tx.Type.(type) {
	case txanalysis.SwapSolToToken:
		mint, router = t.TokenMint, t.Router
		solAmount, tokenAmount = t.SolAmount, t.TokenAmount
		buy = true
	case txanalysis.SwapTokenToSol:
		mint, router = t.TokenMint, t.Router
		solAmount, tokenAmount = t.SolAmount, t.TokenAmount
		buy = false
	default:
		// Token-to-token swaps have no SOL leg to report against.
		return nil
	}

	netRent := 0.0
	info := &SwapPnLInfo{
		TokenMint: mint,
		Router:    router,
		FeeSOL:    tx.FeeSOL,
		Slot:      tx.Slot,
	}
	if tx.BlockTime != nil {
		info.Timestamp = *tx.BlockTime
	}
	if tx.AtaAnalysis != nil {
		info.AtaCreatedCount = tx.AtaAnalysis.TotalAtaCreations
		info.AtaClosedCount = tx.AtaAnalysis.TotalAtaClosures
		info.AtaRents = tx.AtaAnalysis.NetRentImpact
		netRent = tx.AtaAnalysis.NetRentImpact
	}

	info.TokenSymbol = tokens.ResolveOrDefault(lookup, mint, nil).Symbol

	if recalc {
		if buy {
			solAmount = max0(-tx.SolBalanceChange - tx.FeeSOL + netRent)
		} else {
			solAmount = max0(tx.SolBalanceChange + tx.FeeSOL - netRent)
		}
	}

	info.SolAmount = solAmount
	info.TokenAmount = tokenAmount

	if !tx.Success {
		// No transfer occurred: partial amounts are economically
		// meaningless, only the fee is a real loss.
		if buy {
			info.SwapType = SwapTypeFailedBuy
		} else {
			info.SwapType = SwapTypeFailedSell
		}
		info.EffectiveSolSpent = 0
		info.EffectiveSolReceived = 0
		return info
	}

	if buy {
		info.SwapType = SwapTypeBuy
		info.EffectiveSolSpent = solAmount
	} else {
		info.SwapType = SwapTypeSell
		info.EffectiveSolReceived = solAmount
	}
	return info
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
