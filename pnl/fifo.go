package pnl

import (
	"sort"

	"github.com/shopspring/decimal"
)

// buyLot is one FIFO inventory lot: a buy whose cost basis is consumed
// front-to-back by subsequent sells of the same mint.
type buyLot struct {
	qty       decimal.Decimal
	remaining decimal.Decimal
	costSol   decimal.Decimal
	feeSol    decimal.Decimal
}

// RealizedPnLReport is the result of a FIFO cost-basis pass over a swap
// history. OpenInventoryCost is the cost basis of unsold lots, reported
// for reconciliation only; it is not part of realized P&L.
type RealizedPnLReport struct {
	RealizedSpent     float64 `json:"realized_spent"`
	RealizedReceived  float64 `json:"realized_received"`
	RealizedFees      float64 `json:"realized_fees"`
	RealizedNet       float64 `json:"realized_net"`
	OpenInventoryCost float64 `json:"open_inventory_cost"`
}

// ComputeFIFORealizedPnL matches sells against buys per mint in
// chronological order and reports the P&L of the sold portion only.
//
// Lot math accumulates in fixed-point decimals so the result is exact and
// invariant to recomputation over the same swap set. Slot is the primary
// ordering key (monotonic on-chain); timestamp only breaks ties. When a
// sell exceeds the available lots (missing cost basis), the unmatched
// portion contributes proceeds but no cost: a documented limitation, not
// an error.
func ComputeFIFORealizedPnL(swaps []SwapPnLInfo) RealizedPnLReport {
	ordered := make([]SwapPnLInfo, len(swaps))
	copy(ordered, swaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Slot != ordered[j].Slot {
			return ordered[i].Slot < ordered[j].Slot
		}
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	lots := make(map[string][]buyLot)
	var realizedSpent, realizedReceived, realizedFees, openInventory decimal.Decimal

	for _, swap := range ordered {
		switch swap.SwapType {
		case SwapTypeBuy:
			if swap.TokenAmount <= 0 || swap.EffectiveSolSpent <= 0 {
				continue
			}
			qty := decimal.NewFromFloat(swap.TokenAmount)
			lots[swap.TokenMint] = append(lots[swap.TokenMint], buyLot{
				qty:       qty,
				remaining: qty,
				costSol:   decimal.NewFromFloat(swap.EffectiveSolSpent),
				feeSol:    decimal.NewFromFloat(swap.FeeSOL),
			})

		case SwapTypeSell:
			if swap.TokenAmount <= 0 || swap.EffectiveSolReceived <= 0 {
				continue
			}
			realizedReceived = realizedReceived.Add(decimal.NewFromFloat(swap.EffectiveSolReceived))
			realizedFees = realizedFees.Add(decimal.NewFromFloat(swap.FeeSOL))

			sellQty := decimal.NewFromFloat(swap.TokenAmount)
			queue := lots[swap.TokenMint]
			for len(queue) > 0 && sellQty.IsPositive() {
				lot := &queue[0]
				matched := decimal.Min(lot.remaining, sellQty)

				realizedSpent = realizedSpent.Add(safeRatio(lot.costSol, lot.qty).Mul(matched))
				realizedFees = realizedFees.Add(safeRatio(lot.feeSol, lot.qty).Mul(matched))

				lot.remaining = lot.remaining.Sub(matched)
				sellQty = sellQty.Sub(matched)
				if !lot.remaining.IsPositive() {
					queue = queue[1:]
				}
			}
			lots[swap.TokenMint] = queue
		}
	}

	for _, queue := range lots {
		for _, lot := range queue {
			openInventory = openInventory.Add(safeRatio(lot.costSol, lot.qty).Mul(lot.remaining))
		}
	}

	realizedNet := realizedReceived.Sub(realizedSpent).Sub(realizedFees)

	return RealizedPnLReport{
		RealizedSpent:     realizedSpent.InexactFloat64(),
		RealizedReceived:  realizedReceived.InexactFloat64(),
		RealizedFees:      realizedFees.InexactFloat64(),
		RealizedNet:       realizedNet.InexactFloat64(),
		OpenInventoryCost: openInventory.InexactFloat64(),
	}
}

// safeRatio divides with a zero sentinel instead of letting a zero
// denominator propagate into reports.
func safeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
