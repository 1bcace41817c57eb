package txanalysis

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Classify produces the canonical Transaction record for the analyzed
// wallet. It never fails: the worst possible outcome is Type == Unknown.
func (a *Analyzer) Classify() *Transaction {
	tx := &Transaction{
		Signature: a.signature(),
		Slot:      a.slot,
		BlockTime: a.blockTime,
		Success:   true,
		Raw:       a.raw,
	}

	if a.txMeta != nil {
		if a.txMeta.Err != nil {
			tx.Success = false
			tx.ErrorMessage = fmt.Sprintf("%v", a.txMeta.Err)
		}
		tx.FeeSOL = float64(a.txMeta.Fee) / LamportsPerSOL
		tx.SolBalanceChange = SolBalanceDelta(a.txMeta.PreBalances, a.txMeta.PostBalances, a.walletAccountIndex())
		tx.TokenBalanceChanges = TokenBalanceDeltas(a.txMeta.PreTokenBalances, a.txMeta.PostTokenBalances)
	}

	evidence := a.GatherEvidence()

	tx.Instructions = a.instructionSummaries()
	for _, t := range evidence.Transfers {
		tx.TokenTransfers = append(tx.TokenTransfers, TokenTransferRecord{
			Mint:   t.Mint,
			From:   t.From,
			To:     t.To,
			Amount: t.Amount,
		})
	}
	tx.AtaAnalysis = BuildAtaAnalysis(evidence.AtaEvents)

	tx.Type = a.classify(tx, evidence)
	tx.Direction = a.direction(tx)
	return tx
}

// walletTokenDeltas filters the per-(mint, owner) deltas down to the
// analyzed wallet's non-WSOL positions. WSOL deltas are the native leg of
// swaps, not token positions.
func (a *Analyzer) walletTokenDeltas(changes []TokenBalanceChange) []TokenBalanceChange {
	wallet := a.wallet.String()
	var deltas []TokenBalanceChange
	for _, c := range changes {
		if c.Owner != wallet || c.Mint == WSOL_MINT.String() {
			continue
		}
		deltas = append(deltas, c)
	}
	return deltas
}

// classify is a priority-ordered rule evaluator: first match wins. All the
// evidence it needs is in the record fields and the matcher output; no
// out-of-band state.
func (a *Analyzer) classify(tx *Transaction, ev *Evidence) TransactionType {
	if !tx.Success {
		return a.classifyFailed(tx, ev)
	}

	netRent := 0.0
	if tx.AtaAnalysis != nil {
		netRent = tx.AtaAnalysis.NetRentImpact
	}

	deltas := a.walletTokenDeltas(tx.TokenBalanceChanges)

	// Swap with a native leg: one dominant token delta and SOL moving
	// beyond fee and rent.
	if len(deltas) >= 1 {
		primary := deltas[0]
		for _, d := range deltas[1:] {
			if math.Abs(d.Delta) > math.Abs(primary.Delta) {
				primary = d
			}
		}
		if len(deltas) > 1 {
			a.Log.Debugf("multiple token deltas (%d), picking largest |delta| mint %s", len(deltas), primary.Mint)
		}

		if primary.Delta > 0 {
			solSpent := -tx.SolBalanceChange - tx.FeeSOL + netRent
			if amt, ok := a.eventSolLeg(ev, primary.Mint, true); ok {
				solSpent = amt
			}
			if solSpent > DustThreshold && (ev.Router != "" || len(deltas) == 1) {
				return SwapSolToToken{
					TokenMint:   primary.Mint,
					SolAmount:   solSpent,
					TokenAmount: primary.Delta,
					Router:      routerOrUnknown(ev.Router),
				}
			}
		} else {
			solReceived := tx.SolBalanceChange + tx.FeeSOL - netRent
			if amt, ok := a.eventSolLeg(ev, primary.Mint, false); ok {
				solReceived = amt
			}
			if solReceived > DustThreshold && (ev.Router != "" || len(deltas) == 1) {
				return SwapTokenToSol{
					TokenMint:   primary.Mint,
					TokenAmount: -primary.Delta,
					SolAmount:   solReceived,
					Router:      routerOrUnknown(ev.Router),
				}
			}
		}
	}

	// Token-to-token swap: two distinct mints moving in opposite directions
	// with the SOL change fully attributable to fee + rent.
	if len(deltas) == 2 {
		solResidual := tx.SolBalanceChange + tx.FeeSOL - netRent
		from, to := deltas[0], deltas[1]
		if from.Delta > 0 && to.Delta < 0 {
			from, to = to, from
		}
		if from.Delta < 0 && to.Delta > 0 && math.Abs(solResidual) < 10*TokenAccountRentSOL {
			return SwapTokenToToken{
				FromMint:   from.Mint,
				ToMint:     to.Mint,
				FromAmount: -from.Delta,
				ToAmount:   to.Delta,
				Router:     routerOrUnknown(ev.Router),
			}
		}
	}

	// Plain token transfer, no swap pattern. A transfer involving the
	// wallet wins; failing that, a lone transfer between third parties
	// (the wallet as fee payer or delegate authority) still classifies.
	wallet := a.wallet.String()
	var nonNative []TransferEvent
	for _, t := range ev.Transfers {
		if t.IsNative {
			continue
		}
		nonNative = append(nonNative, t)
		if t.From == wallet || t.To == wallet {
			return TokenTransfer{
				Mint:   t.Mint,
				From:   t.From,
				To:     t.To,
				Amount: t.Amount,
			}
		}
	}
	if len(nonNative) == 1 {
		t := nonNative[0]
		return TokenTransfer{
			Mint:   t.Mint,
			From:   t.From,
			To:     t.To,
			Amount: t.Amount,
		}
	}

	// Pure SOL transfer.
	if len(deltas) == 0 {
		if st, ok := a.findSystemTransfer(); ok {
			return st
		}
	}

	// Standalone ATA closure recovering rent.
	if tx.AtaAnalysis != nil && tx.AtaAnalysis.TotalAtaClosures > 0 &&
		len(deltas) == 0 && tx.SolBalanceChange > 0 {
		mint := WSOL_MINT.String()
		for _, op := range tx.AtaAnalysis.DetectedOperations {
			if op.OperationType == AtaClosure && !op.IsWSOL {
				mint = op.TokenMint
				break
			}
		}
		return AtaClose{
			TokenMint:    mint,
			RecoveredSol: tx.AtaAnalysis.TotalRentRecovered,
		}
	}

	// Known non-swap program interaction.
	for _, instr := range a.txInfo.Message.Instructions {
		if progID, ok := a.programID(instr); ok {
			if desc, known := knownOtherPrograms[progID]; known {
				return Other{
					Description: desc,
					Details:     progID.String(),
				}
			}
		}
	}

	return Unknown{}
}

// classifyFailed interprets a failed transaction. Balances never moved, so
// the only evidence is instructions and decoded router events. A failed
// swap attempt is still a swap for fee-accounting purposes.
func (a *Analyzer) classifyFailed(tx *Transaction, ev *Evidence) TransactionType {
	if len(ev.SwapEvents) > 0 {
		e := ev.SwapEvents[0]
		router := ev.Router
		if router == "" {
			router = e.Router
		}
		if e.InputMint == WSOL_MINT.String() {
			return SwapSolToToken{
				TokenMint:   e.OutputMint,
				SolAmount:   e.InputAmount,
				TokenAmount: e.OutputAmount,
				Router:      routerOrUnknown(router),
			}
		}
		return SwapTokenToSol{
			TokenMint:   e.InputMint,
			TokenAmount: e.InputAmount,
			SolAmount:   e.OutputAmount,
			Router:      routerOrUnknown(router),
		}
	}

	if ev.Router != "" {
		// Router invoked but no decodable event: infer the attempted
		// direction from transfer evidence, defaulting to a buy attempt.
		wallet := a.wallet.String()
		for _, t := range ev.Transfers {
			if !t.IsNative && t.From == wallet {
				return SwapTokenToSol{
					TokenMint:   t.Mint,
					TokenAmount: t.Amount,
					Router:      ev.Router,
				}
			}
		}
		var mint string
		for _, t := range ev.Transfers {
			if !t.IsNative && t.To == wallet {
				mint = t.Mint
				break
			}
		}
		return SwapSolToToken{
			TokenMint: mint,
			Router:    ev.Router,
		}
	}

	return Unknown{}
}

// eventSolLeg finds a decoded router event whose token leg matches the
// primary mint and returns its SOL leg. Event amounts are exact where the
// balance residual conflates swap, fee and rent flows.
func (a *Analyzer) eventSolLeg(ev *Evidence, mint string, buy bool) (float64, bool) {
	wsol := WSOL_MINT.String()
	for _, e := range ev.SwapEvents {
		if buy && e.InputMint == wsol && e.OutputMint == mint {
			return e.InputAmount, true
		}
		if !buy && e.OutputMint == wsol && e.InputMint == mint {
			return e.OutputAmount, true
		}
	}
	return 0, false
}

// findSystemTransfer locates a top-level system program transfer and
// extracts its parties and lamport amount.
func (a *Analyzer) findSystemTransfer() (SolTransfer, bool) {
	for _, instr := range a.txInfo.Message.Instructions {
		if !a.isSystemTransfer(instr) {
			continue
		}
		if int(instr.Accounts[0]) >= len(a.allAccountKeys) || int(instr.Accounts[1]) >= len(a.allAccountKeys) {
			continue
		}
		lamports := binary.LittleEndian.Uint64(instr.Data[4:12])
		return SolTransfer{
			From:   a.allAccountKeys[instr.Accounts[0]].String(),
			To:     a.allAccountKeys[instr.Accounts[1]].String(),
			Amount: float64(lamports) / LamportsPerSOL,
		}, true
	}
	return SolTransfer{}, false
}

// direction derives the net economic direction relative to the wallet from
// the classified type; swaps exchange value and are internal.
func (a *Analyzer) direction(tx *Transaction) Direction {
	wallet := a.wallet.String()
	switch t := tx.Type.(type) {
	case SwapSolToToken, SwapTokenToSol, SwapTokenToToken:
		return DirectionInternal
	case SolTransfer:
		if t.From == wallet {
			return DirectionOutgoing
		}
		if t.To == wallet {
			return DirectionIncoming
		}
		return DirectionInternal
	case TokenTransfer:
		if t.From == wallet {
			return DirectionOutgoing
		}
		if t.To == wallet {
			return DirectionIncoming
		}
		return DirectionInternal
	case AtaClose:
		return DirectionIncoming
	default:
		if tx.SolBalanceChange > DustThreshold {
			return DirectionIncoming
		}
		if tx.SolBalanceChange < -DustThreshold {
			return DirectionOutgoing
		}
		return DirectionInternal
	}
}

func routerOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}
