package txanalysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/gagliardetto/solana-go/rpc"
)

// SolBalanceDelta returns the signed SOL delta for one account position.
// Out-of-range or missing balance arrays yield 0; malformed input is
// common and never a reason to panic.
func SolBalanceDelta(pre, post []uint64, accountIndex int) float64 {
	if accountIndex < 0 || accountIndex >= len(pre) || accountIndex >= len(post) {
		return 0
	}
	return (float64(post[accountIndex]) - float64(pre[accountIndex])) / LamportsPerSOL
}

// TokenBalanceDeltas computes the signed UI-decimal delta for every
// (mint, owner) pair appearing in either snapshot, treating a missing side
// as zero. Deltas below DustThreshold are dropped. The result is sorted by
// (mint, owner) so classification stays deterministic.
func TokenBalanceDeltas(pre, post []rpc.TokenBalance) []TokenBalanceChange {
	type key struct{ mint, owner string }

	amounts := func(balances []rpc.TokenBalance) map[key]float64 {
		m := make(map[key]float64)
		for _, b := range balances {
			if b.UiTokenAmount == nil {
				continue
			}
			k := key{mint: b.Mint.String()}
			if b.Owner != nil {
				k.owner = b.Owner.String()
			}
			m[k] += uiAmount(b.UiTokenAmount)
		}
		return m
	}

	preAmounts := amounts(pre)
	postAmounts := amounts(post)

	seen := make(map[key]struct{})
	for k := range preAmounts {
		seen[k] = struct{}{}
	}
	for k := range postAmounts {
		seen[k] = struct{}{}
	}

	var changes []TokenBalanceChange
	for k := range seen {
		delta := postAmounts[k] - preAmounts[k]
		if math.Abs(delta) < DustThreshold {
			continue
		}
		changes = append(changes, TokenBalanceChange{
			Mint:  k.mint,
			Owner: k.owner,
			Delta: delta,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Mint != changes[j].Mint {
			return changes[i].Mint < changes[j].Mint
		}
		return changes[i].Owner < changes[j].Owner
	})
	return changes
}

// uiAmount converts a raw token amount to its UI-decimal value, preferring
// the RPC-provided UiAmount and falling back to the base-unit string.
func uiAmount(amt *rpc.UiTokenAmount) float64 {
	if amt.UiAmount != nil {
		return *amt.UiAmount
	}
	raw, err := strconv.ParseFloat(amt.Amount, 64)
	if err != nil {
		return 0
	}
	return raw / math.Pow10(int(amt.Decimals))
}

// baseToUI converts base units to UI-decimal units given mint decimals.
func baseToUI(amount uint64, decimals uint8) float64 {
	return float64(amount) / math.Pow10(int(decimals))
}
