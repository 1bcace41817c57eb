package pnl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenerbotio/ScreenerBot-sub002/tokens"
	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

const (
	mintBONK = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
	mintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func TestToSwapPnLBuy(t *testing.T) {
	now := time.Now()
	tx := &txanalysis.Transaction{
		Signature: "sig1",
		Slot:      100,
		BlockTime: &now,
		Success:   true,
		FeeSOL:    0.005,
		Type: txanalysis.SwapSolToToken{
			TokenMint:   mintBONK,
			SolAmount:   0.1,
			TokenAmount: 1000,
			Router:      "Raydium",
		},
	}

	cache := tokens.NewCache()
	cache.Set(mintBONK, tokens.TokenInfo{Symbol: "BONK", Decimals: 5})

	info := ToSwapPnL(tx, cache, false)
	require.NotNil(t, info)

	assert.Equal(t, SwapTypeBuy, info.SwapType)
	assert.Equal(t, "BONK", info.TokenSymbol)
	assert.Equal(t, "Raydium", info.Router)
	assert.InDelta(t, 0.1, info.EffectiveSolSpent, 1e-12)
	assert.Zero(t, info.EffectiveSolReceived)
	assert.InDelta(t, 0.005, info.FeeSOL, 1e-12)
	assert.Equal(t, uint64(100), info.Slot)
	assert.Equal(t, now, info.Timestamp)
}

func TestToSwapPnLSell(t *testing.T) {
	tx := &txanalysis.Transaction{
		Success: true,
		FeeSOL:  0.005,
		Type: txanalysis.SwapTokenToSol{
			TokenMint:   mintBONK,
			TokenAmount: 1000,
			SolAmount:   0.2,
			Router:      "Jupiter",
		},
	}

	info := ToSwapPnL(tx, nil, false)
	require.NotNil(t, info)

	assert.Equal(t, SwapTypeSell, info.SwapType)
	assert.InDelta(t, 0.2, info.EffectiveSolReceived, 1e-12)
	assert.Zero(t, info.EffectiveSolSpent)
}

func TestToSwapPnLLegExclusivity(t *testing.T) {
	buy := ToSwapPnL(&txanalysis.Transaction{
		Success: true,
		Type:    txanalysis.SwapSolToToken{TokenMint: mintBONK, SolAmount: 1},
	}, nil, false)
	sell := ToSwapPnL(&txanalysis.Transaction{
		Success: true,
		Type:    txanalysis.SwapTokenToSol{TokenMint: mintBONK, SolAmount: 1},
	}, nil, false)

	require.NotNil(t, buy)
	require.NotNil(t, sell)
	assert.Zero(t, buy.EffectiveSolReceived)
	assert.Zero(t, sell.EffectiveSolSpent)
}

func TestToSwapPnLFailedSwap(t *testing.T) {
	tx := &txanalysis.Transaction{
		Success: false,
		FeeSOL:  0.005,
		Type: txanalysis.SwapSolToToken{
			TokenMint: mintBONK,
			Router:    "Raydium",
		},
	}

	info := ToSwapPnL(tx, nil, false)
	require.NotNil(t, info)

	assert.Equal(t, SwapTypeFailedBuy, info.SwapType)
	assert.Zero(t, info.EffectiveSolSpent)
	assert.Zero(t, info.EffectiveSolReceived)
	assert.InDelta(t, 0.005, info.FeeSOL, 1e-12)
}

func TestToSwapPnLNonSwapReturnsNil(t *testing.T) {
	assert.Nil(t, ToSwapPnL(nil, nil, false))
	assert.Nil(t, ToSwapPnL(&txanalysis.Transaction{Type: txanalysis.Unknown{}}, nil, false))
	assert.Nil(t, ToSwapPnL(&txanalysis.Transaction{Type: txanalysis.SolTransfer{}}, nil, false))

	// Token-to-token swaps have no SOL leg and are excluded from SOL P&L.
	assert.Nil(t, ToSwapPnL(&txanalysis.Transaction{
		Success: true,
		Type:    txanalysis.SwapTokenToToken{FromMint: mintUSDC, ToMint: mintBONK},
	}, nil, false))
}

func TestToSwapPnLRecalc(t *testing.T) {
	tx := &txanalysis.Transaction{
		Success:          true,
		FeeSOL:           0.005,
		SolBalanceChange: -0.105,
		Type: txanalysis.SwapSolToToken{
			TokenMint:   mintBONK,
			SolAmount:   99, // stale leg from an older ruleset
			TokenAmount: 1000,
		},
	}

	info := ToSwapPnL(tx, nil, true)
	require.NotNil(t, info)
	assert.InDelta(t, 0.1, info.SolAmount, 1e-9)
	assert.InDelta(t, 0.1, info.EffectiveSolSpent, 1e-9)
}

func TestToSwapPnLRecalcWithRent(t *testing.T) {
	tx := &txanalysis.Transaction{
		Success:          true,
		FeeSOL:           0.005,
		SolBalanceChange: -0.105 - txanalysis.TokenAccountRentSOL,
		AtaAnalysis: &txanalysis.AtaAnalysis{
			TotalAtaCreations: 1,
			TotalRentSpent:    txanalysis.TokenAccountRentSOL,
			NetRentImpact:     -txanalysis.TokenAccountRentSOL,
		},
		Type: txanalysis.SwapSolToToken{TokenMint: mintBONK, TokenAmount: 1000},
	}

	info := ToSwapPnL(tx, nil, true)
	require.NotNil(t, info)

	// Rent spent on the new token account is not part of the swap cost.
	assert.InDelta(t, 0.1, info.SolAmount, 1e-9)
	assert.Equal(t, 1, info.AtaCreatedCount)
	assert.InDelta(t, -txanalysis.TokenAccountRentSOL, info.AtaRents, 1e-12)
}

func TestToSwapPnLSymbolFallback(t *testing.T) {
	info := ToSwapPnL(&txanalysis.Transaction{
		Success: true,
		Type:    txanalysis.SwapSolToToken{TokenMint: mintBONK, SolAmount: 1},
	}, tokens.NewCache(), false)

	require.NotNil(t, info)
	assert.Equal(t, "DezX…", info.TokenSymbol)
}
