package txanalysis

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
)

func TestSolBalanceDelta(t *testing.T) {
	pre := []uint64{10_000_000_000, 5_000_000_000}
	post := []uint64{9_895_000_000, 5_000_000_000}

	assert.InDelta(t, -0.105, SolBalanceDelta(pre, post, 0), 1e-12)
	assert.Equal(t, 0.0, SolBalanceDelta(pre, post, 1))

	// Malformed input degrades to zero, never panics.
	assert.Equal(t, 0.0, SolBalanceDelta(pre, post, -1))
	assert.Equal(t, 0.0, SolBalanceDelta(pre, post, 5))
	assert.Equal(t, 0.0, SolBalanceDelta(nil, nil, 0))
}

func TestTokenBalanceDeltas(t *testing.T) {
	owner1 := solana.NewWallet().PublicKey().String()
	owner2 := solana.NewWallet().PublicKey().String()

	pre := []rpc.TokenBalance{
		mockTokenBalance(1, testMintUSDC, owner1, 6, 20),
		mockTokenBalance(2, testMintUSDC, owner2, 6, 50),
	}
	post := []rpc.TokenBalance{
		mockTokenBalance(1, testMintUSDC, owner1, 6, 70),
		mockTokenBalance(3, testMintBONK, owner1, 5, 1000),
	}

	changes := TokenBalanceDeltas(pre, post)
	assert.Len(t, changes, 3)

	byKey := make(map[string]float64)
	for _, c := range changes {
		byKey[c.Mint+"/"+c.Owner] = c.Delta
	}
	assert.InDelta(t, 50, byKey[testMintUSDC+"/"+owner1], 1e-9)
	assert.InDelta(t, -50, byKey[testMintUSDC+"/"+owner2], 1e-9)
	assert.InDelta(t, 1000, byKey[testMintBONK+"/"+owner1], 1e-9)
}

func TestTokenBalanceDeltasDustFiltered(t *testing.T) {
	owner := solana.NewWallet().PublicKey().String()

	pre := []rpc.TokenBalance{mockTokenBalance(1, testMintUSDC, owner, 6, 10)}
	post := []rpc.TokenBalance{mockTokenBalance(1, testMintUSDC, owner, 6, 10.0000005)}

	assert.Empty(t, TokenBalanceDeltas(pre, post))
}

func TestTokenBalanceDeltasMissingArrays(t *testing.T) {
	assert.Empty(t, TokenBalanceDeltas(nil, nil))

	owner := solana.NewWallet().PublicKey().String()
	post := []rpc.TokenBalance{mockTokenBalance(1, testMintBONK, owner, 6, 42)}
	changes := TokenBalanceDeltas(nil, post)
	assert.Len(t, changes, 1)
	assert.InDelta(t, 42, changes[0].Delta, 1e-9)
}

func TestTokenBalanceDeltasDeterministicOrder(t *testing.T) {
	owner1 := solana.NewWallet().PublicKey().String()
	owner2 := solana.NewWallet().PublicKey().String()

	post := []rpc.TokenBalance{
		mockTokenBalance(1, testMintUSDC, owner1, 6, 1),
		mockTokenBalance(2, testMintBONK, owner2, 5, 2),
		mockTokenBalance(3, testMintBONK, owner1, 5, 3),
	}

	first := TokenBalanceDeltas(nil, post)
	second := TokenBalanceDeltas(nil, post)
	assert.Equal(t, first, second)
}
