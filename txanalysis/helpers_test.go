package txanalysis

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

const (
	testMintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	testMintBONK = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

// mockTokenBalance builds an rpc.TokenBalance row for tests.
func mockTokenBalance(accountIndex uint16, mint string, owner string, decimals uint8, uiAmount float64) rpc.TokenBalance {
	ownerKey := solana.MustPublicKeyFromBase58(owner)
	return rpc.TokenBalance{
		AccountIndex: accountIndex,
		Mint:         solana.MustPublicKeyFromBase58(mint),
		Owner:        &ownerKey,
		UiTokenAmount: &rpc.UiTokenAmount{
			Decimals: decimals,
			UiAmount: &uiAmount,
		},
	}
}

// newTestAnalyzer wires an Analyzer from mock pieces, with quiet logging.
func newTestAnalyzer(accountKeys []solana.PublicKey, instructions []solana.CompiledInstruction, meta *rpc.TransactionMeta, wallet solana.PublicKey) *Analyzer {
	tx := &solana.Transaction{
		Signatures: []solana.Signature{{1, 2, 3}},
		Message: solana.Message{
			AccountKeys:  accountKeys,
			Instructions: instructions,
		},
	}

	a, err := NewAnalyzerFromTransaction(tx, meta, wallet)
	if err != nil {
		panic("failed to create test analyzer: " + err.Error())
	}
	a.Log.SetLevel(logrus.ErrorLevel)
	return a
}

func lamports(sol float64) uint64 {
	return uint64(sol * LamportsPerSOL)
}
