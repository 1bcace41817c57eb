package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"

	"github.com/screenerbotio/ScreenerBot-sub002/pnl"
	"github.com/screenerbotio/ScreenerBot-sub002/storage"
	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

// Classifies a batch of signatures for one wallet and prints the
// per-type breakdown.
//
// Usage: go run ./example/classify <wallet> <signature> [signature...]
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <wallet> <signature> [signature...]", os.Args[0])
	}

	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		rpcURL = rpc.MainNetBeta.RPC
	}
	rpcClient := rpc.New(rpcURL)
	wallet := solana.MustPublicKeyFromBase58(os.Args[1])

	store := storage.NewMemory()
	var txs []*txanalysis.Transaction

	var maxTxVersion uint64 = 0
	for _, sigStr := range os.Args[2:] {
		sig := solana.MustSignatureFromBase58(sigStr)
		res, err := rpcClient.GetTransaction(
			context.TODO(),
			sig,
			&rpc.GetTransactionOpts{
				Commitment:                     rpc.CommitmentConfirmed,
				MaxSupportedTransactionVersion: &maxTxVersion,
			},
		)
		if err != nil {
			log.Printf("skipping %s: %s", sigStr, err)
			continue
		}

		analyzer, err := txanalysis.NewAnalyzer(res, wallet)
		if err != nil {
			log.Printf("skipping %s: %s", sigStr, err)
			continue
		}

		tx := analyzer.Classify()
		if err := store.Persist(tx.Signature, tx); err != nil {
			log.Printf("persist %s: %s", tx.Signature, err)
		}
		txs = append(txs, tx)
		fmt.Printf("%s  %s\n", tx.Signature, tx.Type.Label())
	}

	fmt.Println("\nby type:")
	for label, count := range pnl.CountByType(txs) {
		fmt.Printf("  %-20s %d\n", label, count)
	}
}
