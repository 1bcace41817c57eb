package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"

	"github.com/screenerbotio/ScreenerBot-sub002/pnl"
	"github.com/screenerbotio/ScreenerBot-sub002/tokens"
	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

// Builds a FIFO realized-PnL report over a batch of swap transactions.
//
// Usage: go run ./example/pnlreport <wallet> <signature> [signature...]
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

	cache := tokens.NewCache()
	var swaps []pnl.SwapPnLInfo

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

		if info := pnl.ToSwapPnL(analyzer.Classify(), cache, false); info != nil {
			swaps = append(swaps, *info)
		}
	}

	report := pnl.ComputeFIFORealizedPnL(swaps)
	stats := pnl.ComputeStats(swaps)

	reportJSON, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(reportJSON))
	statsJSON, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(statsJSON))
}
