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
	"github.com/screenerbotio/ScreenerBot-sub002/txanalysis"
)

// Debug tool: fetch one confirmed transaction, classify it for a wallet,
// and print the record plus its PnL view.
//
// Usage: go run . <signature> <wallet>
// Env:   RPC_URL (optional, defaults to public mainnet)
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <signature> <wallet>", os.Args[0])
	}

	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		rpcURL = rpc.MainNetBeta.RPC
	}
	rpcClient := rpc.New(rpcURL)

	txSig := solana.MustSignatureFromBase58(os.Args[1])
	wallet := solana.MustPublicKeyFromBase58(os.Args[2])

	var maxTxVersion uint64 = 0
	res, err := rpcClient.GetTransaction(
		context.TODO(),
		txSig,
		&rpc.GetTransactionOpts{
			Commitment:                     rpc.CommitmentConfirmed,
			MaxSupportedTransactionVersion: &maxTxVersion,
		},
	)
	if err != nil {
		log.Fatalf("error getting tx: %s", err)
	}

	analyzer, err := txanalysis.NewAnalyzer(res, wallet)
	if err != nil {
		log.Fatalf("error creating analyzer: %s", err)
	}

	tx := analyzer.Classify()

	fmt.Printf("type: %s\n", tx.Type.Label())
	marshalled, _ := json.MarshalIndent(tx, "", "  ")
	fmt.Println(string(marshalled))
	details, _ := json.MarshalIndent(tx.Type, "", "  ")
	fmt.Println(string(details))

	if info := pnl.ToSwapPnL(tx, nil, false); info != nil {
		swapJSON, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(swapJSON))
	}
}
