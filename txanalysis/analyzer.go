package txanalysis

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
)

// tokenAccountInfo resolves a token account address to its mint and owner.
type tokenAccountInfo struct {
	Mint     string
	Owner    string
	Decimals uint8
}

// Analyzer classifies one confirmed transaction from the point of view of a
// single wallet. It is a pure computation over the already-fetched payload:
// no I/O, no shared state, safe to run many instances concurrently.
type Analyzer struct {
	txMeta         *rpc.TransactionMeta
	txInfo         *solana.Transaction
	wallet         solana.PublicKey
	allAccountKeys solana.PublicKeySlice

	slot      uint64
	blockTime *time.Time
	raw       interface{}

	tokenAccounts map[string]tokenAccountInfo // token account address -> mint/owner
	splDecimals   map[string]uint8            // mint -> decimals

	Log *logrus.Logger
}

// NewAnalyzer builds an Analyzer from a raw RPC transaction result.
func NewAnalyzer(res *rpc.GetTransactionResult, wallet solana.PublicKey) (*Analyzer, error) {
	txInfo, err := res.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	a, err := NewAnalyzerFromTransaction(txInfo, res.Meta, wallet)
	if err != nil {
		return nil, err
	}

	a.slot = res.Slot
	if res.BlockTime != nil {
		t := res.BlockTime.Time()
		a.blockTime = &t
	}
	a.raw = res
	return a, nil
}

func NewAnalyzerFromTransaction(tx *solana.Transaction, txMeta *rpc.TransactionMeta, wallet solana.PublicKey) (*Analyzer, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is nil")
	}

	allAccountKeys := append(solana.PublicKeySlice{}, tx.Message.AccountKeys...)
	if txMeta != nil {
		allAccountKeys = append(allAccountKeys, txMeta.LoadedAddresses.Writable...)
		allAccountKeys = append(allAccountKeys, txMeta.LoadedAddresses.ReadOnly...)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	a := &Analyzer{
		txMeta:         txMeta,
		txInfo:         tx,
		wallet:         wallet,
		allAccountKeys: allAccountKeys,
		Log:            log,
	}

	a.extractTokenAccounts()
	a.extractSPLDecimals()

	return a, nil
}

// WithChainMeta attaches slot/block-time metadata when the Analyzer was
// built from a bare transaction instead of a full RPC result.
func (a *Analyzer) WithChainMeta(slot uint64, blockTime *time.Time) *Analyzer {
	a.slot = slot
	a.blockTime = blockTime
	return a
}

// extractTokenAccounts builds the token-account -> mint/owner map from pre
// and post token balances, and marks token accounts that appear only in
// transfer instructions. Accounts with no balance row are almost always
// ephemeral WSOL accounts created and closed within the transaction.
func (a *Analyzer) extractTokenAccounts() {
	a.tokenAccounts = make(map[string]tokenAccountInfo)

	if a.txMeta == nil {
		return
	}

	record := func(balances []rpc.TokenBalance) {
		for _, b := range balances {
			if b.Mint.IsZero() || int(b.AccountIndex) >= len(a.allAccountKeys) {
				continue
			}
			info := tokenAccountInfo{Mint: b.Mint.String()}
			if b.Owner != nil {
				info.Owner = b.Owner.String()
			}
			if b.UiTokenAmount != nil {
				info.Decimals = b.UiTokenAmount.Decimals
			}
			a.tokenAccounts[a.allAccountKeys[b.AccountIndex].String()] = info
		}
	}
	record(a.txMeta.PreTokenBalances)
	record(a.txMeta.PostTokenBalances)

	markTransferAccounts := func(instr solana.CompiledInstruction) {
		if int(instr.ProgramIDIndex) >= len(a.allAccountKeys) {
			return
		}
		progID := a.allAccountKeys[instr.ProgramIDIndex]
		if !progID.Equals(solana.TokenProgramID) && !progID.Equals(solana.Token2022ProgramID) {
			return
		}
		if len(instr.Data) == 0 {
			return
		}
		// transfer: source, destination, authority
		// transferChecked: source, mint, destination, authority
		var tokenAccountIdxs []uint16
		switch instr.Data[0] {
		case splTransferTag:
			if len(instr.Accounts) < 3 {
				return
			}
			tokenAccountIdxs = []uint16{instr.Accounts[0], instr.Accounts[1]}
		case splTransferCheckedTag:
			if len(instr.Accounts) < 4 {
				return
			}
			tokenAccountIdxs = []uint16{instr.Accounts[0], instr.Accounts[2]}
		default:
			return
		}
		for _, idx := range tokenAccountIdxs {
			if int(idx) >= len(a.allAccountKeys) {
				continue
			}
			addr := a.allAccountKeys[idx].String()
			if _, exists := a.tokenAccounts[addr]; !exists {
				a.tokenAccounts[addr] = tokenAccountInfo{
					Mint:     WSOL_MINT.String(),
					Decimals: 9,
				}
			}
		}
	}

	for _, instr := range a.txInfo.Message.Instructions {
		markTransferAccounts(instr)
	}
	for _, innerSet := range a.txMeta.InnerInstructions {
		for _, instr := range innerSet.Instructions {
			markTransferAccounts(instr)
		}
	}
}

// extractSPLDecimals populates the mint -> decimals map from pre and post
// token balances. Decimals for a mint are constant, overwrites are fine.
func (a *Analyzer) extractSPLDecimals() {
	a.splDecimals = make(map[string]uint8)

	if a.txMeta == nil {
		return
	}

	for _, b := range a.txMeta.PreTokenBalances {
		if b.UiTokenAmount != nil {
			a.splDecimals[b.Mint.String()] = b.UiTokenAmount.Decimals
		}
	}
	for _, b := range a.txMeta.PostTokenBalances {
		if b.UiTokenAmount != nil {
			a.splDecimals[b.Mint.String()] = b.UiTokenAmount.Decimals
		}
	}
	a.splDecimals[WSOL_MINT.String()] = 9
}

// decimalsForMint returns the on-chain decimals for a mint, defaulting to
// DefaultTokenDecimals with a warning when the mint was never observed.
func (a *Analyzer) decimalsForMint(mint string) uint8 {
	if dec, ok := a.splDecimals[mint]; ok {
		return dec
	}
	a.Log.Warnf("decimals unknown for mint %s, defaulting to %d", mint, DefaultTokenDecimals)
	return DefaultTokenDecimals
}

// walletAccountIndex returns the wallet's position in the combined account
// key list, or -1 if the wallet is not a party to the transaction.
func (a *Analyzer) walletAccountIndex() int {
	for i, key := range a.allAccountKeys {
		if key.Equals(a.wallet) {
			return i
		}
	}
	return -1
}

func (a *Analyzer) signature() string {
	if len(a.txInfo.Signatures) == 0 {
		return ""
	}
	return a.txInfo.Signatures[0].String()
}

func (a *Analyzer) getInnerInstructions(index int) []solana.CompiledInstruction {
	if a.txMeta == nil || a.txMeta.InnerInstructions == nil {
		return nil
	}
	for _, inner := range a.txMeta.InnerInstructions {
		if inner.Index == uint16(index) {
			return inner.Instructions
		}
	}
	return nil
}
