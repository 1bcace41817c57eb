package txanalysis

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splTransferData(amount uint64) solana.Base58 {
	data := make([]byte, 9)
	data[0] = splTransferTag
	binary.LittleEndian.PutUint64(data[1:9], amount)
	return data
}

func splTransferCheckedData(amount uint64, decimals uint8) solana.Base58 {
	data := make([]byte, 10)
	data[0] = splTransferCheckedTag
	binary.LittleEndian.PutUint64(data[1:9], amount)
	data[9] = decimals
	return data
}

func TestDetectRouterOuterInstruction(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{wallet, RAYDIUM_V4_PROGRAM_ID}
	instructions := []solana.CompiledInstruction{{ProgramIDIndex: 1}}

	a := newTestAnalyzer(keys, instructions, &rpc.TransactionMeta{}, wallet)
	assert.Equal(t, "Raydium", a.GatherEvidence().Router)
}

func TestDetectRouterInnerInstruction(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{wallet, solana.SystemProgramID, JUPITER_PROGRAM_ID}

	meta := &rpc.TransactionMeta{
		InnerInstructions: []rpc.InnerInstruction{{
			Index:        0,
			Instructions: []solana.CompiledInstruction{{ProgramIDIndex: 2}},
		}},
	}
	a := newTestAnalyzer(keys, []solana.CompiledInstruction{{ProgramIDIndex: 1}}, meta, wallet)
	assert.Equal(t, "Jupiter", a.GatherEvidence().Router)
}

func TestDetectRouterNone(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{wallet, solana.SystemProgramID}

	a := newTestAnalyzer(keys, []solana.CompiledInstruction{{ProgramIDIndex: 1}}, &rpc.TransactionMeta{}, wallet)
	assert.Equal(t, "", a.GatherEvidence().Router)
}

func TestDetectTransfers(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()
	src := solana.NewWallet().PublicKey()
	dst := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{wallet, src, dst, solana.TokenProgramID, other}
	instructions := []solana.CompiledInstruction{{
		ProgramIDIndex: 3,
		Accounts:       []uint16{1, 2, 0},
		Data:           splTransferData(5_000_000),
	}}
	meta := &rpc.TransactionMeta{
		PreTokenBalances: []rpc.TokenBalance{
			mockTokenBalance(1, testMintBONK, wallet.String(), 6, 10),
			mockTokenBalance(2, testMintBONK, other.String(), 6, 0),
		},
	}

	a := newTestAnalyzer(keys, instructions, meta, wallet)
	transfers := a.GatherEvidence().Transfers

	require.Len(t, transfers, 1)
	assert.Equal(t, testMintBONK, transfers[0].Mint)
	assert.Equal(t, wallet.String(), transfers[0].From)
	assert.Equal(t, other.String(), transfers[0].To)
	assert.InDelta(t, 5.0, transfers[0].Amount, 1e-9)
	assert.False(t, transfers[0].IsNative)
}

func TestDetectTransfersChecked(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	src := solana.NewWallet().PublicKey()
	dst := solana.NewWallet().PublicKey()
	mint := solana.MustPublicKeyFromBase58(testMintUSDC)

	keys := []solana.PublicKey{wallet, src, mint, dst, solana.TokenProgramID}
	instructions := []solana.CompiledInstruction{{
		ProgramIDIndex: 4,
		Accounts:       []uint16{1, 2, 3, 0},
		Data:           splTransferCheckedData(1_500_000, 6),
	}}

	a := newTestAnalyzer(keys, instructions, &rpc.TransactionMeta{}, wallet)
	transfers := a.GatherEvidence().Transfers

	require.Len(t, transfers, 1)
	assert.Equal(t, testMintUSDC, transfers[0].Mint)
	assert.InDelta(t, 1.5, transfers[0].Amount, 1e-9)
}

func TestDetectTransfersMalformedSkipped(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{wallet, solana.TokenProgramID}

	// Truncated data and out-of-range account indexes must be skipped, not
	// abort the scan.
	instructions := []solana.CompiledInstruction{
		{ProgramIDIndex: 1, Accounts: []uint16{0}, Data: solana.Base58{splTransferTag}},
		{ProgramIDIndex: 1, Accounts: []uint16{9, 10, 11}, Data: splTransferData(1)},
	}

	a := newTestAnalyzer(keys, instructions, &rpc.TransactionMeta{}, wallet)
	assert.Empty(t, a.GatherEvidence().Transfers)
}

func TestDetectAtaCreate(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	ata := solana.NewWallet().PublicKey()
	mint := solana.MustPublicKeyFromBase58(testMintBONK)

	keys := []solana.PublicKey{wallet, ata, wallet, mint, solana.SystemProgramID, solana.TokenProgramID, solana.SPLAssociatedTokenAccountProgramID}
	instructions := []solana.CompiledInstruction{{
		ProgramIDIndex: 6,
		Accounts:       []uint16{0, 1, 2, 3, 4, 5},
		Data:           solana.Base58{ataCreateIdempotentTag},
	}}

	a := newTestAnalyzer(keys, instructions, &rpc.TransactionMeta{}, wallet)
	events := a.GatherEvidence().AtaEvents

	require.Len(t, events, 1)
	assert.Equal(t, AtaCreation, events[0].OperationType)
	assert.Equal(t, ata.String(), events[0].AccountAddress)
	assert.Equal(t, testMintBONK, events[0].TokenMint)
	assert.False(t, events[0].IsWSOL)
	assert.InDelta(t, TokenAccountRentSOL, events[0].RentAmount, 1e-12)
}

func TestDetectAtaCreateWSOL(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	ata := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{wallet, ata, wallet, WSOL_MINT, solana.SystemProgramID, solana.TokenProgramID, solana.SPLAssociatedTokenAccountProgramID}
	instructions := []solana.CompiledInstruction{{
		ProgramIDIndex: 6,
		Accounts:       []uint16{0, 1, 2, 3, 4, 5},
		Data:           solana.Base58{},
	}}

	a := newTestAnalyzer(keys, instructions, &rpc.TransactionMeta{}, wallet)
	events := a.GatherEvidence().AtaEvents

	require.Len(t, events, 1)
	assert.True(t, events[0].IsWSOL)
}

func TestDetectAtaClose(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	tokenAcct := solana.NewWallet().PublicKey()

	keys := []solana.PublicKey{wallet, tokenAcct, solana.TokenProgramID}
	instructions := []solana.CompiledInstruction{{
		ProgramIDIndex: 2,
		Accounts:       []uint16{1, 0, 0},
		Data:           solana.Base58{splCloseAccountTag},
	}}
	meta := &rpc.TransactionMeta{
		PreBalances:      []uint64{1_000_000_000, 2_039_280, 0},
		PostBalances:     []uint64{1_002_034_280, 0, 0},
		PreTokenBalances: []rpc.TokenBalance{mockTokenBalance(1, testMintBONK, wallet.String(), 6, 0)},
	}

	a := newTestAnalyzer(keys, instructions, meta, wallet)
	events := a.GatherEvidence().AtaEvents

	require.Len(t, events, 1)
	assert.Equal(t, AtaClosure, events[0].OperationType)
	assert.Equal(t, testMintBONK, events[0].TokenMint)
	assert.False(t, events[0].IsWSOL)
	assert.InDelta(t, 0.00203928, events[0].RentAmount, 1e-12)
}

func TestAtaEventsFromLogsFallback(t *testing.T) {
	wallet := solana.NewWallet().PublicKey()
	keys := []solana.PublicKey{wallet}

	meta := &rpc.TransactionMeta{
		LogMessages: []string{
			"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA invoke [2]",
			"Program log: Instruction: CloseAccount",
			"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA success",
		},
	}

	a := newTestAnalyzer(keys, nil, meta, wallet)
	events := a.GatherEvidence().AtaEvents

	require.Len(t, events, 1)
	assert.Equal(t, AtaClosure, events[0].OperationType)
	assert.InDelta(t, TokenAccountRentSOL, events[0].RentAmount, 1e-12)
}
