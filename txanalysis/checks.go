package txanalysis

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// SPL token program instruction tags.
const (
	splInitializeAccountTag  = 1
	splTransferTag           = 3
	splCloseAccountTag       = 9
	splTransferCheckedTag    = 12
	splInitializeAccount3Tag = 18
)

// Associated-token-account program instruction tags.
const (
	ataCreateTag           = 0
	ataCreateIdempotentTag = 1
)

func (a *Analyzer) programID(instr solana.CompiledInstruction) (solana.PublicKey, bool) {
	if int(instr.ProgramIDIndex) >= len(a.allAccountKeys) {
		return solana.PublicKey{}, false
	}
	return a.allAccountKeys[instr.ProgramIDIndex], true
}

// isTransfer checks for an SPL token transfer instruction (tag 3).
func (a *Analyzer) isTransfer(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || !progID.Equals(solana.TokenProgramID) {
		return false
	}
	if len(instr.Accounts) < 3 || len(instr.Data) < 9 {
		return false
	}
	if instr.Data[0] != splTransferTag {
		return false
	}
	for i := 0; i < 3; i++ {
		if int(instr.Accounts[i]) >= len(a.allAccountKeys) {
			return false
		}
	}
	return true
}

// isTransferCheck checks for an SPL transferChecked instruction (tag 12),
// valid for both the legacy token program and token-2022.
func (a *Analyzer) isTransferCheck(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || (!progID.Equals(solana.TokenProgramID) && !progID.Equals(solana.Token2022ProgramID)) {
		return false
	}
	if len(instr.Accounts) < 4 || len(instr.Data) < 9 {
		return false
	}
	if instr.Data[0] != splTransferCheckedTag {
		return false
	}
	for i := 0; i < 4; i++ {
		if int(instr.Accounts[i]) >= len(a.allAccountKeys) {
			return false
		}
	}
	return true
}

// isInitializeAccount checks for token-account initialization (tags 1, 18).
func (a *Analyzer) isInitializeAccount(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || (!progID.Equals(solana.TokenProgramID) && !progID.Equals(solana.Token2022ProgramID)) {
		return false
	}
	if len(instr.Data) == 0 || len(instr.Accounts) < 2 {
		return false
	}
	return instr.Data[0] == splInitializeAccountTag || instr.Data[0] == splInitializeAccount3Tag
}

// isCloseAccount checks for a token CloseAccount instruction (tag 9).
func (a *Analyzer) isCloseAccount(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || (!progID.Equals(solana.TokenProgramID) && !progID.Equals(solana.Token2022ProgramID)) {
		return false
	}
	if len(instr.Data) == 0 || len(instr.Accounts) < 2 {
		return false
	}
	return instr.Data[0] == splCloseAccountTag
}

// isAtaCreate checks for an associated-token-account Create or
// CreateIdempotent instruction. Create historically carries empty data.
func (a *Analyzer) isAtaCreate(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || !progID.Equals(solana.SPLAssociatedTokenAccountProgramID) {
		return false
	}
	if len(instr.Accounts) < 4 {
		return false
	}
	if len(instr.Data) == 0 {
		return true
	}
	return instr.Data[0] == ataCreateTag || instr.Data[0] == ataCreateIdempotentTag
}

// isSystemTransfer checks for a system program transfer instruction.
func (a *Analyzer) isSystemTransfer(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || !progID.Equals(solana.SystemProgramID) {
		return false
	}
	if len(instr.Accounts) < 2 || len(instr.Data) < 12 {
		return false
	}
	// System program instruction index 2 = Transfer, little-endian u32.
	return instr.Data[0] == 2 && instr.Data[1] == 0 && instr.Data[2] == 0 && instr.Data[3] == 0
}

func (a *Analyzer) isPumpFunTradeEventInstruction(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || !progID.Equals(PUMP_FUN_PROGRAM_ID) || len(instr.Data) < 16 {
		return false
	}
	decodedBytes, err := base58.Decode(instr.Data.String())
	if err != nil || len(decodedBytes) < 16 {
		return false
	}
	return bytes.Equal(decodedBytes[:16], pumpfunTradeEventDiscriminator[:])
}

func (a *Analyzer) isJupiterRouteEventInstruction(instr solana.CompiledInstruction) bool {
	progID, ok := a.programID(instr)
	if !ok || !progID.Equals(JUPITER_PROGRAM_ID) || len(instr.Data) < 16 {
		return false
	}
	decodedBytes, err := base58.Decode(instr.Data.String())
	if err != nil || len(decodedBytes) < 16 {
		return false
	}
	return bytes.Equal(decodedBytes[:16], jupiterRouteEventDiscriminator[:])
}
