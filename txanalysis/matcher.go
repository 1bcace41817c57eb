package txanalysis

import (
	"encoding/binary"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// TransferEvent is one detected SPL token movement, resolved to owner
// addresses where the balance snapshots allow it.
type TransferEvent struct {
	Mint      string
	From      string
	To        string
	Authority string
	Amount    float64
	Decimals  uint8
	IsNative  bool // WSOL leg of a swap, not an SPL position
}

// Evidence is everything the pattern matcher could extract from the
// instruction/log data: the classifier consumes this without touching the
// raw payload again.
type Evidence struct {
	Router     string // "" when no known router was invoked
	AtaEvents  []AtaOperation
	Transfers  []TransferEvent
	SwapEvents []SwapEventEvidence
}

// GatherEvidence scans top-level instructions, inner instructions and log
// messages. A single malformed instruction is skipped, never fatal: partial
// evidence is still useful to the classifier.
func (a *Analyzer) GatherEvidence() *Evidence {
	ev := &Evidence{}

	ev.Router = a.detectRouter()
	ev.AtaEvents = a.detectAtaEvents()
	ev.Transfers = a.detectTransfers()
	ev.SwapEvents = a.decodeSwapEvents()

	return ev
}

// detectRouter returns the name of the first known router program invoked,
// checking top-level instructions before inner ones.
func (a *Analyzer) detectRouter() string {
	for _, instr := range a.txInfo.Message.Instructions {
		if progID, ok := a.programID(instr); ok {
			if name := RouterName(progID); name != "" {
				return name
			}
		}
	}
	if a.txMeta == nil {
		return ""
	}
	for _, innerSet := range a.txMeta.InnerInstructions {
		for _, instr := range innerSet.Instructions {
			if progID, ok := a.programID(instr); ok {
				if name := RouterName(progID); name != "" {
					return name
				}
			}
		}
	}
	return ""
}

// eachInstruction visits outer then inner instructions in order.
func (a *Analyzer) eachInstruction(visit func(instr solana.CompiledInstruction)) {
	for _, instr := range a.txInfo.Message.Instructions {
		visit(instr)
	}
	if a.txMeta == nil {
		return
	}
	for _, innerSet := range a.txMeta.InnerInstructions {
		for _, instr := range innerSet.Instructions {
			visit(instr)
		}
	}
}

// detectAtaEvents extracts token-account creation/closure events. Parsed
// instructions are the primary signal; log-message substrings are the
// fallback when no structured evidence exists (inner instruction data is
// not always available).
func (a *Analyzer) detectAtaEvents() []AtaOperation {
	var events []AtaOperation
	created := make(map[string]bool)
	closed := make(map[string]bool)

	a.eachInstruction(func(instr solana.CompiledInstruction) {
		switch {
		case a.isAtaCreate(instr):
			// Accounts: payer, ata, owner, mint, ...
			if int(instr.Accounts[1]) >= len(a.allAccountKeys) || int(instr.Accounts[3]) >= len(a.allAccountKeys) {
				a.Log.Debugf("ata create with out-of-range account indexes, skipping")
				return
			}
			account := a.allAccountKeys[instr.Accounts[1]].String()
			mint := a.allAccountKeys[instr.Accounts[3]].String()
			if created[account] {
				return
			}
			created[account] = true
			events = append(events, AtaOperation{
				OperationType:  AtaCreation,
				AccountAddress: account,
				TokenMint:      mint,
				IsWSOL:         mint == WSOL_MINT.String(),
				RentAmount:     TokenAccountRentSOL,
			})

		case a.isInitializeAccount(instr):
			// Accounts: account, mint, ...
			if int(instr.Accounts[0]) >= len(a.allAccountKeys) || int(instr.Accounts[1]) >= len(a.allAccountKeys) {
				return
			}
			account := a.allAccountKeys[instr.Accounts[0]].String()
			mint := a.allAccountKeys[instr.Accounts[1]].String()
			if created[account] {
				// Already counted via the ATA create wrapper instruction.
				return
			}
			created[account] = true
			events = append(events, AtaOperation{
				OperationType:  AtaCreation,
				AccountAddress: account,
				TokenMint:      mint,
				IsWSOL:         mint == WSOL_MINT.String(),
				RentAmount:     TokenAccountRentSOL,
			})

		case a.isCloseAccount(instr):
			// Accounts: account, destination, owner
			if int(instr.Accounts[0]) >= len(a.allAccountKeys) {
				return
			}
			account := a.allAccountKeys[instr.Accounts[0]].String()
			if closed[account] {
				return
			}
			closed[account] = true
			mint := a.tokenAccounts[account].Mint
			isWSOL := mint == WSOL_MINT.String() || mint == ""
			if mint == "" {
				// No balance row: ephemeral account, almost always WSOL.
				mint = WSOL_MINT.String()
			}
			events = append(events, AtaOperation{
				OperationType:  AtaClosure,
				AccountAddress: account,
				TokenMint:      mint,
				IsWSOL:         isWSOL,
				RentAmount:     a.closureRent(account, isWSOL),
			})
		}
	})

	if len(events) == 0 {
		events = a.ataEventsFromLogs()
	}
	return events
}

// closureRent resolves the rent recovered by closing a token account. An
// empty token account holds exactly its rent deposit, so its pre-balance is
// authoritative. WSOL accounts also hold wrapped SOL, where only the fixed
// deposit is rent.
func (a *Analyzer) closureRent(account string, isWSOL bool) float64 {
	if isWSOL || a.txMeta == nil {
		return TokenAccountRentSOL
	}
	for i, key := range a.allAccountKeys {
		if key.String() != account {
			continue
		}
		if i < len(a.txMeta.PreBalances) && a.txMeta.PreBalances[i] > 0 {
			return float64(a.txMeta.PreBalances[i]) / LamportsPerSOL
		}
		break
	}
	return TokenAccountRentSOL
}

// ataEventsFromLogs is the secondary signal: count lifecycle instructions
// from program log lines when no parsed instruction evidence was found.
func (a *Analyzer) ataEventsFromLogs() []AtaOperation {
	if a.txMeta == nil {
		return nil
	}
	var events []AtaOperation
	for _, line := range a.txMeta.LogMessages {
		switch {
		case strings.Contains(line, "Instruction: InitializeAccount"),
			strings.Contains(line, "Instruction: CreateIdempotent"):
			events = append(events, AtaOperation{
				OperationType: AtaCreation,
				RentAmount:    TokenAccountRentSOL,
			})
		case strings.Contains(line, "Instruction: CloseAccount"):
			events = append(events, AtaOperation{
				OperationType: AtaClosure,
				RentAmount:    TokenAccountRentSOL,
			})
		}
	}
	if len(events) > 0 {
		a.Log.Debugf("ata lifecycle inferred from %d log lines (no parsed instructions)", len(events))
	}
	return events
}

// detectTransfers extracts SPL transfer / transferChecked instructions from
// the whole instruction tree.
func (a *Analyzer) detectTransfers() []TransferEvent {
	var transfers []TransferEvent

	a.eachInstruction(func(instr solana.CompiledInstruction) {
		switch {
		case a.isTransfer(instr):
			amount := binary.LittleEndian.Uint64(instr.Data[1:9])
			if amount == 0 {
				return
			}
			source := a.allAccountKeys[instr.Accounts[0]].String()
			dest := a.allAccountKeys[instr.Accounts[1]].String()
			authority := a.allAccountKeys[instr.Accounts[2]].String()

			info, ok := a.tokenAccounts[source]
			if !ok {
				info = a.tokenAccounts[dest]
			}
			mint := info.Mint
			decimals := info.Decimals
			if mint == "" {
				a.Log.Debugf("transfer with unresolvable mint (source %s), skipping", source)
				return
			}
			if decimals == 0 && mint != "" {
				decimals = a.decimalsForMint(mint)
			}
			transfers = append(transfers, TransferEvent{
				Mint:      mint,
				From:      a.ownerOrAccount(source),
				To:        a.ownerOrAccount(dest),
				Authority: authority,
				Amount:    baseToUI(amount, decimals),
				Decimals:  decimals,
				IsNative:  mint == WSOL_MINT.String(),
			})

		case a.isTransferCheck(instr):
			amount := binary.LittleEndian.Uint64(instr.Data[1:9])
			if amount == 0 {
				return
			}
			// Accounts: source, mint, destination, authority
			source := a.allAccountKeys[instr.Accounts[0]].String()
			mint := a.allAccountKeys[instr.Accounts[1]].String()
			dest := a.allAccountKeys[instr.Accounts[2]].String()
			authority := a.allAccountKeys[instr.Accounts[3]].String()

			decimals := a.decimalsForMint(mint)
			if len(instr.Data) >= 10 {
				decimals = instr.Data[9]
			}
			transfers = append(transfers, TransferEvent{
				Mint:      mint,
				From:      a.ownerOrAccount(source),
				To:        a.ownerOrAccount(dest),
				Authority: authority,
				Amount:    baseToUI(amount, decimals),
				Decimals:  decimals,
				IsNative:  mint == WSOL_MINT.String(),
			})
		}
	})

	return transfers
}

// ownerOrAccount maps a token account to its owner wallet when the balance
// snapshots identify one, else returns the account address itself.
func (a *Analyzer) ownerOrAccount(account string) string {
	if info, ok := a.tokenAccounts[account]; ok && info.Owner != "" {
		return info.Owner
	}
	return account
}

// instructionSummaries flattens the top-level instructions for the record.
func (a *Analyzer) instructionSummaries() []InstructionSummary {
	var summaries []InstructionSummary
	for _, instr := range a.txInfo.Message.Instructions {
		progID, ok := a.programID(instr)
		if !ok {
			continue
		}
		accounts := make([]string, 0, len(instr.Accounts))
		for _, idx := range instr.Accounts {
			if int(idx) < len(a.allAccountKeys) {
				accounts = append(accounts, a.allAccountKeys[idx].String())
			}
		}
		summaries = append(summaries, InstructionSummary{
			ProgramID:       progID.String(),
			InstructionType: a.instructionTypeName(progID, instr),
			Accounts:        accounts,
		})
	}
	return summaries
}

func (a *Analyzer) instructionTypeName(progID solana.PublicKey, instr solana.CompiledInstruction) string {
	switch {
	case progID.Equals(solana.TokenProgramID) || progID.Equals(solana.Token2022ProgramID):
		if len(instr.Data) == 0 {
			return "token"
		}
		switch instr.Data[0] {
		case splTransferTag:
			return "transfer"
		case splTransferCheckedTag:
			return "transferChecked"
		case splCloseAccountTag:
			return "closeAccount"
		case splInitializeAccountTag, splInitializeAccount3Tag:
			return "initializeAccount"
		}
		return "token"
	case progID.Equals(solana.SPLAssociatedTokenAccountProgramID):
		if len(instr.Data) > 0 && instr.Data[0] == ataCreateIdempotentTag {
			return "createIdempotent"
		}
		return "create"
	case progID.Equals(solana.SystemProgramID):
		if a.isSystemTransfer(instr) {
			return "transfer"
		}
		return "system"
	default:
		if name := RouterName(progID); name != "" {
			return "swap"
		}
		return "unknown"
	}
}
