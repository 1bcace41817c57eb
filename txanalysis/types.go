package txanalysis

import "time"

// Direction is the net economic direction of a transaction relative to the
// analyzed wallet.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionInternal Direction = "internal"
)

// TransactionType is the economic interpretation of a classified
// transaction. Exactly one concrete variant is attached per transaction;
// consumers dispatch with a type switch.
type TransactionType interface {
	// Label is a stable string tag used for grouping in reports.
	Label() string
}

type SwapSolToToken struct {
	TokenMint   string  `json:"token_mint"`
	SolAmount   float64 `json:"sol_amount"`
	TokenAmount float64 `json:"token_amount"`
	Router      string  `json:"router"`
}

type SwapTokenToSol struct {
	TokenMint   string  `json:"token_mint"`
	TokenAmount float64 `json:"token_amount"`
	SolAmount   float64 `json:"sol_amount"`
	Router      string  `json:"router"`
}

type SwapTokenToToken struct {
	FromMint   string  `json:"from_mint"`
	ToMint     string  `json:"to_mint"`
	FromAmount float64 `json:"from_amount"`
	ToAmount   float64 `json:"to_amount"`
	Router     string  `json:"router"`
}

type SolTransfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type TokenTransfer struct {
	Mint   string  `json:"mint"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type AtaClose struct {
	TokenMint    string  `json:"token_mint"`
	RecoveredSol float64 `json:"recovered_sol"`
}

type Other struct {
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
}

// Unknown is the terminal classification fallback. It is a first-class,
// expected outcome for traffic from unsupported programs, not an error.
type Unknown struct{}

func (SwapSolToToken) Label() string   { return "swap_sol_to_token" }
func (SwapTokenToSol) Label() string   { return "swap_token_to_sol" }
func (SwapTokenToToken) Label() string { return "swap_token_to_token" }
func (SolTransfer) Label() string      { return "sol_transfer" }
func (TokenTransfer) Label() string    { return "token_transfer" }
func (AtaClose) Label() string         { return "ata_close" }
func (Other) Label() string            { return "other" }
func (Unknown) Label() string          { return "unknown" }

// TokenTransferRecord is one observed SPL token movement.
type TokenTransferRecord struct {
	Mint   string  `json:"mint"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// TokenBalanceChange is the signed UI-decimal delta of one (mint, owner)
// pair across the transaction.
type TokenBalanceChange struct {
	Mint  string  `json:"mint"`
	Owner string  `json:"owner"`
	Delta float64 `json:"delta"`
}

// InstructionSummary is a flattened view of one top-level instruction.
type InstructionSummary struct {
	ProgramID       string   `json:"program_id"`
	InstructionType string   `json:"instruction_type"`
	Accounts        []string `json:"accounts"`
}

// Transaction is the canonical classified record produced by Classify.
// Records are immutable once produced; re-analysis replaces the record
// wholesale rather than patching it.
type Transaction struct {
	Signature        string     `json:"signature"`
	Slot             uint64     `json:"slot"`
	BlockTime        *time.Time `json:"block_time,omitempty"`
	Success          bool       `json:"success"`
	Direction        Direction  `json:"direction"`
	FeeSOL           float64    `json:"fee_sol"`
	SolBalanceChange float64    `json:"sol_balance_change"`

	Type TransactionType `json:"-"`

	TokenTransfers      []TokenTransferRecord `json:"token_transfers"`
	TokenBalanceChanges []TokenBalanceChange  `json:"token_balance_changes"`
	Instructions        []InstructionSummary  `json:"instructions"`

	AtaAnalysis *AtaAnalysis `json:"ata_analysis,omitempty"`

	// Raw is the opaque original payload, retained for deep debugging only.
	Raw interface{} `json:"-"`

	ErrorMessage string `json:"error_message,omitempty"`
}

// AtaOperationType tags one associated-token-account lifecycle event.
type AtaOperationType string

const (
	AtaCreation AtaOperationType = "creation"
	AtaClosure  AtaOperationType = "closure"
)

// AtaOperation is one detected ATA lifecycle event with its rent flow.
type AtaOperation struct {
	OperationType  AtaOperationType `json:"operation_type"`
	AccountAddress string           `json:"account_address"`
	TokenMint      string           `json:"token_mint"`
	IsWSOL         bool             `json:"is_wsol"`
	RentAmount     float64          `json:"rent_amount"`
}

// AtaAnalysis aggregates ATA lifecycle events for one transaction,
// partitioned into WSOL (wrap/unwrap infrastructure) and token buckets.
type AtaAnalysis struct {
	TotalAtaCreations int `json:"total_ata_creations"`
	TotalAtaClosures  int `json:"total_ata_closures"`
	WsolAtaCreations  int `json:"wsol_ata_creations"`
	WsolAtaClosures   int `json:"wsol_ata_closures"`
	TokenAtaCreations int `json:"token_ata_creations"`
	TokenAtaClosures  int `json:"token_ata_closures"`

	TotalRentSpent     float64 `json:"total_rent_spent"`
	TotalRentRecovered float64 `json:"total_rent_recovered"`
	NetRentImpact      float64 `json:"net_rent_impact"`

	WsolRentSpent      float64 `json:"wsol_rent_spent"`
	WsolRentRecovered  float64 `json:"wsol_rent_recovered"`
	TokenRentSpent     float64 `json:"token_rent_spent"`
	TokenRentRecovered float64 `json:"token_rent_recovered"`

	DetectedOperations []AtaOperation `json:"detected_operations"`
}
