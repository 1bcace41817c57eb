package txanalysis

import "github.com/gagliardetto/solana-go"

var (
	JUPITER_PROGRAM_ID     = solana.MustPublicKeyFromBase58("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4")
	JUPITER_DCA_PROGRAM_ID = solana.MustPublicKeyFromBase58("DCAK36VfExkPdAkYUQg6ewgxyinvcEyPLyHjRbmveKFw")
	PUMP_FUN_PROGRAM_ID    = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	PUMPFUN_AMM_PROGRAM_ID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
	MOONSHOT_PROGRAM_ID    = solana.MustPublicKeyFromBase58("MoonCVVNZFSYkqNXP6bxHLPL6QQJiMagDL3qcqUQTrG")

	// Trading bots / routers
	BANANA_GUN_PROGRAM_ID = solana.MustPublicKeyFromBase58("BANANAjs7FJiPQqJTGFzkZJndT9o7UmKiYYGaJz6frGu")
	MINTECH_PROGRAM_ID    = solana.MustPublicKeyFromBase58("minTcHYRLVPubRK8nt6sqe2ZpWrGDLQoNLipDJCGocY")
	BLOOM_PROGRAM_ID      = solana.MustPublicKeyFromBase58("b1oomGGqPKGD6errbyfbVMBuzSC8WtAAYo8MwNafWW1")
	MAESTRO_PROGRAM_ID    = solana.MustPublicKeyFromBase58("MaestroAAe9ge5HTc64VbBQZ6fP77pwvrhM8i1XWSAx")
	NOVA_PROGRAM_ID       = solana.MustPublicKeyFromBase58("NoVA1TmDUqksaj2hB1nayFkPysjJbFiU76dT4qPw2wm")
	PHOTON_PROGRAM_ID     = solana.MustPublicKeyFromBase58("BSfD6SHZigAfDWSjzD5Q41jw8LmKwtmjskPH9XW1mrRW")
	OKX_DEX_ROUTER_PROGRAM_ID = solana.MustPublicKeyFromBase58("6m2CDdhRgxpH4WjvdzxAYbGxwdGUz5MziiL5jek2kBma")

	RAYDIUM_V4_PROGRAM_ID                     = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	RAYDIUM_ROUTE_PROGRAM_ID                  = solana.MustPublicKeyFromBase58("routeUGWgWzqBWFcrCfv8tritsqukccJPu3q5GPP3xS")
	RAYDIUM_CPMM_PROGRAM_ID                   = solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")
	RAYDIUM_CONCENTRATED_LIQUIDITY_PROGRAM_ID = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	ORCA_WHIRLPOOL_PROGRAM_ID                 = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")
	METEORA_DLMM_PROGRAM_ID                   = solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")
	METEORA_POOLS_PROGRAM_ID                  = solana.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")

	WSOL_MINT = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

const (
	// LamportsPerSOL is the fixed native-unit scale of the chain.
	LamportsPerSOL = 1_000_000_000

	// DustThreshold is the materiality floor for UI-decimal token deltas.
	// Anything below it is rounding noise, not an economic event.
	DustThreshold = 1e-6

	// TokenAccountRentSOL is the rent-exemption deposit for a standard
	// SPL token account (165 bytes).
	TokenAccountRentSOL = 0.00203928

	// DefaultTokenDecimals is used when metadata for a mint is unavailable.
	DefaultTokenDecimals = 9
)

// routerRegistry maps known router/aggregator/bot program ids to the
// human-readable router name reported on classified swaps.
var routerRegistry = map[solana.PublicKey]string{
	JUPITER_PROGRAM_ID:        "Jupiter",
	JUPITER_DCA_PROGRAM_ID:    "Jupiter DCA",
	PUMP_FUN_PROGRAM_ID:       "PumpFun",
	PUMPFUN_AMM_PROGRAM_ID:    "PumpFun AMM",
	MOONSHOT_PROGRAM_ID:       "Moonshot",
	BANANA_GUN_PROGRAM_ID:     "BananaGun",
	MINTECH_PROGRAM_ID:        "Mintech",
	BLOOM_PROGRAM_ID:          "Bloom",
	MAESTRO_PROGRAM_ID:        "Maestro",
	NOVA_PROGRAM_ID:           "Nova",
	PHOTON_PROGRAM_ID:         "Photon",
	OKX_DEX_ROUTER_PROGRAM_ID: "OKX",

	RAYDIUM_V4_PROGRAM_ID:                     "Raydium",
	RAYDIUM_ROUTE_PROGRAM_ID:                  "Raydium",
	RAYDIUM_CPMM_PROGRAM_ID:                   "Raydium CPMM",
	RAYDIUM_CONCENTRATED_LIQUIDITY_PROGRAM_ID: "Raydium CLMM",
	ORCA_WHIRLPOOL_PROGRAM_ID:                 "Orca",
	METEORA_DLMM_PROGRAM_ID:                   "Meteora",
	METEORA_POOLS_PROGRAM_ID:                  "Meteora",
}

// knownOtherPrograms are non-swap programs whose presence classifies a
// transaction as Other rather than Unknown.
var knownOtherPrograms = map[solana.PublicKey]string{
	solana.StakeProgramID: "stake program interaction",
	solana.VoteProgramID:  "vote program interaction",
}

// RouterName returns the registered router name for a program id, or "" if
// the program is not a known router.
func RouterName(programID solana.PublicKey) string {
	return routerRegistry[programID]
}
