package txanalysis

import (
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Router self-CPI event discriminators (anchor event wrapper + event tag).
var (
	pumpfunTradeEventDiscriminator = [16]byte{228, 69, 165, 46, 81, 203, 154, 29, 189, 219, 127, 211, 78, 230, 97, 238}
	jupiterRouteEventDiscriminator = [16]byte{228, 69, 165, 46, 81, 203, 154, 29, 64, 198, 205, 232, 38, 8, 113, 226}
)

type pumpfunTradeEvent struct {
	Mint                 solana.PublicKey
	SolAmount            uint64
	TokenAmount          uint64
	IsBuy                bool
	User                 solana.PublicKey
	Timestamp            int64
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
}

type jupiterRouteEvent struct {
	Amm          solana.PublicKey
	InputMint    solana.PublicKey
	InputAmount  uint64
	OutputMint   solana.PublicKey
	OutputAmount uint64
}

// SwapEventEvidence is a normalized decoded router event: the swap legs as
// the router itself reported them. This is the strongest evidence available
// and the only amount source for failed swaps, where balances never moved.
type SwapEventEvidence struct {
	Router       string
	InputMint    string
	InputAmount  float64
	OutputMint   string
	OutputAmount float64
}

// decodeSwapEvents scans inner instructions for decodable router events.
func (a *Analyzer) decodeSwapEvents() []SwapEventEvidence {
	if a.txMeta == nil {
		return nil
	}

	var events []SwapEventEvidence
	for _, innerSet := range a.txMeta.InnerInstructions {
		for _, instr := range innerSet.Instructions {
			switch {
			case a.isPumpFunTradeEventInstruction(instr):
				ev, err := decodePumpfunTradeEvent(instr)
				if err != nil {
					a.Log.Debugf("skipping undecodable pumpfun trade event: %v", err)
					continue
				}
				mint := ev.Mint.String()
				dec := a.decimalsForMint(mint)
				evidence := SwapEventEvidence{Router: "PumpFun"}
				if ev.IsBuy {
					evidence.InputMint = WSOL_MINT.String()
					evidence.InputAmount = baseToUI(ev.SolAmount, 9)
					evidence.OutputMint = mint
					evidence.OutputAmount = baseToUI(ev.TokenAmount, dec)
				} else {
					evidence.InputMint = mint
					evidence.InputAmount = baseToUI(ev.TokenAmount, dec)
					evidence.OutputMint = WSOL_MINT.String()
					evidence.OutputAmount = baseToUI(ev.SolAmount, 9)
				}
				events = append(events, evidence)

			case a.isJupiterRouteEventInstruction(instr):
				ev, err := decodeJupiterRouteEvent(instr)
				if err != nil {
					a.Log.Debugf("skipping undecodable jupiter route event: %v", err)
					continue
				}
				events = append(events, SwapEventEvidence{
					Router:       "Jupiter",
					InputMint:    ev.InputMint.String(),
					InputAmount:  baseToUI(ev.InputAmount, a.decimalsForMint(ev.InputMint.String())),
					OutputMint:   ev.OutputMint.String(),
					OutputAmount: baseToUI(ev.OutputAmount, a.decimalsForMint(ev.OutputMint.String())),
				})
			}
		}
	}
	return events
}

func decodePumpfunTradeEvent(instr solana.CompiledInstruction) (*pumpfunTradeEvent, error) {
	decodedBytes, err := base58.Decode(instr.Data.String())
	if err != nil {
		return nil, fmt.Errorf("error decoding instruction data: %w", err)
	}
	decoder := ag_binary.NewBorshDecoder(decodedBytes[16:])

	var trade pumpfunTradeEvent
	if err := decoder.Decode(&trade); err != nil {
		return nil, fmt.Errorf("error unmarshaling trade event: %w", err)
	}
	return &trade, nil
}

func decodeJupiterRouteEvent(instr solana.CompiledInstruction) (*jupiterRouteEvent, error) {
	decodedBytes, err := base58.Decode(instr.Data.String())
	if err != nil {
		return nil, fmt.Errorf("error decoding instruction data: %w", err)
	}
	decoder := ag_binary.NewBorshDecoder(decodedBytes[16:])

	var route jupiterRouteEvent
	if err := decoder.Decode(&route); err != nil {
		return nil, fmt.Errorf("error unmarshaling route event: %w", err)
	}
	return &route, nil
}
