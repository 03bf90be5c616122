package dexadapter

import (
	"github.com/mdaeva/registry-server/pkg/solana"
)

var swapAndUnwrapWsolInstructionDiscriminator = []byte{101, 25, 244, 205, 4, 74, 79, 192}

// NewSwapAndUnwrapWsolInstruction builds a swap ending on wSOL that closes the
// sender's wSOL account afterwards, leaving native SOL. The account list is
// identical to a plain swap.
func NewSwapAndUnwrapWsolInstruction(
	accounts *SwapInstructionAccounts,
	hops []SwapHopAccounts,
	args *SwapInstructionArgs,
) solana.Instruction {
	instruction := NewSwapInstruction(accounts, hops, args)

	var offset int
	putDiscriminator(instruction.Data, swapAndUnwrapWsolInstructionDiscriminator, &offset)

	return instruction
}
