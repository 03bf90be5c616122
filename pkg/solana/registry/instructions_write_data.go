package registry

import (
	"crypto/ed25519"

	"github.com/mdaeva/registry-server/pkg/solana"
)

var writeDataInstructionDiscriminator = []byte{211, 152, 195, 131, 83, 179, 248, 77}

type WriteDataInstructionArgs struct {
	// Ciphertext produced by the external encryption pipeline
	Data string
	// Nonce used for encryption, by convention a timestamp. Stored verbatim;
	// the program does not enforce monotonicity.
	Nonce uint64
}

type WriteDataInstructionAccounts struct {
	Sender      ed25519.PublicKey
	UserId      ed25519.PublicKey
	UserAccount ed25519.PublicKey
}

func NewWriteDataInstruction(
	accounts *WriteDataInstructionAccounts,
	args *WriteDataInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, 8+4+len(args.Data)+8)

	putDiscriminator(data, writeDataInstructionDiscriminator, &offset)
	putString(data, args.Data, &offset)
	putUint64(data, args.Nonce, &offset)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey: accounts.Sender,
				IsSigner:  true,
			},
			{
				PublicKey: accounts.UserId,
			},
			{
				PublicKey:  accounts.UserAccount,
				IsWritable: true,
			},
		},
	}
}
