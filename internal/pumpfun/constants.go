// =============================
// File: internal/pumpfun/constants.go
// =============================
package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// Known PumpFun protocol addresses
var (
	// Program ID for Pump.fun protocol
	PumpFunProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
)

// Anchor instruction discriminators emitted by the Pump.fun program.
// The first 8 bytes of every instruction payload identify the operation.
var (
	CreateDiscriminator   = [8]byte{0x18, 0x1e, 0xc8, 0x28, 0x05, 0x1c, 0x07, 0x77}
	BuyDiscriminator      = [8]byte{0x66, 0x06, 0x3d, 0x12, 0x01, 0xda, 0xeb, 0xea}
	SellDiscriminator     = [8]byte{0x33, 0xe6, 0x85, 0xa4, 0x01, 0x7f, 0x83, 0xad}
	WithdrawDiscriminator = [8]byte{0xb7, 0x12, 0x46, 0x9c, 0x94, 0x6d, 0xa1, 0x22}
)

// DiscriminatorWidth is the fixed width of the instruction tag.
const DiscriminatorWidth = 8

// Positional account indices per instruction, as laid out by the program.
// Lookups through these must be bounds-checked against the account list.
const (
	createMintIndex         = 0
	createBondingCurveIndex = 2
	createAssocCurveIndex   = 3
	createUserIndex         = 7

	buyMintIndex = 2
	buyUserIndex = 6

	sellMintIndex = 2
	sellUserIndex = 6

	withdrawMintIndex = 2
)
