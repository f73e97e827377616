// =============================
// File: internal/pumpfun/instructions.go
// =============================
package pumpfun

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// CreateArgs is the Borsh-encoded body of a Create instruction.
type CreateArgs struct {
	Name   string
	Symbol string
	URI    string
}

// BuyArgs is the body of a Buy instruction.
type BuyArgs struct {
	Amount     uint64
	MaxSolCost uint64
}

// SellArgs is the body of a Sell instruction.
type SellArgs struct {
	Amount       uint64
	MinSolOutput uint64
}

// EncodeBuyData serializes a full Buy instruction payload: discriminator
// followed by the two little-endian u64 arguments.
func EncodeBuyData(amount, maxSolCost uint64) []byte {
	data := make([]byte, DiscriminatorWidth, DiscriminatorWidth+16)
	copy(data, BuyDiscriminator[:])

	amountBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(amountBytes, amount)
	data = append(data, amountBytes...)

	maxSolBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(maxSolBytes, maxSolCost)
	data = append(data, maxSolBytes...)

	return data
}

// EncodeSellData serializes a full Sell instruction payload.
func EncodeSellData(amount, minSolOutput uint64) []byte {
	data := make([]byte, DiscriminatorWidth, DiscriminatorWidth+16)
	copy(data, SellDiscriminator[:])

	amountBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(amountBytes, amount)
	data = append(data, amountBytes...)

	minSolBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(minSolBytes, minSolOutput)
	data = append(data, minSolBytes...)

	return data
}

// EncodeCreateData serializes a full Create instruction payload with
// Borsh-encoded string arguments.
func EncodeCreateData(name, symbol, uri string) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, DiscriminatorWidth))
	buf.Write(CreateDiscriminator[:])

	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(CreateArgs{Name: name, Symbol: symbol, URI: uri}); err != nil {
		return nil, fmt.Errorf("failed to encode create args: %w", err)
	}

	return buf.Bytes(), nil
}

// EncodeWithdrawData serializes a Withdraw instruction payload, which is
// the bare discriminator.
func EncodeWithdrawData() []byte {
	data := make([]byte, DiscriminatorWidth)
	copy(data, WithdrawDiscriminator[:])
	return data
}
