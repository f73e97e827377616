// =============================
// File: internal/pumpfun/decoder.go
// =============================
package pumpfun

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// The decoder fails closed: failed transactions, malformed base58, truncated
// payloads, unknown discriminators and out-of-range account indices all
// drop the offending instruction (or the whole notification) and never
// produce a partial event.

type rawKind uint8

const (
	rawCreate rawKind = iota
	rawBuy
	rawSell
	rawWithdraw
)

// rawInstruction is one binary-decoded trade primitive annotated with the
// accounts it references. A notification yields at most two of these.
type rawInstruction struct {
	kind rawKind

	create CreateArgs
	buy    BuyArgs
	sell   SellArgs

	mint                   string
	user                   string
	bondingCurve           string
	associatedBondingCurve string
}

// DecodeNotification recovers a typed trade event from one transaction
// notification, or nil when the transaction failed, touches a different
// program, or carries an instruction mix that does not map to an event.
// Emitted events default PaperTrade to false.
func DecodeNotification(n *TransactionNotification, program solana.PublicKey) Event {
	if n == nil || !n.Transaction.Meta.StatusOK() {
		return nil
	}

	programID := program.String()

	var raws []rawInstruction
	for i := range n.Transaction.Transaction.Message.Instructions {
		inst := &n.Transaction.Transaction.Message.Instructions[i]
		if inst.ProgramID != programID {
			continue
		}
		if raw, ok := decodeInstruction(inst); ok {
			raws = append(raws, raw)
		}
	}

	return composeEvent(raws, n.Slot, n.Signature)
}

// decodeInstruction decodes a single program instruction into a trade
// primitive. Malformed data aborts this instruction only.
func decodeInstruction(inst *ProgramInstruction) (rawInstruction, bool) {
	var raw rawInstruction

	if inst.Data == "" {
		return raw, false
	}

	data, err := base58.Decode(inst.Data)
	if err != nil || len(data) < DiscriminatorWidth {
		return raw, false
	}

	var discriminator [8]byte
	copy(discriminator[:], data[:DiscriminatorWidth])
	body := data[DiscriminatorWidth:]

	switch discriminator {
	case CreateDiscriminator:
		if err := bin.NewBorshDecoder(body).Decode(&raw.create); err != nil {
			return raw, false
		}
		mint, ok := account(inst.Accounts, createMintIndex)
		if !ok {
			return raw, false
		}
		curve, ok := account(inst.Accounts, createBondingCurveIndex)
		if !ok {
			return raw, false
		}
		assocCurve, ok := account(inst.Accounts, createAssocCurveIndex)
		if !ok {
			return raw, false
		}
		user, ok := account(inst.Accounts, createUserIndex)
		if !ok {
			return raw, false
		}
		raw.kind = rawCreate
		raw.mint, raw.bondingCurve, raw.associatedBondingCurve, raw.user = mint, curve, assocCurve, user
		return raw, true

	case BuyDiscriminator:
		if err := bin.NewBorshDecoder(body).Decode(&raw.buy); err != nil {
			return raw, false
		}
		mint, ok := account(inst.Accounts, buyMintIndex)
		if !ok {
			return raw, false
		}
		user, ok := account(inst.Accounts, buyUserIndex)
		if !ok {
			return raw, false
		}
		raw.kind = rawBuy
		raw.mint, raw.user = mint, user
		return raw, true

	case SellDiscriminator:
		if err := bin.NewBorshDecoder(body).Decode(&raw.sell); err != nil {
			return raw, false
		}
		mint, ok := account(inst.Accounts, sellMintIndex)
		if !ok {
			return raw, false
		}
		user, ok := account(inst.Accounts, sellUserIndex)
		if !ok {
			return raw, false
		}
		raw.kind = rawSell
		raw.mint, raw.user = mint, user
		return raw, true

	case WithdrawDiscriminator:
		mint, ok := account(inst.Accounts, withdrawMintIndex)
		if !ok {
			return raw, false
		}
		raw.kind = rawWithdraw
		raw.mint = mint
		return raw, true
	}

	// Unknown discriminator.
	return raw, false
}

func account(accounts []string, index int) (string, bool) {
	if index < 0 || index >= len(accounts) {
		return "", false
	}
	return accounts[index], true
}

// composeEvent maps the ordered primitive list to a single event. The
// program emits at most two relevant instructions per transaction; only
// Create+Buy and Buy+Sell pairs compose, everything else is dropped.
func composeEvent(raws []rawInstruction, slot uint64, signature string) Event {
	meta := Meta{Slot: slot, Signature: signature}

	switch len(raws) {
	case 1:
		raw := raws[0]
		switch raw.kind {
		case rawCreate:
			return &CreateEvent{
				Meta:                   meta,
				Mint:                   raw.mint,
				User:                   raw.user,
				BondingCurve:           raw.bondingCurve,
				AssociatedBondingCurve: raw.associatedBondingCurve,
				Name:                   raw.create.Name,
				Symbol:                 raw.create.Symbol,
				URI:                    raw.create.URI,
			}
		case rawBuy:
			return &BuyEvent{
				Meta:       meta,
				Mint:       raw.mint,
				User:       raw.user,
				Amount:     raw.buy.Amount,
				MaxSolCost: raw.buy.MaxSolCost,
			}
		case rawSell:
			return &SellEvent{
				Meta:         meta,
				Mint:         raw.mint,
				User:         raw.user,
				Amount:       raw.sell.Amount,
				MinSolOutput: raw.sell.MinSolOutput,
			}
		case rawWithdraw:
			return &WithdrawEvent{Meta: meta, Mint: raw.mint}
		}

	case 2:
		first, second := raws[0], raws[1]
		if first.kind == rawCreate && second.kind == rawBuy {
			return &CreateBuyEvent{
				Meta:                   meta,
				Mint:                   first.mint,
				User:                   first.user,
				BondingCurve:           first.bondingCurve,
				AssociatedBondingCurve: first.associatedBondingCurve,
				Name:                   first.create.Name,
				Symbol:                 first.create.Symbol,
				URI:                    first.create.URI,
				Amount:                 second.buy.Amount,
				MaxSolCost:             second.buy.MaxSolCost,
			}
		}
		if first.kind == rawBuy && second.kind == rawSell {
			return &BuySellEvent{
				Meta:         meta,
				Mint:         first.mint,
				User:         first.user,
				AmountBuy:    first.buy.Amount,
				MaxSolCost:   first.buy.MaxSolCost,
				AmountSell:   second.sell.Amount,
				MinSolOutput: second.sell.MinSolOutput,
			}
		}
	}

	return nil
}
