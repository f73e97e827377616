// =============================
// File: internal/pumpfun/decoder_test.go
// =============================
package pumpfun

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testURI = "https://ipfs.io/ipfs/QmTkgF59jqZUS1e1rZehdfQEsVh6mzvEGgRUvZVVLPLuQ2"

	// Payloads captured from mainnet transactions.
	buyDataHex  = "66063d1201daebea92b35c5308000000f222eebd08000000"
	sellDataHex = "33e685a4017f83adc05e1aa7100000001c9c1d0000000000"
)

func successNotification(instructions ...ProgramInstruction) *TransactionNotification {
	return &TransactionNotification{
		Slot:      254_000_123,
		Signature: "5igsignature",
		Transaction: TransactionWithMeta{
			Meta:        &TransactionMeta{},
			Transaction: EncodedTransaction{Message: TransactionMessage{Instructions: instructions}},
		},
	}
}

func accountList(n int) []string {
	accounts := make([]string, n)
	for i := range accounts {
		accounts[i] = base58.Encode([]byte{byte(i + 1)})
	}
	return accounts
}

func buyInstruction(accounts []string) ProgramInstruction {
	return ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(EncodeBuyData(35758322578, 37546238706)),
	}
}

func sellInstruction(accounts []string) ProgramInstruction {
	return ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(EncodeSellData(71523000000, 1940508)),
	}
}

func createInstruction(t *testing.T, accounts []string) ProgramInstruction {
	data, err := EncodeCreateData("cchuman", "cchuman", testURI)
	require.NoError(t, err)
	return ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(data),
	}
}

func TestEncodeInstructionData(t *testing.T) {
	assert.Equal(t, buyDataHex, hex.EncodeToString(EncodeBuyData(35758322578, 37546238706)))
	assert.Equal(t, sellDataHex, hex.EncodeToString(EncodeSellData(71523000000, 1940508)))
	assert.Equal(t, "b712469c946da122", hex.EncodeToString(EncodeWithdrawData()))

	createData, err := EncodeCreateData("cchuman", "cchuman", testURI)
	require.NoError(t, err)
	assert.Equal(t,
		"181ec828051c077707000000636368756d616e07000000636368756d616e4300000068747470733a2f2f697066732e696f2f697066732f516d546b674635396a715a5553316531725a656864665145735668366d7a764547675255765a56564c504c755132",
		hex.EncodeToString(createData))
}

func TestDecodeBuy(t *testing.T) {
	accounts := accountList(12)
	n := successNotification(buyInstruction(accounts))

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &BuyEvent{}, event)

	buy := event.(*BuyEvent)
	assert.Equal(t, uint64(35758322578), buy.Amount)
	assert.Equal(t, uint64(37546238706), buy.MaxSolCost)
	assert.Equal(t, accounts[2], buy.Mint)
	assert.Equal(t, accounts[6], buy.User)
	assert.Equal(t, uint64(254_000_123), buy.Slot)
	assert.Equal(t, "5igsignature", buy.Signature)
	assert.False(t, buy.PaperTrade)
	assert.Equal(t, "buy", buy.Kind())
}

func TestDecodeSell(t *testing.T) {
	accounts := accountList(12)
	n := successNotification(sellInstruction(accounts))

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &SellEvent{}, event)

	sell := event.(*SellEvent)
	assert.Equal(t, uint64(71523000000), sell.Amount)
	assert.Equal(t, uint64(1940508), sell.MinSolOutput)
	assert.Equal(t, accounts[2], sell.Mint)
	assert.Equal(t, accounts[6], sell.User)
}

func TestDecodeCreate(t *testing.T) {
	accounts := accountList(14)
	n := successNotification(createInstruction(t, accounts))

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &CreateEvent{}, event)

	create := event.(*CreateEvent)
	assert.Equal(t, "cchuman", create.Name)
	assert.Equal(t, "cchuman", create.Symbol)
	assert.Equal(t, testURI, create.URI)
	assert.Equal(t, accounts[0], create.Mint)
	assert.Equal(t, accounts[2], create.BondingCurve)
	assert.Equal(t, accounts[3], create.AssociatedBondingCurve)
	assert.Equal(t, accounts[7], create.User)
}

func TestDecodeWithdraw(t *testing.T) {
	accounts := accountList(5)
	n := successNotification(ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(EncodeWithdrawData()),
	})

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &WithdrawEvent{}, event)
	assert.Equal(t, accounts[2], event.(*WithdrawEvent).Mint)
}

func TestDecodeCreateBuy(t *testing.T) {
	createAccounts := accountList(14)
	buyAccounts := accountList(12)
	n := successNotification(createInstruction(t, createAccounts), buyInstruction(buyAccounts))

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &CreateBuyEvent{}, event)

	cb := event.(*CreateBuyEvent)
	assert.Equal(t, createAccounts[0], cb.Mint)
	assert.Equal(t, createAccounts[7], cb.User)
	assert.Equal(t, "cchuman", cb.Symbol)
	assert.Equal(t, uint64(35758322578), cb.Amount)
	assert.Equal(t, uint64(37546238706), cb.MaxSolCost)
	assert.Equal(t, "createbuy", cb.Kind())
}

func TestDecodeBuySell(t *testing.T) {
	accounts := accountList(12)
	n := successNotification(buyInstruction(accounts), sellInstruction(accounts))

	event := DecodeNotification(n, PumpFunProgramID)
	require.IsType(t, &BuySellEvent{}, event)

	bs := event.(*BuySellEvent)
	assert.Equal(t, uint64(35758322578), bs.AmountBuy)
	assert.Equal(t, uint64(71523000000), bs.AmountSell)
	assert.Equal(t, uint64(1940508), bs.MinSolOutput)
	assert.Equal(t, accounts[2], bs.Mint)
}

func TestDecodeOrderSensitive(t *testing.T) {
	accounts := accountList(14)

	// Only Create followed by Buy and Buy followed by Sell compose;
	// any other mix drops.
	n := successNotification(sellInstruction(accounts), buyInstruction(accounts))
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))

	n = successNotification(buyInstruction(accounts), createInstruction(t, accounts))
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))

	n = successNotification(buyInstruction(accounts), buyInstruction(accounts), sellInstruction(accounts))
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))
}

func TestDecodeFailedTransaction(t *testing.T) {
	accounts := accountList(12)
	n := successNotification(buyInstruction(accounts))
	n.Transaction.Meta.Err = json.RawMessage(`{"InstructionError":[2,{"Custom":6002}]}`)

	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))

	n.Transaction.Meta = nil
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))
}

func TestDecodeForeignProgram(t *testing.T) {
	inst := buyInstruction(accountList(12))
	inst.ProgramID = "11111111111111111111111111111111"
	n := successNotification(inst)

	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))
}

func TestDecodeMalformedInstruction(t *testing.T) {
	accounts := accountList(12)

	// Invalid base58 alphabet.
	bad := ProgramInstruction{ProgramID: PumpFunProgramID.String(), Accounts: accounts, Data: "0OIl"}
	assert.Nil(t, DecodeNotification(successNotification(bad), PumpFunProgramID))

	// Shorter than the discriminator.
	short := ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode([]byte{0x66, 0x06, 0x3d}),
	}
	assert.Nil(t, DecodeNotification(successNotification(short), PumpFunProgramID))

	// Unknown discriminator.
	unknown := ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}),
	}
	assert.Nil(t, DecodeNotification(successNotification(unknown), PumpFunProgramID))

	// Recognized discriminator with no body at all.
	bare := ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(BuyDiscriminator[:]),
	}
	assert.Nil(t, DecodeNotification(successNotification(bare), PumpFunProgramID))

	// Discriminator with a truncated body.
	truncated := ProgramInstruction{
		ProgramID: PumpFunProgramID.String(),
		Accounts:  accounts,
		Data:      base58.Encode(EncodeBuyData(1, 1)[:12]),
	}
	assert.Nil(t, DecodeNotification(successNotification(truncated), PumpFunProgramID))
}

func TestDecodeAccountsOutOfRange(t *testing.T) {
	// A buy references account index 6; five accounts is not enough.
	n := successNotification(buyInstruction(accountList(5)))
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))

	n = successNotification(createInstruction(t, accountList(4)))
	assert.Nil(t, DecodeNotification(n, PumpFunProgramID))
}

func TestDecodeEmptyAndNil(t *testing.T) {
	assert.Nil(t, DecodeNotification(nil, PumpFunProgramID))
	assert.Nil(t, DecodeNotification(successNotification(), PumpFunProgramID))
}

func TestNotificationJSONShape(t *testing.T) {
	payload := []byte(`{
		"slot": 254000123,
		"signature": "5igsignature",
		"transaction": {
			"meta": {"err": null},
			"transaction": {
				"message": {
					"instructions": [
						{"programId": "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P",
						 "accounts": ["a", "b", "mint", "d", "e", "f", "user"],
						 "data": "` + base58.Encode(EncodeBuyData(42, 7)) + `"}
					]
				}
			}
		}
	}`)

	var n TransactionNotification
	require.NoError(t, json.Unmarshal(payload, &n))
	assert.True(t, n.Transaction.Meta.StatusOK())

	event := DecodeNotification(&n, PumpFunProgramID)
	require.IsType(t, &BuyEvent{}, event)
	assert.Equal(t, uint64(42), event.(*BuyEvent).Amount)
	assert.Equal(t, "mint", event.(*BuyEvent).Mint)
	assert.Equal(t, "user", event.(*BuyEvent).User)
}
