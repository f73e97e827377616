// =============================
// File: internal/trading/store_test.go
// =============================
package trading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookOpenClose(t *testing.T) {
	book := NewBook()
	now := time.Now()

	book.Open("mint", 35000.0, 57542586.75, now)

	pos, ok := book.Position("mint")
	require.True(t, ok)
	assert.Equal(t, 35000.0, pos.Open)
	assert.Equal(t, 0.0, pos.Filled)

	rec, ok := book.Monitor("mint")
	require.True(t, ok)
	assert.Equal(t, MonitorBigMint, rec.Kind)
	assert.Equal(t, uint64(1), rec.TradeCount)
	assert.Equal(t, 57542586.75, rec.EntryPoolTokens)
	assert.Equal(t, 57542586.75, rec.PoolTokens)

	assert.True(t, book.Monitoring("mint"))
	assert.Equal(t, 1, book.PositionCount())

	// Position and monitor record always leave together.
	book.Close("mint")
	assert.False(t, book.Monitoring("mint"))
	assert.Equal(t, 0, book.PositionCount())
	_, ok = book.Position("mint")
	assert.False(t, ok)
}

func TestBookFill(t *testing.T) {
	book := NewBook()
	now := time.Now()

	book.Open("mint", 35000.0, 1000.0, now)
	book.Fill("mint", 34980.0, now.Add(time.Second))

	pos, ok := book.Position("mint")
	require.True(t, ok)
	assert.Equal(t, 0.0, pos.Open)
	assert.Equal(t, 34980.0, pos.Filled)
}

func TestBookFillUntracked(t *testing.T) {
	book := NewBook()

	// A fill for a mint we never opened still gets bookkeeping.
	book.Fill("stray", 120.0, time.Now())

	pos, ok := book.Position("stray")
	require.True(t, ok)
	assert.Equal(t, 0.0, pos.Open)
	assert.Equal(t, 120.0, pos.Filled)
}

func TestBookRecordBuySell(t *testing.T) {
	book := NewBook()
	now := time.Now()

	book.Open("mint", 35000.0, 1000.0, now)

	delta, ok := book.RecordBuy("mint", 500.0, now)
	require.True(t, ok)
	assert.Equal(t, 500.0, delta)

	delta, ok = book.RecordBuy("mint", 250.0, now)
	require.True(t, ok)
	assert.Equal(t, 750.0, delta)

	prevPool, delta, ok := book.RecordSell("mint", 600.0, now)
	require.True(t, ok)
	assert.Equal(t, 1750.0, prevPool)
	assert.Equal(t, 150.0, delta)

	rec, _ := book.Monitor("mint")
	assert.Equal(t, uint64(4), rec.TradeCount)
	assert.Equal(t, 1150.0, rec.PoolTokens)
}

func TestBookRecordUntracked(t *testing.T) {
	book := NewBook()
	now := time.Now()

	_, ok := book.RecordBuy("ghost", 1.0, now)
	assert.False(t, ok)

	_, _, ok = book.RecordSell("ghost", 1.0, now)
	assert.False(t, ok)
}

func TestBookReturnsCopies(t *testing.T) {
	book := NewBook()
	book.Open("mint", 10.0, 20.0, time.Now())

	pos, _ := book.Position("mint")
	pos.Open = 999.0
	rec, _ := book.Monitor("mint")
	rec.PoolTokens = 999.0

	fresh, _ := book.Position("mint")
	assert.Equal(t, 10.0, fresh.Open)
	freshRec, _ := book.Monitor("mint")
	assert.Equal(t, 20.0, freshRec.PoolTokens)
}

func TestMonitorKindString(t *testing.T) {
	assert.Equal(t, "big_mint", MonitorBigMint.String())
	assert.Equal(t, "possible_party", MonitorPossibleParty.String())
	assert.Equal(t, "active_trade", MonitorActiveTrade.String())
	assert.Equal(t, "unknown", MonitorKind(42).String())
}
