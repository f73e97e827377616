// =============================
// File: internal/trading/orders.go
// =============================
package trading

import "time"

// Order is either a *BuyOrder or a *SellOrder; the execute stage switches
// over the concrete type.
type Order interface {
	Side() string
}

// BuyOrder asks the executor to spend AmountSol on Mint.
type BuyOrder struct {
	WalletKey   string
	Mint        string
	AmountSol   float64
	SlippageBPS *uint64
}

func (o *BuyOrder) Side() string { return "buy" }

// SellOrder asks the executor to flatten the full filled position on Mint.
type SellOrder struct {
	WalletKey   string
	Mint        string
	SlippageBPS *uint64
}

func (o *SellOrder) Side() string { return "sell" }

// SellOrder derives the sell that closes this buy: same wallet, mint and
// slippage, no amount.
func (o *BuyOrder) SellOrder() *SellOrder {
	return &SellOrder{
		WalletKey:   o.WalletKey,
		Mint:        o.Mint,
		SlippageBPS: o.SlippageBPS,
	}
}

// TimerOrder defers a sell: the timer stage waits Delay, then re-enqueues
// Sell into the execute stage.
type TimerOrder struct {
	Sell  *SellOrder
	Delay time.Duration
}
