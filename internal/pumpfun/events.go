// =============================
// File: internal/pumpfun/events.go
// =============================
package pumpfun

// Meta carries the provenance shared by every decoded trade event.
// PaperTrade defaults to false; callers running in simulation mode set it
// before handing the event to the controller.
type Meta struct {
	Slot       uint64
	Signature  string
	PaperTrade bool
}

// Event is the tagged union of trade events recovered from a notification.
// The controller switches exhaustively over the concrete types.
type Event interface {
	EventMeta() *Meta
	Kind() string
}

// CreateEvent is a standalone token mint.
type CreateEvent struct {
	Meta
	Mint                   string
	User                   string
	BondingCurve           string
	AssociatedBondingCurve string
	Name                   string
	Symbol                 string
	URI                    string
}

// CreateBuyEvent is a mint whose creator bought in the same transaction.
type CreateBuyEvent struct {
	Meta
	Mint                   string
	User                   string
	BondingCurve           string
	AssociatedBondingCurve string
	Name                   string
	Symbol                 string
	URI                    string
	Amount                 uint64
	MaxSolCost             uint64
}

// BuyEvent is a standalone buy against an existing curve.
type BuyEvent struct {
	Meta
	Mint       string
	User       string
	Amount     uint64
	MaxSolCost uint64
}

// SellEvent is a standalone sell against an existing curve.
type SellEvent struct {
	Meta
	Mint         string
	User         string
	Amount       uint64
	MinSolOutput uint64
}

// BuySellEvent is a buy and a sell bundled in one transaction.
type BuySellEvent struct {
	Meta
	Mint         string
	User         string
	AmountBuy    uint64
	MaxSolCost   uint64
	AmountSell   uint64
	MinSolOutput uint64
}

// WithdrawEvent is a curve withdrawal after graduation.
type WithdrawEvent struct {
	Meta
	Mint string
}

func (e *CreateEvent) EventMeta() *Meta    { return &e.Meta }
func (e *CreateBuyEvent) EventMeta() *Meta { return &e.Meta }
func (e *BuyEvent) EventMeta() *Meta       { return &e.Meta }
func (e *SellEvent) EventMeta() *Meta      { return &e.Meta }
func (e *BuySellEvent) EventMeta() *Meta   { return &e.Meta }
func (e *WithdrawEvent) EventMeta() *Meta  { return &e.Meta }

func (e *CreateEvent) Kind() string    { return "create" }
func (e *CreateBuyEvent) Kind() string { return "createbuy" }
func (e *BuyEvent) Kind() string       { return "buy" }
func (e *SellEvent) Kind() string      { return "sell" }
func (e *BuySellEvent) Kind() string   { return "buysell" }
func (e *WithdrawEvent) Kind() string  { return "withdraw" }
