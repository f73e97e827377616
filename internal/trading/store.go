// =============================
// File: internal/trading/store.go
// =============================
package trading

import "time"

// Position is the per-mint trading position. Open and Filled are whole-token
// quantities; a fill zeroes Open and sets Filled, so both are non-zero only
// for the duration of a single update.
type Position struct {
	Open       float64
	Filled     float64
	LastUpdate time.Time
}

// MonitorKind classifies why a mint is being watched.
type MonitorKind uint8

const (
	// MonitorBigMint marks a mint whose creator bought in size at creation.
	MonitorBigMint MonitorKind = iota
	// MonitorPossibleParty and MonitorActiveTrade are reserved classifications.
	MonitorPossibleParty
	MonitorActiveTrade
)

func (k MonitorKind) String() string {
	switch k {
	case MonitorBigMint:
		return "big_mint"
	case MonitorPossibleParty:
		return "possible_party"
	case MonitorActiveTrade:
		return "active_trade"
	}
	return "unknown"
}

// MonitorRecord tracks pool activity for a mint the bot holds or is deciding
// on. It exists if and only if a Position exists for the same mint.
type MonitorRecord struct {
	Kind            MonitorKind
	FirstSeen       time.Time
	LastUpdate      time.Time
	TradeCount      uint64
	EntryPoolTokens float64
	PoolTokens      float64
}

// Book owns the per-mint positions and monitor records. It is mutated
// exclusively by the Controller, which itself is driven only from the ingest
// stage, so no locking is needed (single-owner pattern).
type Book struct {
	positions map[string]*Position
	monitors  map[string]*MonitorRecord
}

func NewBook() *Book {
	return &Book{
		positions: make(map[string]*Position),
		monitors:  make(map[string]*MonitorRecord),
	}
}

// Open creates the Position and MonitorRecord for a new entry together.
func (b *Book) Open(mint string, openTokens, poolTokens float64, now time.Time) {
	b.positions[mint] = &Position{
		Open:       openTokens,
		LastUpdate: now,
	}
	b.monitors[mint] = &MonitorRecord{
		Kind:            MonitorBigMint,
		FirstSeen:       now,
		LastUpdate:      now,
		TradeCount:      1,
		EntryPoolTokens: poolTokens,
		PoolTokens:      poolTokens,
	}
}

// Close removes the Position and MonitorRecord together.
func (b *Book) Close(mint string) {
	delete(b.positions, mint)
	delete(b.monitors, mint)
}

// Position returns a copy of the position for mint.
func (b *Book) Position(mint string) (Position, bool) {
	p, ok := b.positions[mint]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Monitor returns a copy of the monitor record for mint.
func (b *Book) Monitor(mint string) (MonitorRecord, bool) {
	r, ok := b.monitors[mint]
	if !ok {
		return MonitorRecord{}, false
	}
	return *r, true
}

// Monitoring reports whether mint is currently tracked.
func (b *Book) Monitoring(mint string) bool {
	_, ok := b.monitors[mint]
	return ok
}

// PositionCount returns the number of open positions.
func (b *Book) PositionCount() int {
	return len(b.positions)
}

// Fill finalizes the open position for mint: Filled takes the observed
// amount and Open drops to zero. An untracked mint gets a fresh position
// holding only the filled quantity.
func (b *Book) Fill(mint string, tokens float64, now time.Time) {
	if p, ok := b.positions[mint]; ok {
		p.Filled = tokens
		p.Open = 0
		p.LastUpdate = now
		return
	}
	b.positions[mint] = &Position{
		Filled:     tokens,
		LastUpdate: now,
	}
}

// RecordBuy applies a third-party or self buy to the monitor record and
// returns the pool delta since entry.
func (b *Book) RecordBuy(mint string, tokens float64, now time.Time) (delta float64, ok bool) {
	r, ok := b.monitors[mint]
	if !ok {
		return 0, false
	}
	r.PoolTokens += tokens
	r.TradeCount++
	r.LastUpdate = now
	return r.PoolTokens - r.EntryPoolTokens, true
}

// RecordSell applies a sell to the monitor record and returns the pool
// quantity before the sell plus the delta since entry.
func (b *Book) RecordSell(mint string, tokens float64, now time.Time) (prevPool, delta float64, ok bool) {
	r, ok := b.monitors[mint]
	if !ok {
		return 0, 0, false
	}
	prevPool = r.PoolTokens
	r.PoolTokens -= tokens
	r.TradeCount++
	r.LastUpdate = now
	return prevPool, r.PoolTokens - r.EntryPoolTokens, true
}
