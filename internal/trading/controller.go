// =============================
// File: internal/trading/controller.go
// =============================
package trading

import (
	"time"

	"go.uber.org/zap"

	"github.com/shuimuliang/pumpfun-sak/internal/config"
	"github.com/shuimuliang/pumpfun-sak/internal/metrics"
	"github.com/shuimuliang/pumpfun-sak/internal/pumpfun"
)

// Controller is the decision state machine. It exclusively owns the Book and
// the trading capital; it must only ever be driven from a single goroutine
// (the ingest stage), which is what makes the lock-free Book safe.
type Controller struct {
	cfg     config.Trading
	book    *Book
	logger  *zap.Logger
	metrics metrics.Sink
	capital float64
}

func NewController(cfg config.Trading, logger *zap.Logger, sink metrics.Sink) *Controller {
	if sink == nil {
		sink = metrics.Nop{}
	}
	c := &Controller{
		cfg:     cfg,
		book:    NewBook(),
		logger:  logger.Named("controller"),
		metrics: sink,
		capital: cfg.InitialCapital,
	}
	sink.SetCapital(c.capital)
	return c
}

// Book exposes the store for inspection; callers must not retain it across
// goroutines.
func (c *Controller) Book() *Book {
	return c.book
}

// Capital returns the current capital in SOL.
func (c *Controller) Capital() float64 {
	return c.capital
}

// HandleEvent runs one decoded event through the state machine and returns
// the order to execute, if any. Only a qualifying CreateBuy emits an order.
func (c *Controller) HandleEvent(ev pumpfun.Event) Order {
	switch e := ev.(type) {
	case *pumpfun.CreateEvent:
		c.handleCreate(e)
	case *pumpfun.CreateBuyEvent:
		if order := c.handleCreateBuy(e); order != nil {
			return order
		}
	case *pumpfun.BuyEvent:
		c.handleBuy(e)
	case *pumpfun.SellEvent:
		c.handleSell(e)
	case *pumpfun.BuySellEvent:
		c.handleBuySell(e)
	case *pumpfun.WithdrawEvent:
		c.handleWithdraw(e)
	}
	return nil
}

func (c *Controller) handleCreate(e *pumpfun.CreateEvent) {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping create event", zap.String("mint", e.Mint))
		return
	}
	c.logger.Debug("Token created",
		zap.String("mint", e.Mint),
		zap.String("symbol", e.Symbol),
		zap.Uint64("slot", e.Slot))
}

func (c *Controller) handleCreateBuy(e *pumpfun.CreateBuyEvent) *BuyOrder {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping create-buy event", zap.String("mint", e.Mint))
		return nil
	}

	// Single position at a time.
	if c.book.PositionCount() > 0 {
		c.logger.Debug("Position already open, ignoring create-buy", zap.String("mint", e.Mint))
		return nil
	}

	if e.MaxSolCost < c.cfg.CreateBuyTriggerLamports {
		return nil
	}

	if c.capital < c.cfg.OrderSizeSol {
		c.logger.Warn("Insufficient capital for new position",
			zap.Float64("capital", c.capital),
			zap.Float64("order_size_sol", c.cfg.OrderSizeSol))
		return nil
	}

	// Big mint: the creator bought in size, enter behind them. Size the
	// entry against the pool state right after the creator's buy.
	creatorSol := pumpfun.LamportsToSol(e.MaxSolCost)
	creatorTokens := pumpfun.TokensFromRaw(e.Amount)
	tokensToBuy := pumpfun.TokensForSol(
		c.cfg.OrderSizeSol,
		pumpfun.InitialSolReserve+creatorSol,
		pumpfun.InitialTokenReserve-creatorTokens,
	)

	now := time.Now()
	c.book.Open(e.Mint, tokensToBuy, creatorTokens, now)
	c.metrics.SetOpenPositions(c.book.PositionCount())

	c.logger.Info("Opening position on big mint",
		zap.String("mint", e.Mint),
		zap.String("signature", e.Signature),
		zap.Float64("creator_sol", creatorSol),
		zap.Float64("tokens_to_buy", tokensToBuy),
		zap.Float64("capital", c.capital))

	slippage := c.cfg.SlippageBPS
	return &BuyOrder{
		WalletKey:   c.cfg.SelfKeypair,
		Mint:        e.Mint,
		AmountSol:   c.cfg.OrderSizeSol,
		SlippageBPS: &slippage,
	}
}

func (c *Controller) handleBuy(e *pumpfun.BuyEvent) {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping buy event", zap.String("mint", e.Mint))
		return
	}

	if !c.book.Monitoring(e.Mint) {
		// Untracked mint, nothing to do.
		return
	}

	tokens := pumpfun.TokensFromRaw(e.Amount)
	now := time.Now()

	if c.isSelf(e.User) {
		pos, tracked := c.book.Position(e.Mint)
		switch {
		case tracked && pos.Open != tokens:
			// Someone's buy landed before ours and moved the curve.
			c.logger.Warn("Fill differs from open position, possible front-run",
				zap.String("mint", e.Mint),
				zap.Float64("open", pos.Open),
				zap.Float64("filled", tokens))
		case !tracked:
			c.logger.Warn("Fill received with no position bookkeeping",
				zap.String("mint", e.Mint),
				zap.Float64("filled", tokens))
		}
		c.book.Fill(e.Mint, tokens, now)
		c.logger.Info("Position filled",
			zap.String("mint", e.Mint),
			zap.Float64("filled", tokens))
	}

	delta, ok := c.book.RecordBuy(e.Mint, tokens, now)
	if !ok {
		return
	}
	if pos, tracked := c.book.Position(e.Mint); tracked && delta > pos.Filled*2 {
		// Exit policy hook: pool has grown well past our fill since entry.
		// Reserved, no order is emitted yet.
		c.logger.Debug("Pool delta exceeds twice the filled position",
			zap.String("mint", e.Mint),
			zap.Float64("delta", delta),
			zap.Float64("filled", pos.Filled))
	}
}

func (c *Controller) handleSell(e *pumpfun.SellEvent) {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping sell event", zap.String("mint", e.Mint))
		return
	}

	if !c.book.Monitoring(e.Mint) {
		return
	}

	tokens := pumpfun.TokensFromRaw(e.Amount)
	now := time.Now()

	prevPool, delta, ok := c.book.RecordSell(e.Mint, tokens, now)
	if !ok {
		return
	}

	if c.isSelf(e.User) {
		if pos, tracked := c.book.Position(e.Mint); tracked && pos.Filled != tokens {
			c.logger.Warn("Sold amount differs from filled position",
				zap.String("mint", e.Mint),
				zap.Float64("filled", pos.Filled),
				zap.Float64("sold", tokens))
		}

		// Realized proceeds priced on the pool state before our sell.
		proceeds := pumpfun.SolCost(-tokens, prevPool)
		c.capital -= proceeds
		c.book.Close(e.Mint)
		c.metrics.SetOpenPositions(c.book.PositionCount())
		c.metrics.SetCapital(c.capital)

		c.logger.Info("Position flat",
			zap.String("mint", e.Mint),
			zap.Float64("sold", tokens),
			zap.Float64("capital", c.capital))
		return
	}

	if pos, tracked := c.book.Position(e.Mint); tracked && delta <= pos.Filled {
		// Defensive exit hook: pool activity has regressed to our size.
		// Reserved, no order is emitted yet.
		c.logger.Debug("Pool delta regressed to filled position",
			zap.String("mint", e.Mint),
			zap.Float64("delta", delta),
			zap.Float64("filled", pos.Filled))
	}
}

func (c *Controller) handleBuySell(e *pumpfun.BuySellEvent) {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping buy-sell event", zap.String("mint", e.Mint))
		return
	}
	c.logger.Debug("Buy-sell observed",
		zap.String("mint", e.Mint),
		zap.Uint64("amount_buy", e.AmountBuy),
		zap.Uint64("amount_sell", e.AmountSell))
}

func (c *Controller) handleWithdraw(e *pumpfun.WithdrawEvent) {
	if e.PaperTrade {
		c.logger.Info("Paper trading, skipping withdraw event", zap.String("mint", e.Mint))
		return
	}
	c.logger.Debug("Withdraw observed", zap.String("mint", e.Mint))
}

func (c *Controller) isSelf(userKey string) bool {
	return userKey == c.cfg.SelfPubKey
}
