// =============================
// File: internal/trading/executor.go
// =============================
package trading

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Executor submits orders to the market. The implementation that builds,
// signs and sends real transactions lives outside this module; the pipeline
// only depends on this interface.
type Executor interface {
	ExecuteBuy(ctx context.Context, order *BuyOrder) error
	ExecuteSell(ctx context.Context, order *SellOrder) error
}

// PaperExecutor logs orders instead of submitting them. Latency, when set,
// simulates the round trip of a live submission.
type PaperExecutor struct {
	logger  *zap.Logger
	latency time.Duration
}

func NewPaperExecutor(logger *zap.Logger, latency time.Duration) *PaperExecutor {
	return &PaperExecutor{
		logger:  logger.Named("paper_executor"),
		latency: latency,
	}
}

func (e *PaperExecutor) ExecuteBuy(ctx context.Context, order *BuyOrder) error {
	if err := e.wait(ctx); err != nil {
		return err
	}
	e.logger.Info("Paper buy executed",
		zap.String("mint", order.Mint),
		zap.Float64("amount_sol", order.AmountSol))
	return nil
}

func (e *PaperExecutor) ExecuteSell(ctx context.Context, order *SellOrder) error {
	if err := e.wait(ctx); err != nil {
		return err
	}
	e.logger.Info("Paper sell executed", zap.String("mint", order.Mint))
	return nil
}

func (e *PaperExecutor) wait(ctx context.Context) error {
	if e.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.latency):
		return nil
	}
}
