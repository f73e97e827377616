// =============================
// File: internal/pipeline/pipeline.go
// =============================
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shuimuliang/pumpfun-sak/internal/logging"
	"github.com/shuimuliang/pumpfun-sak/internal/metrics"
	"github.com/shuimuliang/pumpfun-sak/internal/pumpfun"
	"github.com/shuimuliang/pumpfun-sak/internal/queue"
	"github.com/shuimuliang/pumpfun-sak/internal/trading"
)

// orderQueueCapacity bounds the channels between the stages.
const orderQueueCapacity = 32

// Config carries the runtime parameters of the pipeline.
type Config struct {
	// Program is the address whose instructions the decoder recovers.
	Program solana.PublicKey
	// SellDelay is the hold time between a filled buy and its auto-exit.
	SellDelay time.Duration
	// PaperTrading marks every decoded event as simulated.
	PaperTrading bool
}

// Pipeline wires the three stages of the trading loop:
//
//	ingest  – pops notifications, decodes them, drives the controller
//	execute – submits orders through the executor
//	timer   – holds deferred sells, then re-enqueues them into execute
//
// The stages run under one errgroup: if any stage returns, the group context
// is cancelled and the whole pipeline shuts down. A partial pipeline is
// unsafe — an executed buy with no timer to close it, or a timer firing with
// no executor listening.
type Pipeline struct {
	cfg        Config
	source     queue.Source
	controller *trading.Controller
	executor   trading.Executor
	logger     *zap.Logger
	metrics    metrics.Sink

	orders chan trading.Order
	timers chan trading.TimerOrder
}

func New(
	cfg Config,
	source queue.Source,
	controller *trading.Controller,
	executor trading.Executor,
	logger *zap.Logger,
	sink metrics.Sink,
) *Pipeline {
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Pipeline{
		cfg:        cfg,
		source:     source,
		controller: controller,
		executor:   executor,
		logger:     logger.Named("pipeline"),
		metrics:    sink,
		orders:     make(chan trading.Order, orderQueueCapacity),
		timers:     make(chan trading.TimerOrder, orderQueueCapacity),
	}
}

// Run blocks until the context is cancelled or a stage fails.
func (p *Pipeline) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return p.ingestLoop(ctx) })
	g.Go(func() error { return p.executeLoop(ctx) })
	g.Go(func() error { return p.timerLoop(ctx) })

	p.logger.Info("Trading pipeline started",
		zap.String("program", p.cfg.Program.String()),
		zap.Duration("sell_delay", p.cfg.SellDelay),
		zap.Bool("paper_trading", p.cfg.PaperTrading))

	return g.Wait()
}

// ingestLoop is stage A: one notification at a time, in pop order. A single
// bad item is logged and skipped; only cancellation ends the loop.
func (p *Pipeline) ingestLoop(ctx context.Context) error {
	logger := p.logger.Named("ingest")

	for {
		payload, err := p.source.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Failed to pop notification", zap.Error(err))
			continue
		}
		p.metrics.IncEventsProcessed()

		var notification pumpfun.TransactionNotification
		if err := json.Unmarshal(payload, &notification); err != nil {
			logger.Warn("Dropping undecodable notification", zap.Error(err))
			continue
		}

		event := pumpfun.DecodeNotification(&notification, p.cfg.Program)
		if event == nil {
			continue
		}
		event.EventMeta().PaperTrade = p.cfg.PaperTrading
		p.metrics.IncEventDecoded(event.Kind())

		order := p.controller.HandleEvent(event)
		if order == nil {
			continue
		}

		select {
		case p.orders <- order:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// executeLoop is stage B: executes orders one at a time. A failed order is
// logged and dropped; the queue keeps moving.
func (p *Pipeline) executeLoop(ctx context.Context) error {
	logger := p.logger.Named("execute")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case order, ok := <-p.orders:
			if !ok {
				return errors.New("order channel closed")
			}
			if err := p.executeOrder(ctx, order, logger); err != nil {
				return err
			}
		}
	}
}

// executeOrder returns an error only on cancellation; execution failures are
// logged and swallowed.
func (p *Pipeline) executeOrder(ctx context.Context, order trading.Order, logger *zap.Logger) error {
	switch o := order.(type) {
	case *trading.BuyOrder:
		logger := logging.WithOperation(logger, "buy_order")
		if err := p.executor.ExecuteBuy(ctx, o); err != nil {
			p.metrics.IncOrderExecuted("buy", "failed")
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Buy order failed", zap.String("mint", o.Mint), zap.Error(err))
			return nil
		}
		p.metrics.IncOrderExecuted("buy", "success")
		logger.Info("Buy order executed",
			zap.String("mint", o.Mint),
			zap.Float64("amount_sol", o.AmountSol))

		// Schedule the auto-exit.
		timer := trading.TimerOrder{Sell: o.SellOrder(), Delay: p.cfg.SellDelay}
		select {
		case p.timers <- timer:
		case <-ctx.Done():
			return ctx.Err()
		}

	case *trading.SellOrder:
		logger := logging.WithOperation(logger, "sell_order")
		if err := p.executor.ExecuteSell(ctx, o); err != nil {
			p.metrics.IncOrderExecuted("sell", "failed")
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Sell order failed", zap.String("mint", o.Mint), zap.Error(err))
			return nil
		}
		p.metrics.IncOrderExecuted("sell", "success")
		logger.Info("Sell order executed", zap.String("mint", o.Mint))
	}

	return nil
}

// timerLoop is stage C: each deferred sell gets its own goroutine so pending
// timers never block the intake of new ones.
func (p *Pipeline) timerLoop(ctx context.Context) error {
	logger := p.logger.Named("timer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case timer, ok := <-p.timers:
			if !ok {
				return errors.New("timer channel closed")
			}
			go p.runTimer(ctx, timer, logger)
		}
	}
}

// runTimer waits out the delay and re-enqueues the sell. Once spawned, a
// timer always runs to completion; only the re-enqueue is abandoned when the
// pipeline has already shut down.
func (p *Pipeline) runTimer(ctx context.Context, timer trading.TimerOrder, logger *zap.Logger) {
	time.Sleep(timer.Delay)

	select {
	case p.orders <- timer.Sell:
		logger.Info("Sell order timer finished", zap.String("mint", timer.Sell.Mint))
	case <-ctx.Done():
		logger.Warn("Pipeline stopped before deferred sell could be enqueued",
			zap.String("mint", timer.Sell.Mint))
	}
}
