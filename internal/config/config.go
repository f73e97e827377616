// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"
)

// Config is the full configuration surface of the trading loop. Read-only
// after load; the Trading section is owned by the controller.
type Config struct {
	Trading Trading `mapstructure:"trading"`
	Redis   Redis   `mapstructure:"redis"`
	Log     Log     `mapstructure:"log"`
	Metrics Metrics `mapstructure:"metrics"`
}

// Trading holds the decision-making parameters and wallet credentials.
type Trading struct {
	SelfPubKey               string  `mapstructure:"self_pub_key"`
	SelfKeypair              string  `mapstructure:"self_keypair"`
	CreateBuyTriggerLamports uint64  `mapstructure:"create_buy_trigger_lamport"`
	CreateBuyWatchLamports   uint64  `mapstructure:"create_buy_watch_lamport"`
	PnLLossPercentage        float64 `mapstructure:"pnl_loss_percentage"`
	InitialCapital           float64 `mapstructure:"initial_capital"`
	PaperTrading             bool    `mapstructure:"paper_trading"`
	OrderSizeSol             float64 `mapstructure:"order_size_sol"`
	SellDelaySeconds         int     `mapstructure:"sell_delay_seconds"`
	SlippageBPS              uint64  `mapstructure:"slippage_bps"`
	ProgramID                string  `mapstructure:"program_id"`
}

// Redis points at the durable queue the ingest stage pops from.
type Redis struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

// Log configures the file sink of the logger.
type Log struct {
	File        string `mapstructure:"file"`
	MaxSizeMB   int    `mapstructure:"max_size_mb"`
	MaxAgeDays  int    `mapstructure:"max_age_days"`
	MaxBackups  int    `mapstructure:"max_backups"`
	Compress    bool   `mapstructure:"compress"`
	Development bool   `mapstructure:"development"`
}

// Metrics configures the optional Prometheus endpoint. An empty address
// disables the listener.
type Metrics struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

const (
	DefaultProgramID       = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	DefaultOrderSizeSol     = 0.001
	DefaultSellDelaySeconds = 15
	DefaultSlippageBPS      = 500
	DefaultRedisURL         = "redis://127.0.0.1:6379/0"
	DefaultRedisQueue       = "events"
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"trading.program_id":         DefaultProgramID,
		"trading.order_size_sol":     DefaultOrderSizeSol,
		"trading.sell_delay_seconds": DefaultSellDelaySeconds,
		"trading.slippage_bps":       DefaultSlippageBPS,
		"redis.url":                  DefaultRedisURL,
		"redis.queue":                DefaultRedisQueue,
		"log.file":                   "tradeloop.log",
		"log.max_size_mb":            100,
		"log.max_age_days":           7,
		"log.max_backups":            3,
		"log.compress":               true,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvironmentVariables(v, &cfg)

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	t := &cfg.Trading
	if _, err := solana.PublicKeyFromBase58(t.SelfPubKey); err != nil {
		return fmt.Errorf("invalid self_pub_key: %w", err)
	}
	if t.SelfKeypair == "" {
		return errors.New("missing self_keypair in configuration")
	}
	if _, err := solana.PublicKeyFromBase58(t.ProgramID); err != nil {
		return fmt.Errorf("invalid program_id: %w", err)
	}
	if t.CreateBuyTriggerLamports == 0 {
		return errors.New("invalid create_buy_trigger_lamport")
	}
	if t.PnLLossPercentage < 0 || t.PnLLossPercentage > 1 {
		return errors.New("pnl_loss_percentage must be within [0, 1]")
	}
	if t.InitialCapital < 0 {
		return errors.New("invalid initial_capital")
	}
	if t.OrderSizeSol <= 0 {
		return errors.New("invalid order_size_sol")
	}
	if t.SellDelaySeconds <= 0 {
		return errors.New("invalid sell_delay_seconds")
	}
	if cfg.Redis.URL == "" {
		return errors.New("redis url is empty")
	}
	if cfg.Redis.Queue == "" {
		return errors.New("redis queue is empty")
	}
	return nil
}

// loadEnvironmentVariables lets deployment secrets override the file. The
// signing key in particular should come from the environment, not disk.
func loadEnvironmentVariables(v *viper.Viper, cfg *Config) {
	v.AutomaticEnv()
	v.SetEnvPrefix("PUMPFUN_SAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if keypair := v.GetString("SELF_KEYPAIR"); keypair != "" {
		cfg.Trading.SelfKeypair = keypair
	}
	if pubKey := v.GetString("SELF_PUB_KEY"); pubKey != "" {
		cfg.Trading.SelfPubKey = pubKey
	}
	if redisURL := v.GetString("REDIS_URL"); redisURL != "" {
		cfg.Redis.URL = redisURL
	}
}

// ProgramPubKey returns the parsed target program address. Load has already
// validated it.
func (t *Trading) ProgramPubKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(t.ProgramID)
}
