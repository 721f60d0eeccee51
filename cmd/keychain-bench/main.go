// Command keychain-bench times one Instantiate call and the requested number
// of Update calls for one key-chain variant. It reports mean and standard
// deviation for both, and a confidence interval for Update (spec.md §2's
// Benchmark harness).
package main

import (
	"log/slog"
	"os"

	"github.com/prateekb/keychains/bench"
	"github.com/prateekb/keychains/chain"
	"github.com/prateekb/keychains/extractor"
	"github.com/prateekb/keychains/internal/config"
	"github.com/prateekb/keychains/store"
	"github.com/spf13/cobra"
	"hermannm.dev/devlog"
)

const defaultTrials = 10000

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	Use:   "keychain-bench",
	Short: "Time instantiate/update for one forward-secure key-chain variant",
	RunE:  run,
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{Level: &logLevel})))
	if err := config.BindFlags(rootCmd, defaultTrials); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("keychain-bench failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}

	var st store.StateStore
	if cfg.Persist {
		st, err = store.NewGormStore(cfg.StatePath)
		if err != nil {
			return err
		}
	}

	variant := chain.Variant(cfg.Variant)
	seedBits, err := extractor.BitsForVariant(cfg.Variant)
	if err != nil {
		return err
	}
	draw := extractor.CryptoRand{}

	seed, err := draw.ExtractBits(seedBits)
	if err != nil {
		return err
	}

	instantiateChain, err := chain.New(variant, chain.Options{Store: st, Persist: cfg.Persist})
	if err != nil {
		return err
	}
	instantiateResult, err := bench.BenchmarkInstantiate(string(variant)+"-instantiate", func() error {
		_, err := instantiateChain.Instantiate(seed)
		return err
	}, 1, cfg.ConfidenceLevel)
	if err != nil {
		return err
	}
	slog.Info("instantiate timed", "mean", instantiateResult.Mean, "stddev", instantiateResult.StdDev)

	updateChain, err := chain.New(variant, chain.Options{Store: st, Persist: cfg.Persist})
	if err != nil {
		return err
	}
	state, err := updateChain.Instantiate(seed)
	if err != nil {
		return err
	}

	updateResult, err := bench.BenchmarkUpdate(string(variant)+"-update", func() error {
		x, err := draw.ExtractBits(seedBits)
		if err != nil {
			return err
		}
		newState, _, err := updateChain.Update(x, state)
		if err != nil {
			return err
		}
		state = newState
		return nil
	}, cfg.Trials, cfg.ConfidenceLevel)
	if err != nil {
		return err
	}
	slog.Info("update timed",
		"trials", updateResult.Trials,
		"mean", updateResult.Mean,
		"stddev", updateResult.StdDev,
		"ci_low", updateResult.ConfidenceInterval[0],
		"ci_high", updateResult.ConfidenceInterval[1],
	)
	return nil
}
