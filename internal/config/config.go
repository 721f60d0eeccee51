// Package config centralises the viper-backed configuration both CLI
// drivers (cmd/keychain-detect, cmd/keychain-bench) load their flags
// through, grounded on kgiusti-go-fdo-server's cmd/root.go pattern of
// binding cobra persistent flags into viper and reading them back by name.
package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the settings shared by both drivers: which variant to drive,
// how many trials to run, and where (if anywhere) to persist chain state.
type Config struct {
	Variant         string
	Trials          int
	ConfidenceLevel float64
	StatePath       string
	Persist         bool
	Debug           bool
}

// BindFlags registers the persistent flags both drivers accept and binds
// them into viper under the same names, following go-fdo-server's
// root.go convention of one BindPFlag per PersistentFlags() call.
func BindFlags(cmd *cobra.Command, defaultTrials int) error {
	cmd.PersistentFlags().String("variant", "", "primitive variant tag (e.g. prg16, shake128, hkdf-sha256)")
	cmd.PersistentFlags().Int("trials", defaultTrials, "number of trials to run")
	cmd.PersistentFlags().Float64("confidence", 0.95, "confidence level for benchmark statistics (0.90, 0.95 or 0.99)")
	cmd.PersistentFlags().String("state-db", "", "path to a SQLite file for persisted chain state; empty disables persistence")
	cmd.PersistentFlags().Bool("debug", false, "enable debug-level logging")

	for _, name := range []string{"variant", "trials", "confidence", "state-db", "debug"} {
		if err := viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("config: bind %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the bound viper values into a Config.
func Load() (Config, error) {
	variant := viper.GetString("variant")
	if variant == "" {
		return Config{}, fmt.Errorf("config: missing required --variant")
	}
	return Config{
		Variant:         variant,
		Trials:          viper.GetInt("trials"),
		ConfidenceLevel: viper.GetFloat64("confidence"),
		StatePath:       viper.GetString("state-db"),
		Persist:         viper.GetString("state-db") != "",
		Debug:           viper.GetBool("debug"),
	}, nil
}
