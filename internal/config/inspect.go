package config

import (
	"github.com/spf13/pflag"
)

// InspectConfig holds configuration for the inspect command.
type InspectConfig struct {
	RPCURL   string
	TxHash   string
	Input    string
	Value    string
	To       string
	LogLevel string
}

// LoadInspect merges config file, environment variables, and flags into InspectConfig.
func LoadInspect(cfgFile string, flags *pflag.FlagSet) (InspectConfig, error) {
	v := newViper()

	v.SetDefault("value", "0")
	v.SetDefault("log-level", "warn")

	if err := bindAndRead(v, cfgFile, flags); err != nil {
		return InspectConfig{}, err
	}

	cfg := InspectConfig{
		RPCURL:   v.GetString("rpc"),
		TxHash:   v.GetString("tx"),
		Input:    v.GetString("input"),
		Value:    v.GetString("value"),
		To:       v.GetString("to"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
