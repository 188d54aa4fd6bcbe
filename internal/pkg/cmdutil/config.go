// Package cmdutil provides shared utilities for CLI command implementations.
package cmdutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags binds each named flag to the viper key "<section>.<name>", with
// dashes in the flag name turned into underscores.
func BindFlags(flags *pflag.FlagSet, section string, names ...string) error {
	for _, name := range names {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		key := section + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// GetStringConfig returns flagValue when set, otherwise the config value for key.
func GetStringConfig(key, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

// GetStringSliceConfig returns flagValue when non-empty, otherwise the config
// value for key.
func GetStringSliceConfig(key string, flagValue []string) []string {
	if len(flagValue) > 0 {
		return flagValue
	}
	if configValue := viper.GetStringSlice(key); len(configValue) > 0 {
		return configValue
	}
	return flagValue
}

// GetIntConfig returns the config value for key, or flagValue if the key is not set.
func GetIntConfig(key string, flagValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return flagValue
}

// GetInt64Config returns the config value for key, or flagValue if the key is not set.
func GetInt64Config(key string, flagValue int64) int64 {
	if viper.IsSet(key) {
		return viper.GetInt64(key)
	}
	return flagValue
}

// ParseSize parses a byte count such as "1000", "10K", "1M" or "2G". Suffixes
// are decimal (K = 1000), matching how text sizes are usually quoted.
func ParseSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multiplier := 1
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1000
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1000 * 1000
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1000 * 1000 * 1000
		s = s[:len(s)-1]
	}

	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be greater than zero: %d", value)
	}
	return value * multiplier, nil
}

// ParseSizes parses a list of sizes, accepting comma-separated entries within
// each element.
func ParseSizes(values []string) ([]int, error) {
	var sizes []int
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			size, err := ParseSize(part)
			if err != nil {
				return nil, fmt.Errorf("size %q: %w", part, err)
			}
			sizes = append(sizes, size)
		}
	}
	return sizes, nil
}
