package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/utils"
)

var setters = map[string]func(c *Config, value string) error{
	"server.url": func(c *Config, value string) error {
		if err := utils.ValidateURL(value); err != nil {
			return err
		}
		c.Server.URL = strings.TrimRight(value, "/")
		return nil
	},
	"server.timeout": func(c *Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return utils.NewValidationError("server.timeout", "must be a positive duration such as 30s")
		}
		c.Server.Timeout = d
		return nil
	},
	"format.default": func(c *Config, value string) error {
		switch value {
		case "table", "json", "json-compact", "yaml", "text":
			c.Format.Default = value
			return nil
		}
		return utils.NewValidationError("format.default", "must be table, json, json-compact, yaml or text")
	},
	"format.colors": func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return utils.NewValidationError("format.colors", "must be true or false")
		}
		c.Format.Colors = b
		return nil
	},
	"log.level": func(c *Config, value string) error {
		switch strings.ToLower(value) {
		case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			c.Log.Level = strings.ToLower(value)
			return nil
		}
		return utils.NewValidationError("log.level", "unknown log level")
	},
	"limits.send_warn":    limitSetter(func(c *Config) *decimal.Decimal { return &c.Limits.SendWarn }),
	"limits.request_warn": limitSetter(func(c *Config) *decimal.Decimal { return &c.Limits.RequestWarn }),
	"limits.topup_warn":   limitSetter(func(c *Config) *decimal.Decimal { return &c.Limits.TopUpWarn }),
	"limits.request_min":  limitSetter(func(c *Config) *decimal.Decimal { return &c.Limits.RequestMin }),
	"limits.topup_min":    limitSetter(func(c *Config) *decimal.Decimal { return &c.Limits.TopUpMin }),
}

func limitSetter(field func(c *Config) *decimal.Decimal) func(c *Config, value string) error {
	return func(c *Config, value string) error {
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || !d.IsPositive() {
			return utils.NewValidationError("limits", "must be an amount greater than 0")
		}
		*field(c) = d
		return nil
	}
}

// Keys lists the settings Set accepts
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set changes one setting in memory; call Save to persist it
func (c *Config) Set(key, value string) error {
	set, ok := setters[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}
