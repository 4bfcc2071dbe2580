// hot-reload.go: dynamic configuration reload via Argus
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package fastcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// ttlSetter is implemented by engines that can apply a new TTL without a
// full rebuild. Only memoryEngine does today; the Shared backend's TTL is
// baked into its on-disk parameter set (see shared.Params), so a TTL
// change there requires reopening the region, not a live mutation.
type ttlSetter interface {
	SetTTL(ttl float64)
}

// HotConfig watches a configuration file via Argus and applies supported
// changes to a running cache without disruption. Only TTL is applied to
// the running cache. A changed CleanupInterval is recorded in the reloaded
// Config and passed to OnReload, but the running janitor keeps its
// original interval. A change to MaxSize, Strategy, or Backend cannot be
// applied to an already-constructed cache (its internal structures are
// sized and keyed on those values at construction), so HotConfig only
// reports such changes through OnReload for the caller to act on
// (typically: build a new cache and swap it in).
type HotConfig struct {
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  Config
	applyTo ttlSetter

	// OnReload is called after every successful reload, old and new
	// config both included so the caller can detect a change that
	// requires reconstruction (MaxSize/Strategy/Backend). Optional, must
	// be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)

	logger Logger
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations. If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable configuration wrapper and starts
// watching the configuration file immediately. If cache implements
// ttlSetter (the Memory backend's engine does), TTL changes are applied
// live; otherwise only OnReload is notified.
//
// Supported configuration keys, under a top-level "cache" section:
//   - cache.max_size (int): reported via OnReload only, not applied live
//   - cache.ttl (duration string, e.g. "1h", "30m")
//   - cache.cleanup_interval (duration string)
//   - cache.strategy (string: "lru"|"mru"|"fifo"|"lfu"): reported only
func NewHotConfig(cache any, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	setter, _ := cache.(ttlSetter)

	hc := &HotConfig{
		OnReload: opts.OnReload,
		config:   DefaultConfig(),
		applyTo:  setter,
		logger:   opts.Logger,
	}

	argusConfig := argus.Config{PollInterval: opts.PollInterval}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the last-applied configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData)
	hc.config = newConfig
	hc.mu.Unlock()

	if hc.applyTo != nil && newConfig.TTL != oldConfig.TTL {
		hc.applyTo.SetTTL(newConfig.TTL.Seconds())
		hc.logger.Info("fastcache: TTL hot-reloaded", "old", oldConfig.TTL, "new", newConfig.TTL)
	}

	if newConfig.MaxSize != oldConfig.MaxSize || newConfig.Strategy != oldConfig.Strategy || newConfig.Backend != oldConfig.Backend {
		hc.logger.Warn("fastcache: config change requires cache reconstruction",
			"max_size_changed", newConfig.MaxSize != oldConfig.MaxSize,
			"strategy_changed", newConfig.Strategy != oldConfig.Strategy,
			"backend_changed", newConfig.Backend != oldConfig.Backend)
	}

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil {
			return d, true
		}
	}
	return 0, false
}

func parseStrategy(value interface{}) (Strategy, bool) {
	str, ok := value.(string)
	if !ok {
		return LRU, false
	}
	switch str {
	case "lru":
		return LRU, true
	case "mru":
		return MRU, true
	case "fifo":
		return FIFO, true
	case "lfu":
		return LFU, true
	default:
		return LRU, false
	}
}

// parseConfig extracts cache configuration from Argus config data,
// starting from the previously applied configuration so unset keys are
// left unchanged rather than reset to defaults.
func (hc *HotConfig) parseConfig(data map[string]interface{}) Config {
	config := hc.config

	cacheSection, ok := data["cache"].(map[string]interface{})
	if !ok {
		if _, hasMaxSize := data["max_size"]; hasMaxSize {
			cacheSection = data
		} else {
			return config
		}
	}

	if maxSize, ok := parsePositiveInt(cacheSection["max_size"]); ok {
		config.MaxSize = maxSize
	}
	if ttl, ok := parseDuration(cacheSection["ttl"]); ok {
		config.TTL = ttl
	}
	if interval, ok := parseDuration(cacheSection["cleanup_interval"]); ok {
		config.CleanupInterval = interval
	}
	if strategy, ok := parseStrategy(cacheSection["strategy"]); ok {
		config.Strategy = strategy
	}

	return config
}
