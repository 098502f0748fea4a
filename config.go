package queuectl

import (
	"context"
	"fmt"
	"strconv"
)

// Config keys consumed by the kernel. Unknown keys are ignored.
const (
	KeyMaxRetries         = "max_retries"
	KeyBackoffBase        = "backoff_base"
	KeyMaxBackoffSeconds  = "max_backoff_seconds"
	KeyLockLeaseSeconds   = "lock_lease_seconds"
	KeyJobTimeoutSeconds  = "job_timeout_seconds"
)

// defaultConfig holds the string-typed defaults applied when a key is
// absent from the config map.
var defaultConfig = map[string]string{
	KeyMaxRetries:        "3",
	KeyBackoffBase:       "2",
	KeyMaxBackoffSeconds: "300",
	KeyLockLeaseSeconds:  "300",
	KeyJobTimeoutSeconds: "3600",
}

// ConfigStore is the minimal string key/value persistence the Config
// surface needs. It is implemented by the store package against the
// same config table the kernel consults.
type ConfigStore interface {
	GetAllConfig(ctx context.Context) (map[string]string, error)
}

// Config is the fixed, enumerated record of the five kernel-tunable
// knobs, populated once at process startup from the store. This
// replaces consulting a dynamically-typed map on every call.
type Config struct {
	MaxRetries        uint32
	BackoffBase       int
	MaxBackoffSeconds int
	LockLeaseSeconds  int
	JobTimeoutSeconds int
}

// LoadConfig reads the config table via store, merges it with defaults
// for any absent key, and parses each value. A parse failure for a
// present key is treated as fatal and returned to the caller.
func LoadConfig(ctx context.Context, store ConfigStore) (*Config, error) {
	raw, err := store.GetAllConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	get := func(key string) (string, bool) {
		if v, ok := raw[key]; ok {
			return v, true
		}
		v, ok := defaultConfig[key]
		return v, ok
	}
	parseInt := func(key string) (int, error) {
		v, _ := get(key)
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("config key %q: %w", key, err)
		}
		return n, nil
	}

	maxRetries, err := parseInt(KeyMaxRetries)
	if err != nil {
		return nil, err
	}
	backoffBase, err := parseInt(KeyBackoffBase)
	if err != nil {
		return nil, err
	}
	maxBackoff, err := parseInt(KeyMaxBackoffSeconds)
	if err != nil {
		return nil, err
	}
	lockLease, err := parseInt(KeyLockLeaseSeconds)
	if err != nil {
		return nil, err
	}
	jobTimeout, err := parseInt(KeyJobTimeoutSeconds)
	if err != nil {
		return nil, err
	}

	return &Config{
		MaxRetries:        uint32(maxRetries),
		BackoffBase:       backoffBase,
		MaxBackoffSeconds: maxBackoff,
		LockLeaseSeconds:  lockLease,
		JobTimeoutSeconds: jobTimeout,
	}, nil
}
