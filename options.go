package portal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://himanshumajithiya.com/api"
	DefaultTimeout = 30 * time.Second

	StoreMemory = "memory"
	StoreSecure = "secure"
	StoreRedis  = "redis"
)

// ClientOptions defines options for configuring a portal client.
type ClientOptions struct {
	BaseURL string        `yaml:"baseURL" json:"baseURL,omitempty" short:"u" long:"base-url" description:"portal API root"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" long:"timeout" description:"per call response timeout"`
	Auth    ClientAuth    `yaml:"auth,omitempty" json:"auth,omitempty" group:"auth"`
}

// ClientAuth defines credential storage and refresh options.
type ClientAuth struct {
	Store                string        `yaml:"store,omitempty" json:"store,omitempty" short:"s" long:"store" description:"credential store" choice:"memory" choice:"secure" choice:"redis"`
	StoreURL             string        `yaml:"storeURL,omitempty" json:"storeURL,omitempty" long:"store-url" description:"secure store location, any afs URL"`
	EncryptionKey        string        `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty" short:"k" long:"key" description:"encryption key"`
	RedisAddr            string        `yaml:"redisAddr,omitempty" json:"redisAddr,omitempty" long:"redis-addr" description:"redis address or redis:// URL"`
	RedisPrefix          string        `yaml:"redisPrefix,omitempty" json:"redisPrefix,omitempty" long:"redis-prefix" description:"redis key prefix"`
	RefreshTimeout       time.Duration `yaml:"refreshTimeout,omitempty" json:"refreshTimeout,omitempty" long:"refresh-timeout" description:"token refresh timeout"`
	RetainOnNetworkError bool          `yaml:"retainOnNetworkError,omitempty" json:"retainOnNetworkError,omitempty" long:"retain-on-network-error" description:"keep credentials when refresh fails on the network"`
}

// Init applies defaults.
func (c *ClientOptions) Init() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Auth.Store == "" {
		c.Auth.Store = StoreMemory
	}
	if c.Auth.RefreshTimeout <= 0 {
		c.Auth.RefreshTimeout = DefaultTimeout
	}
}

// Validate checks the store configuration.
func (c *ClientOptions) Validate() error {
	switch c.Auth.Store {
	case StoreMemory:
	case StoreSecure:
		if c.Auth.StoreURL == "" {
			return fmt.Errorf("storeURL is required for %s store", StoreSecure)
		}
	case StoreRedis:
		if c.Auth.RedisAddr == "" {
			return fmt.Errorf("redisAddr is required for %s store", StoreRedis)
		}
	default:
		return fmt.Errorf("unsupported store: %q", c.Auth.Store)
	}
	return nil
}

// LoadOptions reads YAML options from URL (any afs scheme) when URL is not
// empty, overlays PORTAL_* environment variables and applies defaults.
func LoadOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	ret := &ClientOptions{}
	if err := ret.Load(ctx, URL); err != nil {
		return nil, err
	}
	return ret, nil
}

// Load is LoadOptions on top of values already set on c; the file and the
// environment override them.
func (c *ClientOptions) Load(ctx context.Context, URL string) error {
	if URL != "" {
		data, err := afs.New().DownloadWithURL(ctx, URL)
		if err != nil {
			return fmt.Errorf("failed to load options %v: %w", URL, err)
		}
		if err = yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to decode options %v: %w", URL, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return err
	}
	c.Init()
	return c.Validate()
}

func (c *ClientOptions) applyEnv() error {
	c.BaseURL = GetEnv("PORTAL_BASE_URL", c.BaseURL)
	c.Auth.Store = GetEnv("PORTAL_STORE", c.Auth.Store)
	c.Auth.StoreURL = GetEnv("PORTAL_STORE_URL", c.Auth.StoreURL)
	c.Auth.EncryptionKey = GetEnv("PORTAL_ENCRYPTION_KEY", c.Auth.EncryptionKey)
	c.Auth.RedisAddr = GetEnv("PORTAL_REDIS_ADDR", c.Auth.RedisAddr)
	if timeout := GetEnv("PORTAL_TIMEOUT", ""); timeout != "" {
		value, err := parseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_TIMEOUT: %w", err)
		}
		c.Timeout = value
	}
	return nil
}

// parseDuration accepts Go durations ("45s") and bare seconds ("45").
func parseDuration(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}

// GetEnv returns the environment variable or defaultValue when unset or empty.
func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
