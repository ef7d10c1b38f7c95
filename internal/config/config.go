package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/poofware/buyer-leads-service/internal/utils"
)

type Config struct {
	AppName     string
	Env         string
	AppPort     string
	AppUrl      string
	DatabaseURL string
	RedisURL    string

	RateLimitWindow        time.Duration
	RateLimitMaxRequests   int
	RateLimitSweepSchedule string

	ImportMaxRows int

	// Feature-flag snapshots (env defaults, LaunchDarkly overrides when configured)
	LDFlag_ImportAuditEnabled bool
	LDFlag_CORSHighSecurity   bool

	LDSDKKey string
}

const (
	DefaultAppName      = "buyer-leads-service"
	LDConnectionTimeout = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  = "buyer-leads-service"
	LDServerContextKind = "service"
)

func init() {
	if AppName == "" {
		AppName = DefaultAppName
	}
}

// LoadConfig reads .env (if present) and the process environment, then
// resolves feature flags. Any problem is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Logger.WithError(err).Warn("Could not read .env file")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if cfg.LDSDKKey != "" {
		if err := cfg.loadFlags(); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to resolve LaunchDarkly flags")
		}
	} else {
		utils.Logger.Debug("LD_SDK_KEY not set; using env defaults for feature flags")
	}

	utils.Logger.Infof("Loaded config for %s (%s)", cfg.AppName, cfg.Env)
	return cfg
}

// FromEnv builds a Config from a lookup function so tests can inject values.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		AppName:                AppName,
		Env:                    get("ENV", "dev"),
		AppPort:                get("APP_PORT", "8080"),
		AppUrl:                 get("APP_URL_FROM_ANYWHERE", "http://localhost:3000"),
		DatabaseURL:            get("DATABASE_URL", ""),
		RedisURL:               get("REDIS_URL", ""),
		RateLimitSweepSchedule: get("RATE_LIMIT_SWEEP_SCHEDULE", "@every 5m"),
		LDSDKKey:               get("LD_SDK_KEY", ""),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL env var is missing")
	}

	var err error
	if cfg.RateLimitWindow, err = time.ParseDuration(get("RATE_LIMIT_WINDOW", "60s")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW: %w", err)
	}
	if cfg.RateLimitMaxRequests, err = strconv.Atoi(get("RATE_LIMIT_MAX", "10")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_MAX: %w", err)
	}
	if cfg.ImportMaxRows, err = strconv.Atoi(get("IMPORT_MAX_ROWS", "200")); err != nil {
		return nil, fmt.Errorf("IMPORT_MAX_ROWS: %w", err)
	}
	if cfg.LDFlag_ImportAuditEnabled, err = strconv.ParseBool(get("IMPORT_AUDIT_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("IMPORT_AUDIT_ENABLED: %w", err)
	}
	if cfg.LDFlag_CORSHighSecurity, err = strconv.ParseBool(get("CORS_HIGH_SECURITY", "false")); err != nil {
		return nil, fmt.Errorf("CORS_HIGH_SECURITY: %w", err)
	}

	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if cfg.RateLimitMaxRequests < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be at least 1")
	}
	if cfg.ImportMaxRows < 1 {
		return nil, fmt.Errorf("IMPORT_MAX_ROWS must be at least 1")
	}

	return cfg, nil
}

func (c *Config) loadFlags() error {
	ldClient, err := ld.MakeClient(c.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()

	if !ldClient.Initialized() {
		return fmt.Errorf("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	importAudit, err := ldClient.BoolVariation("import_audit_enabled", ctx, c.LDFlag_ImportAuditEnabled)
	if err != nil {
		return fmt.Errorf("import_audit_enabled flag: %w", err)
	}
	utils.Logger.Debugf("import_audit_enabled flag: %t", importAudit)

	corsHigh, err := ldClient.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity)
	if err != nil {
		return fmt.Errorf("cors_high_security flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHigh)

	c.LDFlag_ImportAuditEnabled = importAudit
	c.LDFlag_CORSHighSecurity = corsHigh
	return nil
}
