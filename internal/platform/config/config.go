package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CompatChange describes the rollout state of one compatibility change.
// A change applies to a caller when its package is not explicitly opted out,
// and either the package is explicitly opted in or the caller's target SDK
// meets MinTargetSdk with the change enabled by default.
type CompatChange struct {
	DefaultEnabled   bool     `mapstructure:"default_enabled"`
	MinTargetSdk     int      `mapstructure:"min_target_sdk"`
	EnabledPackages  []string `mapstructure:"enabled_packages"`
	DisabledPackages []string `mapstructure:"disabled_packages"`
}

// Config holds all configuration for the SMS admission service.
type Config struct {
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	HTTPPort    int    `mapstructure:"HTTP_PORT"`
	PostgresDSN string `mapstructure:"POSTGRES_DSN"`
	NATSUrl     string `mapstructure:"NATS_URL"`
	// RedisAddr selects the Redis-backed WAP push size cache when set;
	// empty keeps the default in-process cache.
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	// CallerTokenSecret verifies the platform-issued caller identity tokens
	// presented on the HTTP surface.
	CallerTokenSecret string `mapstructure:"CALLER_TOKEN_SECRET"`

	SimProfileSnapshotSubject string `mapstructure:"SIM_PROFILE_SNAPSHOT_SUBJECT"`
	RadioEcmStateSubject      string `mapstructure:"RADIO_ECM_STATE_SUBJECT"`
	RadioDispatchSubject      string `mapstructure:"RADIO_DISPATCH_SUBJECT"`

	EmergencyNumbers []string `mapstructure:"EMERGENCY_NUMBERS"`
	PlatformFeatures []string `mapstructure:"PLATFORM_FEATURES"`

	CompatChanges map[string]CompatChange `mapstructure:"COMPAT_CHANGES"`
}

// Manager loads the configuration and notifies subscribers when the backing
// file changes on disk. Only the compat-change section is expected to change
// at runtime; everything else is read once at startup.
type Manager struct {
	v *viper.Viper

	mu      sync.RWMutex
	current *Config
	onReload []func(*Config)
}

// Load reads configuration from the given path/name, layered under
// APP_-prefixed environment variables.
func Load(configPath, configName string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 8085)
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CALLER_TOKEN_SECRET", "caller-token-secret-must-be-overridden-in-prod")
	v.SetDefault("SIM_PROFILE_SNAPSHOT_SUBJECT", "sim.profile.snapshot")
	v.SetDefault("RADIO_ECM_STATE_SUBJECT", "radio.ecm.state")
	v.SetDefault("RADIO_DISPATCH_SUBJECT", "radio.sms.dispatch")
	v.SetDefault("EMERGENCY_NUMBERS", []string{"112", "911"})
	v.SetDefault("PLATFORM_FEATURES", []string{"hardware.telephony", "hardware.telephony.messaging"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		// Missing file is fine; defaults and env vars still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &Manager{v: v, current: &cfg}, nil
}

// Current returns the most recently loaded configuration.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnReload registers a callback invoked with the fresh configuration after a
// successful reload. Register before calling Watch.
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReload = append(m.onReload, fn)
}

// Watch re-reads the configuration whenever the backing file changes.
// A reload that fails to unmarshal keeps the previous configuration.
func (m *Manager) Watch(logger *slog.Logger) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := m.v.Unmarshal(&cfg); err != nil {
			logger.Error("Config reload failed; keeping previous configuration", "file", e.Name, "error", err)
			return
		}

		m.mu.Lock()
		m.current = &cfg
		callbacks := make([]func(*Config), len(m.onReload))
		copy(callbacks, m.onReload)
		m.mu.Unlock()

		logger.Info("Configuration reloaded", "file", e.Name, "op", e.Op.String())
		for _, fn := range callbacks {
			fn(&cfg)
		}
	})
	m.v.WatchConfig()
}
