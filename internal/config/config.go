package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения (CONSOLE_LISTEN_ADDR и т.д.)
const EnvPrefix = "CONSOLE"

// Config конфигурация сервера realm
type Config struct {
	ListenAddr           string        `mapstructure:"listen_addr"`
	DBPath               string        `mapstructure:"db_path"`
	LogLevel             string        `mapstructure:"log_level"`
	LogFormat            string        `mapstructure:"log_format"`
	AdminUsername        string        `mapstructure:"admin_username"`
	AdminPassword        string        `mapstructure:"admin_password"`
	TrustedProxies       []string      `mapstructure:"trusted_proxies"`
	RateLimit            int           `mapstructure:"rate_limit"`
	RateWindow           time.Duration `mapstructure:"rate_window"`
	ReadTimeout          time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
	TokenCleanupInterval time.Duration `mapstructure:"token_cleanup_interval"`
	ShowVersion          bool          `mapstructure:"version"`
}

// flagSpec описывает флаг командной строки и соответствующий ключ viper
type flagSpec struct {
	def   any
	flag  string
	key   string
	usage string
}

var flags = []flagSpec{
	{flag: "listen-addr", key: "listen_addr", def: ":8080", usage: "HTTP listen address"},
	{flag: "db-path", key: "db_path", def: "console.db", usage: "path to the SQLite database"},
	{flag: "log-level", key: "log_level", def: "info", usage: "log level (debug, info, warn, error)"},
	{flag: "log-format", key: "log_format", def: "text", usage: "log format (text, json)"},
	{flag: "admin-username", key: "admin_username", def: "", usage: "bootstrap admin username"},
	{flag: "admin-password", key: "admin_password", def: "", usage: "bootstrap admin password"},
	{flag: "rate-limit", key: "rate_limit", def: 100, usage: "max requests per client IP per window"},
	{flag: "trusted-proxies", key: "trusted_proxies", def: []string{}, usage: "comma-separated proxy IPs/CIDRs whose X-Forwarded-For is honoured"},
	{flag: "rate-window", key: "rate_window", def: time.Minute, usage: "rate limit window"},
	{flag: "read-timeout", key: "read_timeout", def: 10 * time.Second, usage: "HTTP read timeout"},
	{flag: "shutdown-timeout", key: "shutdown_timeout", def: 15 * time.Second, usage: "graceful shutdown timeout"},
	{flag: "token-cleanup-interval", key: "token_cleanup_interval", def: time.Hour, usage: "interval of expired access token cleanup (0 disables)"},
	{flag: "version", key: "version", def: false, usage: "show version information"},
}

// Load собирает конфигурацию: значения по умолчанию, .env, переменные окружения
// CONSOLE_*, затем флаги командной строки (наивысший приоритет).
// При -h/--help возвращает pflag.ErrHelp.
func Load(args []string) (*Config, error) {
	// .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	fs := pflag.NewFlagSet("console-server", pflag.ContinueOnError)
	for _, f := range flags {
		switch def := f.def.(type) {
		case string:
			fs.String(f.flag, def, f.usage)
		case int:
			fs.Int(f.flag, def, f.usage)
		case time.Duration:
			fs.Duration(f.flag, def, f.usage)
		case bool:
			fs.Bool(f.flag, def, f.usage)
		case []string:
			fs.StringSlice(f.flag, def, f.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, f := range flags {
		v.SetDefault(f.key, f.def)
		if err := v.BindPFlag(f.key, fs.Lookup(f.flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", f.flag, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return errors.New("rate window must be positive")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	if c.TokenCleanupInterval < 0 {
		return errors.New("token cleanup interval must not be negative")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("admin username and password must be set together")
	}
	return nil
}

// TrustedProxyPrefixes разбирает TrustedProxies. Одиночный адрес
// превращается в префикс из одного хоста.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// SlogLevel разбирает LogLevel в slog.Level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// String реализует интерфейс Stringer, пароль маскируется
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ListenAddr: %s\n", c.ListenAddr))
	sb.WriteString(fmt.Sprintf("  DBPath: %s\n", c.DBPath))
	sb.WriteString(fmt.Sprintf("  LogLevel: %s\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("  LogFormat: %s\n", c.LogFormat))
	sb.WriteString(fmt.Sprintf("  AdminUsername: %s\n", c.AdminUsername))
	if c.AdminPassword != "" {
		sb.WriteString("  AdminPassword: ********\n")
	} else {
		sb.WriteString("  AdminPassword: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  RateLimit: %d per %s\n", c.RateLimit, c.RateWindow))
	sb.WriteString(fmt.Sprintf("  TrustedProxies: %s\n", strings.Join(c.TrustedProxies, ",")))
	sb.WriteString(fmt.Sprintf("  ReadTimeout: %s\n", c.ReadTimeout))
	sb.WriteString(fmt.Sprintf("  ShutdownTimeout: %s\n", c.ShutdownTimeout))
	sb.WriteString(fmt.Sprintf("  TokenCleanupInterval: %s\n", c.TokenCleanupInterval))
	return sb.String()
}
