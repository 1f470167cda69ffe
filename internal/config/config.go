// Package config carries the run configuration and its sources: built-in
// defaults, environment overrides, an optional YAML targets file and the
// command-line flags applied by the CLI layer.
package config

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Ddoupal/IPMonitor/internal/storage"
)

// Protocols supported for reachability checks.
const (
	ProtocolICMP = "icmp"
	ProtocolTCP  = "tcp"
)

// Built-in defaults matching the reference behavior.
const (
	DefaultInterval  = 100 * time.Millisecond
	DefaultTimeout   = 300 * time.Millisecond
	DefaultStorePath = "results.xml"
)

// Config is the full configuration for one probe run.
type Config struct {
	DurationSeconds int
	Targets         []string

	Interval   time.Duration
	Timeout    time.Duration
	Protocol   string
	Privileged bool

	StoreBackend string
	StorePath    string

	Log LogConfig
}

// LogConfig configures the diagnostics logger.
type LogConfig struct {
	Level string
	Path  string
}

// Load builds a config from defaults and environment variables. A .env
// file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Interval:     DefaultInterval,
		Timeout:      DefaultTimeout,
		Protocol:     getEnvString("IPMONITOR_PROTOCOL", ProtocolICMP),
		StoreBackend: getEnvString("IPMONITOR_STORE", storage.BackendXML),
		StorePath:    getEnvString("IPMONITOR_STORE_PATH", DefaultStorePath),
		Log: LogConfig{
			Level: getEnvString("IPMONITOR_LOG_LEVEL", "info"),
			Path:  getEnvString("IPMONITOR_LOG_FILE", ""),
		},
	}
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// TargetsFile is the YAML shape of a targets file.
type TargetsFile struct {
	DurationSeconds int      `yaml:"duration_seconds"`
	Targets         []string `yaml:"targets"`
	Protocol        string   `yaml:"protocol"`
}

// ApplyTargetsFile merges the YAML file at path into the config. Only
// fields present in the file override the current values.
func (c *Config) ApplyTargetsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read targets file: %w", err)
	}

	var tf TargetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parse targets file: %w", err)
	}

	if tf.DurationSeconds != 0 {
		c.DurationSeconds = tf.DurationSeconds
	}
	if len(tf.Targets) != 0 {
		c.Targets = tf.Targets
	}
	if tf.Protocol != "" {
		c.Protocol = tf.Protocol
	}
	return nil
}

// Duration returns the test duration as a time.Duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.DurationSeconds) * time.Second
}

// hostnameRegex matches syntactically valid DNS names: dot-separated
// labels of letters, digits and hyphens, not starting or ending with a
// hyphen.
var hostnameRegex = regexp.MustCompile(
	`^([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])(\.([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]{0,61}[a-zA-Z0-9]))*$`)

// ValidateDuration rejects non-positive durations.
func ValidateDuration(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("duration must be a positive number of seconds, got %d", seconds)
	}
	return nil
}

// ValidateTarget checks an address for syntactic validity: an IP address,
// a hostname, or either followed by an explicit port.
func ValidateTarget(target string) error {
	if target == "" {
		return fmt.Errorf("empty target address")
	}

	host := target
	if h, port, err := net.SplitHostPort(target); err == nil {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil || p == 0 {
			return fmt.Errorf("invalid target %q: port should be in 1..65535 range", target)
		}
		host = h
	}

	if _, err := netip.ParseAddr(host); err == nil {
		return nil
	}
	if hostnameRegex.MatchString(host) {
		return nil
	}
	return fmt.Errorf("invalid target address %q", target)
}

// Validate checks the whole config before a run starts.
func (c *Config) Validate() error {
	if err := ValidateDuration(c.DurationSeconds); err != nil {
		return err
	}

	if len(c.Targets) == 0 {
		return fmt.Errorf("no targets to probe")
	}
	for _, target := range c.Targets {
		if err := ValidateTarget(target); err != nil {
			return err
		}
	}

	if c.Protocol != ProtocolICMP && c.Protocol != ProtocolTCP {
		return fmt.Errorf("unknown protocol %q", c.Protocol)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("pacing interval must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}

	switch c.StoreBackend {
	case storage.BackendXML, storage.BackendCSV, storage.BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	return nil
}
