package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/disersoft-code/traductor-pmv/internal/util"
)

type Config struct {
	SNMP          SNMPConfig          `yaml:"snmp"`
	HTTP          HTTPConfig          `yaml:"http"`
	MQTT          MQTTConfig          `yaml:"mqtt"`
	HomeAssistant HomeAssistantConfig `yaml:"homeassistant"`
	Signs         []SignConfig        `yaml:"signs"`
	PollInterval  int                 `yaml:"poll_interval"`
	Timezone      string              `yaml:"timezone"`
	Log           string              `yaml:"log"`
}

// SNMPConfig holds the transport settings used for every sign.
// Timeout is in milliseconds. A nil Retries selects the default; 0
// disables retries.
type SNMPConfig struct {
	Community string `yaml:"community"`
	Port      int    `yaml:"port"`
	Timeout   int    `yaml:"timeout"`
	Retries   *int   `yaml:"retries"`
}

// RetryCount is the number of retries after the first attempt.
func (c SNMPConfig) RetryCount() int {
	if c.Retries == nil {
		return 0
	}
	return *c.Retries
}

type HTTPConfig struct {
	Listen       string `yaml:"listen"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
	JWTSecret    string `yaml:"jwt_secret"`
	ReadRole     string `yaml:"read_role"`
	WriteRole    string `yaml:"write_role"`
}

type MQTTConfig struct {
	Enabled   bool   `yaml:"enabled"`
	ClientID  string `yaml:"client_id"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Keepalive int    `yaml:"keepalive"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	QOS       int    `yaml:"qos"`
	Retain    bool   `yaml:"retain"`
	Prefix    string `yaml:"prefix"`
	Clean     bool   `yaml:"clean"`
}

type HomeAssistantConfig struct {
	Discovery bool   `yaml:"discovery"`
	Prefix    string `yaml:"prefix"`
}

// SignConfig names a sign that the MQTT bridge polls and accepts commands for.
type SignConfig struct {
	Name string `yaml:"name"`
	IP   string `yaml:"ip"`
}

func LoadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, fills defaults and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	setDefaults(&config)
	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(config *Config) {
	if config.SNMP.Community == "" {
		config.SNMP.Community = "public"
	}
	if config.SNMP.Port == 0 {
		config.SNMP.Port = 161
	}
	if config.SNMP.Timeout == 0 {
		config.SNMP.Timeout = 9520
	}
	if config.SNMP.Retries == nil {
		retries := 1
		config.SNMP.Retries = &retries
	}
	if config.HTTP.Listen == "" {
		config.HTTP.Listen = ":8080"
	}
	if config.HTTP.ReadTimeout == 0 {
		config.HTTP.ReadTimeout = 30
	}
	// Graphic uploads make eight sequential round trips, so the write
	// timeout has to cover several SNMP timeouts.
	if config.HTTP.WriteTimeout == 0 {
		config.HTTP.WriteTimeout = 120
	}
	if config.HTTP.ReadRole == "" {
		config.HTTP.ReadRole = "read"
	}
	if config.HTTP.WriteRole == "" {
		config.HTTP.WriteRole = "write"
	}
	if config.MQTT.ClientID == "" {
		config.MQTT.ClientID = "traductor-pmv"
	}
	if config.MQTT.Host == "" {
		config.MQTT.Host = "localhost"
	}
	if config.MQTT.Port == 0 {
		config.MQTT.Port = 1883
	}
	if config.MQTT.Keepalive == 0 {
		config.MQTT.Keepalive = 60
	}
	if config.MQTT.Prefix == "" {
		config.MQTT.Prefix = "traductor-pmv"
	}
	if config.HomeAssistant.Prefix == "" {
		config.HomeAssistant.Prefix = "homeassistant"
	}
	if config.PollInterval == 0 {
		config.PollInterval = 60
	}
	if config.Log == "" {
		config.Log = "info"
	}
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("TRADUCTOR_SNMP_COMMUNITY"); v != "" {
		config.SNMP.Community = v
	}
	if v := os.Getenv("TRADUCTOR_HTTP_LISTEN"); v != "" {
		config.HTTP.Listen = v
	}
	if v := os.Getenv("TRADUCTOR_JWT_SECRET"); v != "" {
		config.HTTP.JWTSecret = v
	}
	if v := os.Getenv("TRADUCTOR_MQTT_HOST"); v != "" {
		config.MQTT.Host = v
	}
	if v := os.Getenv("TRADUCTOR_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.MQTT.Port = port
		}
	}
	if v := os.Getenv("TRADUCTOR_MQTT_USERNAME"); v != "" {
		config.MQTT.Username = v
	}
	if v := os.Getenv("TRADUCTOR_MQTT_PASSWORD"); v != "" {
		config.MQTT.Password = v
	}
	if v := os.Getenv("TRADUCTOR_TIMEZONE"); v != "" {
		config.Timezone = v
	}
	if v := os.Getenv("TRADUCTOR_LOG"); v != "" {
		config.Log = v
	}
}

// Location is the zone sign clocks and schedules are rendered in. An empty
// timezone means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate checks the loaded configuration without modifying it and
// reports every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.SNMP.Port < 1 || c.SNMP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("snmp.port %d out of range", c.SNMP.Port))
	}
	if c.SNMP.Timeout < 0 {
		errs = append(errs, "snmp.timeout must not be negative")
	}
	if c.SNMP.RetryCount() < 0 {
		errs = append(errs, "snmp.retries must not be negative")
	}
	if c.MQTT.QOS < 0 || c.MQTT.QOS > 2 {
		errs = append(errs, fmt.Sprintf("mqtt.qos %d must be 0, 1 or 2", c.MQTT.QOS))
	}
	if c.HTTP.JWTSecret != "" && len(c.HTTP.JWTSecret) < 32 {
		errs = append(errs, "http.jwt_secret must be at least 32 characters")
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("timezone %q: %v", c.Timezone, err))
	}
	if c.PollInterval < 0 {
		errs = append(errs, "poll_interval must not be negative")
	}

	seen := make(map[string]bool)
	slugs := make(map[string]string)
	for i, sign := range c.Signs {
		if sign.Name == "" {
			errs = append(errs, fmt.Sprintf("signs[%d].name is required", i))
		}
		ip := net.ParseIP(sign.IP)
		if ip == nil || ip.To4() == nil {
			errs = append(errs, fmt.Sprintf("signs[%d].ip %q is not an IPv4 address", i, sign.IP))
		}
		if seen[sign.Name] {
			errs = append(errs, fmt.Sprintf("signs[%d].name %q is duplicated", i, sign.Name))
		}
		seen[sign.Name] = true

		slug := util.Slugify(sign.Name)
		if other, ok := slugs[slug]; ok && other != sign.Name {
			errs = append(errs, fmt.Sprintf("signs[%d].name %q shares topic %q with %q", i, sign.Name, slug, other))
		}
		if sign.Name != "" && slug == "" {
			errs = append(errs, fmt.Sprintf("signs[%d].name %q has no topic-safe characters", i, sign.Name))
		}
		slugs[slug] = sign.Name
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
