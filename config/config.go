package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"status-leds/animation"
)

// Monitor kinds
const (
	MonitorNone      = "none"
	MonitorIncidents = "incidents"
	MonitorGitHub    = "github"
)

// Config is the on-disk configuration
type Config struct {
	LogLevel         string            `yaml:"log_level"`
	TickRate         float64           `yaml:"tick_rate"` // ticks per second
	InitialAnimation string            `yaml:"initial_animation"`
	DryRun           bool              `yaml:"dry_run"`
	Serial           SerialConfig      `yaml:"serial"`
	HTTP             HTTPConfig        `yaml:"http"`
	Monitor          MonitorConfig     `yaml:"monitor"`
	Animations       []AnimationConfig `yaml:"animations"`
}

type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// HTTPConfig controls the switch API. An empty Addr disables it.
type HTTPConfig struct {
	Addr       string `yaml:"addr"`
	EnableCORS bool   `yaml:"enable_cors"`
}

type MonitorConfig struct {
	Kind              string        `yaml:"kind"`
	Interval          time.Duration `yaml:"interval"`
	ConnectivityURL   string        `yaml:"connectivity_url"`
	IncidentsURL      string        `yaml:"incidents_url"`
	GitHub            GitHubConfig  `yaml:"github"`
	NotifyURL         string        `yaml:"notify_url"`         // push endpoint for startup and change messages; empty disables
	HeartbeatURL      string        `yaml:"heartbeat_url"`      // liveness ping endpoint; empty disables
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
}

type GitHubConfig struct {
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	Workflow string `yaml:"workflow"`
	Branch   string `yaml:"branch"`
	TokenEnv string `yaml:"token_env"`
}

// AnimationConfig defines an animation added to, or replacing, the presets
type AnimationConfig struct {
	Name     string          `yaml:"name"`
	Unit     string          `yaml:"unit"`
	Loop     *bool           `yaml:"loop"`
	Channels []ChannelConfig `yaml:"channels"`
}

type ChannelConfig struct {
	Stages    []int     `yaml:"stages"`
	Durations []float64 `yaml:"durations"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		TickRate:         100,
		InitialAnimation: animation.Off,
		Serial: SerialConfig{
			Port: "/dev/ttyUSB0",
			Baud: 115200,
		},
		HTTP: HTTPConfig{
			Addr:       ":8080",
			EnableCORS: true,
		},
		Monitor: MonitorConfig{
			Kind:            MonitorNone,
			Interval:        5 * time.Second,
			ConnectivityURL:   "https://www.google.com",
			HeartbeatInterval: 5 * time.Minute,
			GitHub: GitHubConfig{
				TokenEnv: "GITHUB_TOKEN",
			},
		},
	}
}

// Override adjusts a loaded configuration before it is validated
type Override func(*Config)

// Load reads a YAML file on top of Default, applies overrides (command-line
// flags) and validates the result. An empty path starts from Default.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that do not depend on the catalog
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", c.TickRate)
	}
	if c.InitialAnimation == "" {
		return fmt.Errorf("initial_animation cannot be empty")
	}
	if !c.DryRun {
		if c.Serial.Port == "" {
			return fmt.Errorf("serial.port cannot be empty")
		}
		if c.Serial.Baud <= 0 {
			return fmt.Errorf("serial.baud must be positive, got %d", c.Serial.Baud)
		}
	}

	switch c.Monitor.Kind {
	case "", MonitorNone:
	case MonitorIncidents:
		if c.Monitor.IncidentsURL == "" {
			return fmt.Errorf("monitor.incidents_url is required for the incidents monitor")
		}
	case MonitorGitHub:
		gh := c.Monitor.GitHub
		if gh.Owner == "" || gh.Repo == "" {
			return fmt.Errorf("monitor.github.owner and monitor.github.repo are required")
		}
	default:
		return fmt.Errorf("unknown monitor kind: %s", c.Monitor.Kind)
	}
	if c.MonitorEnabled() && c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %s", c.Monitor.Interval)
	}
	if c.Monitor.HeartbeatURL != "" && c.Monitor.HeartbeatInterval <= 0 {
		return fmt.Errorf("monitor.heartbeat_interval must be positive, got %s", c.Monitor.HeartbeatInterval)
	}
	return nil
}

func (c *Config) MonitorEnabled() bool {
	return c.Monitor.Kind != "" && c.Monitor.Kind != MonitorNone
}

// Catalog builds the animation catalog: the presets plus the configured
// animations, which replace presets of the same name.
func (c *Config) Catalog() (*animation.Catalog, error) {
	templates := make([]animation.Template, 0, len(c.Animations))
	for i, a := range c.Animations {
		t, err := a.Template()
		if err != nil {
			return nil, fmt.Errorf("animations[%d]: %w", i, err)
		}
		templates = append(templates, t)
	}

	catalog, err := animation.DefaultCatalog().With(templates...)
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.Lookup(c.InitialAnimation); !ok {
		return nil, fmt.Errorf("initial_animation: %w: %q", animation.ErrUnknownAnimation, c.InitialAnimation)
	}
	return catalog, nil
}

// Template converts the definition into an immutable animation template
func (a AnimationConfig) Template() (animation.Template, error) {
	if a.Name == "" {
		return animation.Template{}, fmt.Errorf("animation name cannot be empty")
	}
	unit, err := animation.ParseUnit(a.Unit)
	if err != nil {
		return animation.Template{}, fmt.Errorf("%s: %w", a.Name, err)
	}
	loop := true
	if a.Loop != nil {
		loop = *a.Loop
	}

	patterns := make([]animation.Pattern, 0, len(a.Channels))
	for i, ch := range a.Channels {
		p, err := animation.NewPattern(fmt.Sprintf("%s[%d]", a.Name, i), ch.Stages, ch.Durations, loop, unit)
		if err != nil {
			return animation.Template{}, err
		}
		patterns = append(patterns, p)
	}
	return animation.NewTemplate(a.Name, patterns...)
}
