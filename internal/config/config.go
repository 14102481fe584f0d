// Package config loads era settings. Sources apply in order: defaults, an
// optional YAML file, ERA_* environment variables, then command line flags
// bound by the caller. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/era/internal/breath"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TimingConfig mirrors breath.Timing in file and env friendly units.
type TimingConfig struct {
	InhaleSec      float64 `yaml:"inhale_sec" validate:"gte=0,lte=60"`
	HoldSec        float64 `yaml:"hold_sec" validate:"gte=0,lte=60"`
	ExhaleSec      float64 `yaml:"exhale_sec" validate:"gte=0,lte=60"`
	GapSec         float64 `yaml:"gap_sec" validate:"gte=0,lte=10"`
	Beats          int     `yaml:"beats" validate:"gte=1,lte=16"`
	PulseAmplitude float64 `yaml:"pulse_amplitude" validate:"gte=0,lte=0.5"`
	PulseCycles    int     `yaml:"pulse_cycles" validate:"gte=0,lte=20"`
	FrameMs        int     `yaml:"frame_ms" validate:"gte=0,lte=1000"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
	// RateLimit is the sustained request rate per second for the API.
	RateLimit float64 `yaml:"rate_limit" validate:"gt=0"`
	Burst     int     `yaml:"burst" validate:"gte=1"`
}

type Config struct {
	DBPath string `yaml:"db_path" validate:"required_without=DatabaseURL"`
	// DatabaseURL selects Postgres instead of the local SQLite file.
	DatabaseURL string `yaml:"database_url" validate:"omitempty,url"`

	// FreeSessionQuota is how many completed sessions are allowed without a
	// subscription. -1 disables the limit.
	FreeSessionQuota int  `yaml:"free_session_quota" validate:"gte=-1"`
	Pro              bool `yaml:"pro"`

	Timezone    string `yaml:"timezone" validate:"omitempty,timezone"`
	LogUseCases bool   `yaml:"log_use_cases"`

	Timing TimingConfig `yaml:"timing"`
	Server ServerConfig `yaml:"server"`
}

var validate = validator.New()

func DefaultConfig() Config {
	t := breath.DefaultTiming()
	return Config{
		FreeSessionQuota: -1,
		Timing: TimingConfig{
			InhaleSec:      t.Inhale.Seconds(),
			HoldSec:        t.Hold.Seconds(),
			ExhaleSec:      t.Exhale.Seconds(),
			GapSec:         t.Gap.Seconds(),
			Beats:          t.Beats,
			PulseAmplitude: t.PulseAmplitude,
			PulseCycles:    t.PulseCycles,
			FrameMs:        int(t.FrameInterval / time.Millisecond),
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8787",
			RateLimit: 10,
			Burst:     20,
		},
	}
}

// Load builds the configuration from defaults, the config file and the
// environment. The file is ERA_CONFIG when set, else ~/.era/config.yaml;
// a missing default file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	home, _ := os.UserHomeDir()
	path := os.Getenv("ERA_CONFIG")
	explicit := path != ""
	if !explicit && home != "" {
		path = filepath.Join(home, ".era", "config.yaml")
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}

	ApplyEnv(&cfg)

	if cfg.DBPath == "" && cfg.DatabaseURL == "" && home != "" {
		cfg.DBPath = filepath.Join(home, ".era", "era.db")
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are
// rejected.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from ERA_* variables. Unparseable values are
// ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("ERA_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ERA_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("ERA_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ERA_FREE_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FreeSessionQuota = n
		}
	}
	applyBool("ERA_PRO", &cfg.Pro)
	applyBool("ERA_LOG_USE_CASES", &cfg.LogUseCases)

	applyFloat("ERA_INHALE_SEC", &cfg.Timing.InhaleSec)
	applyFloat("ERA_HOLD_SEC", &cfg.Timing.HoldSec)
	applyFloat("ERA_EXHALE_SEC", &cfg.Timing.ExhaleSec)
	applyFloat("ERA_GAP_SEC", &cfg.Timing.GapSec)
	applyInt("ERA_BEATS", &cfg.Timing.Beats)

	if v := os.Getenv("ERA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	applyFloat("ERA_RATE_LIMIT", &cfg.Server.RateLimit)
	applyInt("ERA_RATE_BURST", &cfg.Server.Burst)
}

func applyBool(name string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func applyFloat(name string, dst *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func applyInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks a timing section on its own, for per-run flag overrides.
func (t TimingConfig) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid timing: %w", err)
	}
	return nil
}

// BreathTiming converts the timing section for the sequencer.
func (c Config) BreathTiming() breath.Timing {
	return breath.Timing{
		Inhale:         seconds(c.Timing.InhaleSec),
		Hold:           seconds(c.Timing.HoldSec),
		Exhale:         seconds(c.Timing.ExhaleSec),
		Gap:            seconds(c.Timing.GapSec),
		Beats:          c.Timing.Beats,
		PulseAmplitude: c.Timing.PulseAmplitude,
		PulseCycles:    c.Timing.PulseCycles,
		FrameInterval:  time.Duration(c.Timing.FrameMs) * time.Millisecond,
	}
}

// Location is the zone used for calendar windows. Empty means local time.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
