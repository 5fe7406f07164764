package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Profile is a calibration choice as stored in the config file.
type Profile struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	PixelsPerInch float64 `json:"pixels_per_inch"`
}

// Config holds runtime configuration for sizing, capture and the shell.
// Fields are loaded from a JSON file and then overridden by WALLPREVIEW_*
// environment variables.
type Config struct {
	Debug bool `json:"debug" env:"WALLPREVIEW_DEBUG"`

	// Sizing
	ScaleMode       string    `json:"scale_mode" env:"WALLPREVIEW_SCALE_MODE"`
	ReferencePixels float64   `json:"reference_pixels" env:"WALLPREVIEW_REFERENCE_PIXELS"`
	ReferenceInches float64   `json:"reference_inches" env:"WALLPREVIEW_REFERENCE_INCHES"`
	CalibrationStep bool      `json:"calibration_step" env:"WALLPREVIEW_CALIBRATION_STEP"`
	DefaultProfile  string    `json:"default_profile" env:"WALLPREVIEW_DEFAULT_PROFILE"`
	Profiles        []Profile `json:"profiles"`
	DefaultSize     string    `json:"default_size" env:"WALLPREVIEW_DEFAULT_SIZE"`
	CatalogPath     string    `json:"catalog_path" env:"WALLPREVIEW_CATALOG"`

	// Capture
	Backend        string `json:"backend" env:"WALLPREVIEW_BACKEND"`
	Facing         string `json:"facing" env:"WALLPREVIEW_FACING"`
	CameraIndex    int    `json:"camera_index" env:"WALLPREVIEW_CAMERA_INDEX"`
	IdealWidth     int    `json:"ideal_width" env:"WALLPREVIEW_IDEAL_WIDTH"`
	IdealHeight    int    `json:"ideal_height" env:"WALLPREVIEW_IDEAL_HEIGHT"`
	ReadyTimeoutMs int    `json:"ready_timeout_ms" env:"WALLPREVIEW_READY_TIMEOUT_MS"`
	MirrorFront    bool   `json:"mirror_front" env:"WALLPREVIEW_MIRROR_FRONT"`

	// Shell
	ExitTo        string `json:"exit_to" env:"WALLPREVIEW_EXIT_TO"`
	ShopURL       string `json:"shop_url" env:"WALLPREVIEW_SHOP_URL"`
	SurfaceWidth  int    `json:"surface_width" env:"WALLPREVIEW_SURFACE_WIDTH"`
	SurfaceHeight int    `json:"surface_height" env:"WALLPREVIEW_SURFACE_HEIGHT"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		ScaleMode:       sizing.PolicyFixedReference.String(),
		ReferencePixels: sizing.DefaultReferencePixels,
		ReferenceInches: sizing.DefaultReferenceInches,
		CalibrationStep: false,
		DefaultProfile:  "arms-length",
		Profiles:        profilesFrom(sizing.DefaultProfiles()),
		DefaultSize:     "16x20",
		Backend:         "screen",
		Facing:          "environment",
		CameraIndex:     0,
		IdealWidth:      1280,
		IdealHeight:     720,
		ReadyTimeoutMs:  1500,
		MirrorFront:     true,
		ExitTo:          "preview",
		ShopURL:         "https://ikonhaus.com",
		SurfaceWidth:    960,
		SurfaceHeight:   540,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.ScaleMode = sizing.ParsePolicy(c.ScaleMode).String()
	if c.ReferencePixels <= 0 {
		c.ReferencePixels = sizing.DefaultReferencePixels
	}
	if c.ReferenceInches <= 0 {
		c.ReferenceInches = sizing.DefaultReferenceInches
	}
	kept := c.Profiles[:0]
	for _, p := range c.Profiles {
		if p.ID == "" || p.PixelsPerInch <= 0 {
			continue
		}
		if p.Label == "" {
			p.Label = p.ID
		}
		kept = append(kept, p)
	}
	c.Profiles = kept
	if len(c.Profiles) == 0 {
		c.Profiles = profilesFrom(sizing.DefaultProfiles())
	}
	if _, ok := sizing.FindProfile(c.CalibrationProfiles(), c.DefaultProfile); !ok {
		c.DefaultProfile = c.Profiles[0].ID
	}
	switch b := strings.ToLower(strings.TrimSpace(c.Backend)); b {
	case "screen", "camera":
		c.Backend = b
	default:
		c.Backend = "screen"
	}
	if f := strings.ToLower(c.Facing); f != "user" && f != "front" {
		c.Facing = "environment"
	} else {
		c.Facing = "user"
	}
	if c.CameraIndex < 0 {
		c.CameraIndex = 0
	}
	if c.IdealWidth <= 0 || c.IdealHeight <= 0 {
		c.IdealWidth, c.IdealHeight = 1280, 720
	}
	if c.ReadyTimeoutMs <= 0 {
		c.ReadyTimeoutMs = 1500
	}
	if c.ExitTo != "upload" {
		c.ExitTo = "preview"
	}
	if c.SurfaceWidth < 160 || c.SurfaceHeight < 90 {
		c.SurfaceWidth, c.SurfaceHeight = 960, 540
	}
	return nil
}

// ReadyTimeout returns the capture readiness bound.
func (c *Config) ReadyTimeout() time.Duration {
	return time.Duration(c.ReadyTimeoutMs) * time.Millisecond
}

// Converter returns the unit converter for the configured scale mode.
func (c *Config) Converter() sizing.Converter {
	return sizing.NewConverter(sizing.ParsePolicy(c.ScaleMode), c.ReferencePixels, c.ReferenceInches)
}

// CalibrationProfiles converts the configured profiles.
func (c *Config) CalibrationProfiles() []sizing.CalibrationProfile {
	out := make([]sizing.CalibrationProfile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, sizing.CalibrationProfile{ID: p.ID, Label: p.Label, PixelsPerInch: p.PixelsPerInch})
	}
	return out
}

func profilesFrom(ps []sizing.CalibrationProfile) []Profile {
	out := make([]Profile, 0, len(ps))
	for _, p := range ps {
		out = append(out, Profile{ID: p.ID, Label: p.Label, PixelsPerInch: p.PixelsPerInch})
	}
	return out
}

// ApplyEnv overrides fields from WALLPREVIEW_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads configuration from the given JSON file path and applies
// environment overrides. A missing file yields the defaults. On a decode
// error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := json.NewDecoder(f).Decode(cfg); err != nil {
				return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
