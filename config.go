package globe

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("globe: invalid config")

// Config holds everything needed to build a Globe. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// PageWidth and PageHeight are the window size in device-independent
	// pixels. The backing buffer is twice this size.
	PageWidth  int `yaml:"page_width"`
	PageHeight int `yaml:"page_height"`

	// Camera
	CameraStart Vec3    `yaml:"camera_start"`
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`

	// Animation. Speeds are radians per frame.
	AutoRotate    bool          `yaml:"auto_rotate"`
	RotationSpeed float64       `yaml:"rotation_speed"`
	CloudSpeed    float64       `yaml:"cloud_speed"`
	TweenDuration time.Duration `yaml:"tween_duration"`

	// Scene
	EarthRadius   float64 `yaml:"earth_radius"`
	CloudRadius   float64 `yaml:"cloud_radius"`
	CloudOpacity  float64 `yaml:"cloud_opacity"`
	TextureSize   int     `yaml:"texture_size"`
	SphereDetail  int     `yaml:"sphere_detail"`
	ShowMarkers   bool    `yaml:"show_markers"`
	LabelSize     float64 `yaml:"label_size"`
	MarkerColor   Color   `yaml:"marker_color"`
	ClearColor    Color   `yaml:"clear_color"`
	GlowColor     Color   `yaml:"glow_color"`
	GlowRadius    int     `yaml:"glow_radius"`
	GlowStrength  float64 `yaml:"glow_strength"`
	AmbientLight  float64 `yaml:"ambient_light"`
	SpotIntensity float64 `yaml:"spot_intensity"`

	// Orbit controls
	OrbitEnabled     bool    `yaml:"orbit_enabled"`
	OrbitRotateSpeed float64 `yaml:"orbit_rotate_speed"`
	OrbitDamping     bool    `yaml:"orbit_damping"`
	DampingFactor    float64 `yaml:"damping_factor"`

	// Locations is the named-location table used by the navigation methods.
	Locations []Location `yaml:"locations"`
}

// DefaultConfig returns the stock globe configuration.
func DefaultConfig() Config {
	return Config{
		PageWidth:  800,
		PageHeight: 600,

		CameraStart: Vec3{Z: -28},
		FOV:         40,
		Near:        0.1,
		Far:         1000,

		AutoRotate:    true,
		RotationSpeed: 0.001,
		CloudSpeed:    -0.0003,
		TweenDuration: DefaultTweenDuration,

		EarthRadius:   10,
		CloudRadius:   10.2,
		CloudOpacity:  0.8,
		TextureSize:   512,
		SphereDetail:  48,
		ShowMarkers:   true,
		LabelSize:     22,
		MarkerColor:   Color{1, 0.45, 0.2, 1},
		ClearColor:    ColorTransparent,
		GlowColor:     Color{0.35, 0.6, 1, 1},
		GlowRadius:    8,
		GlowStrength:  1,
		AmbientLight:  0.35,
		SpotIntensity: 0.9,

		OrbitEnabled:     true,
		OrbitRotateSpeed: 0.3,
		OrbitDamping:     false,
		DampingFactor:    0.25,

		Locations: DefaultLocations(),
	}
}

// Validate checks the config for values that cannot build a scene.
func (c Config) Validate() error {
	switch {
	case c.PageWidth <= 0 || c.PageHeight <= 0:
		return fmt.Errorf("%w: page size %dx%d", ErrInvalidConfig, c.PageWidth, c.PageHeight)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidConfig, c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: clip range near=%v far=%v", ErrInvalidConfig, c.Near, c.Far)
	case c.EarthRadius <= 0:
		return fmt.Errorf("%w: earth radius %v", ErrInvalidConfig, c.EarthRadius)
	case c.CloudRadius < c.EarthRadius:
		return fmt.Errorf("%w: cloud radius %v below earth radius %v", ErrInvalidConfig, c.CloudRadius, c.EarthRadius)
	case c.TextureSize < 8:
		return fmt.Errorf("%w: texture size %d", ErrInvalidConfig, c.TextureSize)
	case c.TweenDuration < 0:
		return fmt.Errorf("%w: negative tween duration %v", ErrInvalidConfig, c.TweenDuration)
	case c.GlowRadius < 0:
		return fmt.Errorf("%w: negative glow radius %d", ErrInvalidConfig, c.GlowRadius)
	case c.DampingFactor < 0 || c.DampingFactor > 1:
		return fmt.Errorf("%w: damping factor %v outside [0, 1]", ErrInvalidConfig, c.DampingFactor)
	}
	if _, err := NewLocationTable(c.Locations); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig decodes YAML over DefaultConfig, so omitted keys keep their
// defaults. A locations key replaces the whole default table.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("globe: decode config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("globe: read config: %w", err)
	}
	return LoadConfig(data)
}
