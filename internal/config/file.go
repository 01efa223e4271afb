package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

// ErrInvalidConfig is matched by every rejection from Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title,omitempty"`
}

type Camera struct {
	Fov      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position,flow"`
	Damping  float64    `yaml:"damping"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Galaxy holds the startup parameters. Colors are #rrggbb.
type Galaxy struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	ColorInside     string  `yaml:"color_inside"`
	ColorOutside    string  `yaml:"color_outside"`
}

type Config struct {
	Window        Window        `yaml:"window"`
	Seed          uint64        `yaml:"seed"` // 0 picks a time-based seed
	RotationSpeed float64       `yaml:"rotation_speed"`
	MaxPixelRatio float64       `yaml:"max_pixel_ratio"`
	StatsInterval time.Duration `yaml:"stats_interval"`
	Camera        Camera        `yaml:"camera"`
	Audio         Audio         `yaml:"audio"`
	Galaxy        Galaxy        `yaml:"galaxy"`
}

// Default mirrors the package constants and galaxy.Default.
func Default() *Config {
	p := galaxy.Default()
	return &Config{
		Window:        Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		RotationSpeed: RotationSpeed,
		MaxPixelRatio: MaxPixelRatio,
		StatsInterval: 5 * time.Second,
		Camera: Camera{
			Fov:      CameraFov,
			Near:     CameraNear,
			Far:      CameraFar,
			Position: [3]float64{2, 2, 2},
			Damping:  DampingFactor,
		},
		Audio: Audio{Enabled: true, Volume: 0.2},
		Galaxy: Galaxy{
			Count:           p.Count,
			Size:            p.Size,
			Radius:          p.Radius,
			Branches:        p.Branches,
			Spin:            p.Spin,
			Randomness:      p.Randomness,
			RandomnessPower: p.RandomnessPower,
			ColorInside:     p.ColorInside.Hex(),
			ColorOutside:    p.ColorOutside.Hex(),
		},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := c.Parameters(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func invalid(key string, v any, want string) error {
	return fmt.Errorf("%w: %s=%v, want %s", ErrInvalidConfig, key, v, want)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate checks the window, view and audio sections. The galaxy section is
// checked by Parameters.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0:
		return invalid("window.width", c.Window.Width, "> 0")
	case c.Window.Height <= 0:
		return invalid("window.height", c.Window.Height, "> 0")
	case !finite(c.RotationSpeed):
		return invalid("rotation_speed", c.RotationSpeed, "a finite number")
	case !finite(c.MaxPixelRatio) || c.MaxPixelRatio <= 0:
		return invalid("max_pixel_ratio", c.MaxPixelRatio, "> 0")
	case c.StatsInterval < 0:
		return invalid("stats_interval", c.StatsInterval, ">= 0")
	case !finite(c.Camera.Fov) || c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return invalid("camera.fov", c.Camera.Fov, "0 < fov < 180")
	case !finite(c.Camera.Near) || c.Camera.Near <= 0:
		return invalid("camera.near", c.Camera.Near, "> 0")
	case !finite(c.Camera.Far) || c.Camera.Far <= c.Camera.Near:
		return invalid("camera.far", c.Camera.Far, fmt.Sprintf("> near (%g)", c.Camera.Near))
	case !finite(c.Camera.Damping) || c.Camera.Damping <= 0 || c.Camera.Damping > 1:
		return invalid("camera.damping", c.Camera.Damping, "0 < damping <= 1")
	case !finite(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return invalid("audio.volume", c.Audio.Volume, "0..1")
	}
	for i, v := range c.Camera.Position {
		if !finite(v) {
			return invalid(fmt.Sprintf("camera.position[%d]", i), v, "a finite number")
		}
	}
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Parameters converts the galaxy section and validates it.
func (c *Config) Parameters() (galaxy.Parameters, error) {
	inside, err := colorful.Hex(c.Galaxy.ColorInside)
	if err != nil {
		return galaxy.Parameters{}, &galaxy.ParameterError{Field: galaxy.FieldColorInside, Value: c.Galaxy.ColorInside, Reason: "want #rrggbb"}
	}
	outside, err := colorful.Hex(c.Galaxy.ColorOutside)
	if err != nil {
		return galaxy.Parameters{}, &galaxy.ParameterError{Field: galaxy.FieldColorOutside, Value: c.Galaxy.ColorOutside, Reason: "want #rrggbb"}
	}
	p := galaxy.Parameters{
		Count:           c.Galaxy.Count,
		Size:            c.Galaxy.Size,
		Radius:          c.Galaxy.Radius,
		Branches:        c.Galaxy.Branches,
		Spin:            c.Galaxy.Spin,
		Randomness:      c.Galaxy.Randomness,
		RandomnessPower: c.Galaxy.RandomnessPower,
		ColorInside:     inside,
		ColorOutside:    outside,
	}
	if err := p.Validate(); err != nil {
		return galaxy.Parameters{}, err
	}
	return p, nil
}
