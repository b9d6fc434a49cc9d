// Package config loads the YAML configuration file, fills in defaults, validates it and watches it for changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the complete program configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Input     InputConfig     `yaml:"input"`
	Assets    AssetsConfig    `yaml:"assets"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Scene     SceneConfig     `yaml:"scene"`
	Log       LogConfig       `yaml:"log"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig configures the camera settings and its initial placement.
type CameraConfig struct {
	Fov         float32    `yaml:"fov"`
	Sensitivity float32    `yaml:"sensitivity"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Uniform     string     `yaml:"uniform"`
	Position    [3]float32 `yaml:"position,flow"`
	Direction   [3]float32 `yaml:"direction,flow"`
}

// InputConfig configures input handling.
type InputConfig struct {
	// Cooldown is the per-button mouse debounce window, e.g. "100ms".
	Cooldown time.Duration `yaml:"cooldown"`
}

// AssetsConfig names the files loaded at startup. Relative paths are resolved against the config file's directory.
// Empty shader paths select the built-in shaders and an empty texture path a generated checkerboard.
type AssetsConfig struct {
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
	Texture        string `yaml:"texture"`
	TextureUniform string `yaml:"texture_uniform"`
}

// RendererConfig configures drawing.
type RendererConfig struct {
	ClearColor    [4]float32 `yaml:"clear_color,flow"`
	// FrameLimit caps the frame rate, 0 for uncapped.
	FrameLimit    float64    `yaml:"frame_limit"`
	// WGPUMirror also writes camera uniforms into WebGPU uniform buffers on a headless device.
	WGPUMirror    bool       `yaml:"wgpu_mirror"`
	// ForceSoftware requests a fallback adapter for the WebGPU mirror.
	ForceSoftware bool       `yaml:"force_software"`
}

// SceneConfig configures the demo scene.
type SceneConfig struct {
	// Model is a .gltf or .glb file to show instead of the built-in pyramid.
	Model   string  `yaml:"model"`
	// Spin is the model rotation in radians per frame.
	Spin    float32 `yaml:"spin"`
	// Workers is the vertex transform worker count, 0 for the default.
	Workers int     `yaml:"workers"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level  string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// ProfilingConfig configures periodic frame statistics.
type ProfilingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// Default returns the built-in configuration: an 800x600 window looking at the pyramid from z = -2.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Opengl tutorial",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Fov:         camera.DefaultFov,
			Sensitivity: camera.DefaultSensitivity,
			Near:        camera.DefaultNearPlane,
			Far:         camera.DefaultFarPlane,
			Uniform:     camera.DefaultUniform,
			Position:    [3]float32{0, 0, -2},
			Direction:   [3]float32{0, 0, 1},
		},
		Input: InputConfig{
			Cooldown: input.DefaultCooldown,
		},
		Assets: AssetsConfig{
			TextureUniform: "tex_color",
		},
		Renderer: RendererConfig{
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
		Scene: SceneConfig{
			Spin: 0.01,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Profiling: ProfilingConfig{
			Interval: time.Second,
		},
	}
}

// Parse decodes YAML on top of the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: failed to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file. Relative asset paths are made relative to the file's directory.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, path)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Dump encodes the configuration as YAML.
func Dump(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// Validate checks every field with a constrained range.
//
// Returns:
//   - error: the first violation, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("config: camera.fov %g must be in (0, 180)", c.Camera.Fov)
	case c.Camera.Sensitivity < 0:
		return fmt.Errorf("config: camera.sensitivity %g must not be negative", c.Camera.Sensitivity)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return fmt.Errorf("config: camera.near %g and camera.far %g must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	case c.Camera.Uniform == "":
		return fmt.Errorf("config: camera.uniform must not be empty")
	case c.Input.Cooldown < 0:
		return fmt.Errorf("config: input.cooldown %s must not be negative", c.Input.Cooldown)
	case c.Renderer.FrameLimit < 0:
		return fmt.Errorf("config: renderer.frame_limit %g must not be negative", c.Renderer.FrameLimit)
	case c.Scene.Workers < 0:
		return fmt.Errorf("config: scene.workers %d must not be negative", c.Scene.Workers)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level %q: %w", l.Level, err)
	}
	return level, nil
}

// Handler creates the slog handler described by the configuration.
//
// Parameters:
//   - w: the log destination
//
// Returns:
//   - slog.Handler: a text or JSON handler at the configured level
func (l LogConfig) Handler(w io.Writer) slog.Handler {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// PositionVec returns the initial camera position.
func (c CameraConfig) PositionVec() mgl32.Vec3 {
	return mgl32.Vec3(c.Position)
}

// DirectionVec returns the initial camera look direction.
func (c CameraConfig) DirectionVec() mgl32.Vec3 {
	return mgl32.Vec3(c.Direction)
}

// Settings builds camera settings for a window and shader program from this configuration.
// The screen size is taken from the window section.
//
// Parameters:
//   - w: the window section, for the screen size
//   - win: the window the camera warps the cursor in
//   - program: the shader program the camera uploads to
//
// Returns:
//   - camera.CameraSettings: the settings
//   - error: a *camera.ConfigError if a value is out of range
func (c CameraConfig) Settings(w WindowConfig, win camera.Window, program shader.Program) (camera.CameraSettings, error) {
	return camera.NewCameraSettingsBuilder().
		ScreenSize(mgl32.Vec2{float32(w.Width), float32(w.Height)}).
		Fov(c.Fov).
		Sensitivity(c.Sensitivity).
		NearPlane(c.Near).
		FarPlane(c.Far).
		Win(win).
		ShaderProgram(program).
		Build()
}

// resolve makes every relative file path relative to dir.
func (c *Config) resolve(dir string) {
	for _, p := range []*string{
		&c.Assets.VertexShader,
		&c.Assets.FragmentShader,
		&c.Assets.Texture,
		&c.Scene.Model,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
