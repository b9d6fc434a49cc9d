package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Carmen-Shannon/lighthouse/assets"
	"github.com/Carmen-Shannon/lighthouse/engine/camera"
	"github.com/Carmen-Shannon/lighthouse/engine/config"
	"github.com/Carmen-Shannon/lighthouse/engine/input"
	"github.com/Carmen-Shannon/lighthouse/engine/loader"
	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
	"github.com/Carmen-Shannon/lighthouse/engine/profiler"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer/glrenderer"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/Carmen-Shannon/lighthouse/engine/renderer/wgpurenderer"
	"github.com/Carmen-Shannon/lighthouse/engine/window"
	"github.com/Carmen-Shannon/lighthouse/engine/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

type runOptions struct {
	watch      bool
	model      string
	wgpuMirror bool
	frameLimit float64
	profile    bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the window and run the render loop until it is closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			if opts.watch && root.configPath == "" {
				return fmt.Errorf("--watch requires --config")
			}
			logger := newLogger(cmd, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchPath := ""
			if opts.watch {
				watchPath = root.configPath
			}
			return run(ctx, cfg, watchPath, logger)
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload camera, clear color and spin when the config file changes")
	cmd.Flags().StringVar(&opts.model, "model", "", "show a .gltf or .glb file instead of the pyramid (scene.model)")
	cmd.Flags().BoolVar(&opts.wgpuMirror, "wgpu-mirror", false, "also write camera uniforms to WebGPU buffers and verify them by readback (renderer.wgpu_mirror)")
	cmd.Flags().Float64Var(&opts.frameLimit, "frame-limit", 0, "cap the frame rate, 0 for uncapped (renderer.frame_limit)")
	cmd.Flags().BoolVar(&opts.profile, "profile", false, "log frame statistics once per interval (profiling.enabled)")
	return cmd
}

// apply copies explicitly set flags over the configuration.
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Scene.Model = o.model
	}
	if flags.Changed("wgpu-mirror") {
		cfg.Renderer.WGPUMirror = o.wgpuMirror
	}
	if flags.Changed("frame-limit") && o.frameLimit >= 0 {
		cfg.Renderer.FrameLimit = o.frameLimit
	}
	if flags.Changed("profile") {
		cfg.Profiling.Enabled = o.profile
	}
}

// settingsSource rebuilds camera settings whenever the window size or the camera configuration changes.
// It is shared by the frame goroutine (resize) and the config watcher.
type settingsSource struct {
	mu      sync.Mutex
	camera  config.CameraConfig
	size    config.WindowConfig
	win     camera.Window
	program shader.Program
}

func (s *settingsSource) build() (camera.CameraSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera.Settings(s.size, s.win, s.program)
}

func (s *settingsSource) resize(width, height int) (camera.CameraSettings, error) {
	s.mu.Lock()
	s.size.Width, s.size.Height = width, height
	s.mu.Unlock()
	return s.build()
}

func (s *settingsSource) setCamera(c config.CameraConfig) (camera.CameraSettings, error) {
	s.mu.Lock()
	s.camera = c
	s.mu.Unlock()
	return s.build()
}

// resizeNotifier is the part of the window the resize wiring needs.
type resizeNotifier interface {
	SetResizeCallback(callback func(width, height int))
	SetFramebufferResizeCallback(callback func(width, height int))
}

// wireResize keeps the viewport on the framebuffer size in pixels and the camera settings on the window size
// in screen coordinates, the space the capture anchor and cursor warps live in.
func wireResize(win resizeNotifier, viewport func(width, height int), source *settingsSource, submit func(camera.CameraSettings), logger *slog.Logger) {
	win.SetFramebufferResizeCallback(viewport)
	win.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		next, err := source.resize(width, height)
		if err != nil {
			logger.Warn("camera settings not resized", "width", width, "height", height, "error", err)
			return
		}
		submit(next)
	})
}

// run builds the window, GL resources, scene and world from cfg and runs the frame loop until the window
// closes or ctx is cancelled. A non-empty watchPath enables hot reload of that file.
func run(ctx context.Context, cfg config.Config, watchPath string, logger *slog.Logger) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithVSync(cfg.Window.VSync),
		window.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	backend, err := glrenderer.NewBackend(logger)
	if err != nil {
		return err
	}

	program, err := loadProgram(cfg.Assets)
	if err != nil {
		return err
	}
	defer program.Delete()

	texture, err := loadTexture(cfg.Assets.Texture)
	if err != nil {
		return err
	}
	defer texture.Delete()
	program.SetInt(cfg.Assets.TextureUniform, int32(texture.Unit()))

	vertices, indices, err := sceneGeometry(cfg.Scene.Model, logger)
	if err != nil {
		return err
	}
	meshOptions := []mesh.MeshBuilderOption{
		mesh.WithSpin(cfg.Scene.Spin),
		mesh.WithLogger(logger),
	}
	if cfg.Scene.Workers > 0 {
		meshOptions = append(meshOptions, mesh.WithWorkers(cfg.Scene.Workers))
	}
	shape := mesh.NewMesh(vertices, indices, meshOptions...)
	buffer := glrenderer.NewMeshBuffer(shape)
	defer buffer.Delete()

	r := renderer.NewRenderer(backend,
		renderer.WithClearColor(mgl32.Vec4(cfg.Renderer.ClearColor)),
		renderer.WithDrawables(buffer),
		renderer.WithTextures(texture),
	)
	r.Resize(win.FramebufferSize())

	var uniforms shader.Program = program
	var mirror *wgpurenderer.UniformSink
	if cfg.Renderer.WGPUMirror {
		sink, release, err := openMirror(cfg, logger)
		if err != nil {
			return err
		}
		defer release()
		mirror = sink
		uniforms = shader.Fanout{program, sink}
	}

	source := &settingsSource{
		camera:  cfg.Camera,
		size:    config.WindowConfig{Width: win.Width(), Height: win.Height()},
		win:     win,
		program: uniforms,
	}
	settings, err := source.build()
	if err != nil {
		return err
	}

	cam := camera.NewCamera(cfg.Camera.PositionVec(), cfg.Camera.DirectionVec(), settings,
		camera.WithUniform(cfg.Camera.Uniform),
		camera.WithLogger(logger),
	)
	mouse := input.NewMouseState(
		input.WithCooldown(cfg.Input.Cooldown),
		input.WithLogger(logger),
	)

	var drawer world.Drawer = r
	if mirror != nil {
		verifier := wgpurenderer.NewVerifier(mirror, cam.Uniform(), mirrorCheckEvery, logger)
		drawer = verifiedDrawer{Drawer: r, verifier: verifier, matrix: cam.ViewProjectionMatrix}
		defer func() {
			checks, mismatches := verifier.Checks()
			logger.Info("wgpu mirror verified", "checks", checks, "mismatches", mismatches)
		}()
	}

	w := world.NewWorld(
		world.WithPlatform(win),
		world.WithDevice(win.Poller()),
		world.WithMouse(mouse),
		world.WithCamera(cam),
		world.WithObjects(shape),
		world.WithDrawer(drawer),
		world.WithProfiling(cfg.Profiling.Enabled),
		world.WithProfiler(profiler.NewProfiler(
			profiler.WithInterval(cfg.Profiling.Interval),
			profiler.WithLogger(logger),
		)),
		world.WithFrameLimit(cfg.Renderer.FrameLimit),
		world.WithLogger(logger),
	)

	wireResize(win, r.Resize, source, w.SubmitSettings, logger)

	if watchPath != "" {
		watcher, err := config.Watch(watchPath, func(next config.Config) {
			r.SetClearColor(mgl32.Vec4(next.Renderer.ClearColor))
			shape.SetSpin(next.Scene.Spin)
			settings, err := source.setCamera(next.Camera)
			if err != nil {
				logger.Warn("camera settings not reloaded", "error", err)
				return
			}
			w.SubmitSettings(settings)
		}, config.WithLogger(logger))
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	logger.Info("render loop started",
		"width", win.Width(),
		"height", win.Height(),
		"wgpu_mirror", cfg.Renderer.WGPUMirror,
		"watch", watchPath,
	)
	if err := w.Run(ctx); err != nil {
		return err
	}
	logger.Info("render loop stopped", "frames", w.Frames())
	return nil
}

// sceneGeometry returns the configured model's geometry, or the built-in pyramid when none is set.
func sceneGeometry(path string, logger *slog.Logger) ([]mesh.Vertex, []uint32, error) {
	if path == "" {
		vertices, indices := mesh.Pyramid()
		return vertices, indices, nil
	}
	model, err := loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger)).Load(path)
	if err != nil {
		return nil, nil, err
	}
	return model.Vertices, model.Indices, nil
}

func loadProgram(a config.AssetsConfig) (*glrenderer.Program, error) {
	vertex, err := assets.Shader(shader.ShaderTypeVertex, a.VertexShader)
	if err != nil {
		return nil, err
	}
	fragment, err := assets.Shader(shader.ShaderTypeFragment, a.FragmentShader)
	if err != nil {
		return nil, err
	}
	return glrenderer.NewProgram(vertex, fragment)
}

func loadTexture(path string) (*glrenderer.Texture, error) {
	if path == "" {
		return glrenderer.NewTexture(placeholderTexture(), 0), nil
	}
	return glrenderer.LoadTexture(path, 0)
}

func placeholderTexture() *image.RGBA {
	return glrenderer.Checkerboard(8,
		color.RGBA{R: 230, G: 230, B: 230, A: 255},
		color.RGBA{R: 200, G: 60, B: 40, A: 255},
	)
}

// mirrorCheckEvery is how many frames pass between two GPU readbacks of the mirrored camera uniform.
const mirrorCheckEvery = 120

// verifiedDrawer draws, then checks the WebGPU copy of this frame's camera upload. Draw runs after the
// upload in every frame, so matrix returns the value that was just mirrored.
type verifiedDrawer struct {
	world.Drawer
	verifier *wgpurenderer.Verifier
	matrix   func() mgl32.Mat4
}

func (d verifiedDrawer) Draw() {
	d.Drawer.Draw()
	d.verifier.Tick(d.matrix())
}

// openMirror opens a headless WebGPU device with a uniform buffer for the camera uniform.
func openMirror(cfg config.Config, logger *slog.Logger) (*wgpurenderer.UniformSink, func(), error) {
	device, err := wgpurenderer.OpenDevice(cfg.Renderer.ForceSoftware)
	if err != nil {
		return nil, nil, err
	}
	sink, err := wgpurenderer.NewUniformSink(device, logger, cfg.Camera.Uniform)
	if err != nil {
		device.Release()
		return nil, nil, err
	}
	release := func() {
		logger.Debug("wgpu mirror released", "writes", sink.Writes())
		sink.Release()
		device.Release()
	}
	return sink, release, nil
}
