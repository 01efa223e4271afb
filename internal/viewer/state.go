package viewer

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/camera"
	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/scene"
)

// Observer is told about the outcome of every commit.
type Observer interface {
	Regenerated(p galaxy.Parameters, took time.Duration)
	Rejected(err error)
}

// Presenter switches the window between fullscreen and windowed.
type Presenter interface {
	IsFullscreen() bool
	SetFullscreen(bool)
}

// Size is a window size in logical pixels plus the monitor scale.
type Size struct {
	Width, Height int
	DeviceScale   float64
}

// Viewport is the drawing buffer: logical size times the capped pixel ratio.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

func (v Viewport) Camera() camera.Viewport {
	return camera.Viewport{Width: float64(v.Width), Height: float64(v.Height)}
}

// Options configures a new State.
type Options struct {
	Params          galaxy.Parameters
	Random          galaxy.RandomSource
	AngularVelocity float64 // rad/s about Y
	MaxPixelRatio   float64
	FovY            float64
	Near, Far       float64
	CameraPosition  mgl64.Vec3
	DampingFactor   float64
	Observer        Observer
	Presenter       Presenter
}

// DefaultOptions is the startup view: camera at (2,2,2), slow spin.
func DefaultOptions() Options {
	return Options{
		Params:          galaxy.Default(),
		Random:          galaxy.NewRandomSource(uint64(time.Now().UnixNano())),
		AngularVelocity: 0.1,
		MaxPixelRatio:   2,
		FovY:            75,
		Near:            0.1,
		Far:             100,
		CameraPosition:  mgl64.Vec3{2, 2, 2},
		DampingFactor:   0.05,
	}
}

// State is everything the viewer owns. All handlers run on one goroutine.
type State struct {
	Params          galaxy.Parameters
	Scene           *scene.Scene
	Galaxy          *scene.Points
	Camera          *camera.Camera
	Orbit           *camera.Orbit
	Viewport        Viewport
	Fullscreen      bool
	LastErr         error
	AngularVelocity float64
	MaxPixelRatio   float64

	rng       galaxy.RandomSource
	observer  Observer
	presenter Presenter
}

func New(opts Options) *State {
	if opts.MaxPixelRatio <= 0 {
		opts.MaxPixelRatio = 2
	}
	s := &State{
		Params:          opts.Params,
		Scene:           scene.New(),
		Camera:          camera.New(opts.FovY, 1, opts.Near, opts.Far, opts.CameraPosition),
		Orbit:           camera.NewOrbit(opts.CameraPosition, mgl64.Vec3{}),
		AngularVelocity: opts.AngularVelocity,
		MaxPixelRatio:   opts.MaxPixelRatio,
		rng:             opts.Random,
		observer:        opts.Observer,
		presenter:       opts.Presenter,
	}
	s.Orbit.EnableDamping = true
	if opts.DampingFactor > 0 {
		s.Orbit.DampingFactor = opts.DampingFactor
	}
	if opts.Far > 0 {
		s.Orbit.MaxDistance = opts.Far
	}
	return s
}

// SetObserver replaces the commit observer.
func (s *State) SetObserver(o Observer) { s.observer = o }

// SetPresenter replaces the fullscreen presenter.
func (s *State) SetPresenter(p Presenter) { s.presenter = p }

// OnFrame advances the slow spin and the orbit easing by delta seconds.
func (s *State) OnFrame(delta float64) {
	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	if s.Galaxy != nil {
		s.Galaxy.Rotation += delta * s.AngularVelocity
	}
	s.Orbit.Update()
	s.Orbit.Apply(s.Camera)
}

// OnParameterCommitted regenerates the galaxy. On failure the current cloud
// stays attached and the error is kept in LastErr.
func (s *State) OnParameterCommitted(p galaxy.Parameters) error {
	start := time.Now()
	cloud, err := galaxy.Generate(p, s.rng)
	if err != nil {
		s.LastErr = err
		log.Warn().Err(err).Msg("galaxy regeneration rejected")
		if s.observer != nil {
			s.observer.Rejected(err)
		}
		return err
	}

	if s.Galaxy != nil {
		s.Galaxy.Release()
		s.Scene.Remove(s.Galaxy)
	}
	s.Galaxy = scene.NewPoints(cloud, scene.NewPointsMaterial(p.Size))
	s.Scene.Add(s.Galaxy)
	s.Params = p
	s.LastErr = nil

	took := time.Since(start)
	log.Debug().
		Int("count", p.Count).
		Int("branches", p.Branches).
		Float64("radius", p.Radius).
		Dur("took", took).
		Msg("galaxy regenerated")
	if s.observer != nil {
		s.observer.Regenerated(p, took)
	}
	return nil
}

// OnResize recomputes the viewport and camera aspect. The cloud is untouched.
func (s *State) OnResize(size Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	ratio := size.DeviceScale
	if ratio <= 0 {
		ratio = 1
	}
	ratio = math.Min(ratio, s.MaxPixelRatio)
	s.Viewport = Viewport{
		Width:      int(math.Round(float64(size.Width) * ratio)),
		Height:     int(math.Round(float64(size.Height) * ratio)),
		PixelRatio: ratio,
	}
	s.Camera.Aspect = float64(size.Width) / float64(size.Height)
}

// OnFullscreenToggleRequested flips fullscreen presentation.
func (s *State) OnFullscreenToggleRequested() {
	if s.presenter != nil {
		s.Fullscreen = !s.presenter.IsFullscreen()
		s.presenter.SetFullscreen(s.Fullscreen)
	} else {
		s.Fullscreen = !s.Fullscreen
	}
	log.Debug().Bool("fullscreen", s.Fullscreen).Msg("fullscreen toggled")
}

// Close releases the current cloud.
func (s *State) Close() {
	s.Scene.Clear()
	s.Galaxy = nil
}
