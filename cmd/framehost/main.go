package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/framehost/engine/internal/actor"
	"github.com/framehost/engine/internal/config"
	"github.com/framehost/engine/internal/dispatch"
	"github.com/framehost/engine/internal/loop"
	"github.com/framehost/engine/internal/scene"
	"github.com/framehost/engine/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/framehost.toml"
	if p := os.Getenv("FRAMEHOST_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Dispatcher and Lua engine
	disp := dispatch.New(log)

	luaEngine, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	luaEngine.Bind(disp)

	// 4. Scene bindings
	if cfg.Scripts.Scene != "" {
		n, err := registerScene(cfg.Scripts.Scene, luaEngine, disp, log)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		log.Info("scene loaded",
			zap.String("file", cfg.Scripts.Scene),
			zap.Int("bindings", n))
	}

	// 5. Built-in demo actors
	mover := actor.NewMover(0, 0, cfg.Loop.FixedStep)
	sampler := actor.NewInputSampler(mover, log)
	camera := actor.NewCameraFollow(mover, 0.15)
	disp.Register(dispatch.Update, sampler)
	disp.Register(dispatch.Physics, mover)
	disp.Register(dispatch.LateUpdate, camera)
	sampler.Queue(actor.Command{VX: 1.5, VY: 0.5})

	disp.Register(dispatch.LateUpdate, &positionLogger{mover: mover, camera: camera, log: log})

	// 6. Run frame loop until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := loop.NewRunner(disp, cfg.Loop, log)
	runner.Run(ctx)
	return nil
}

// registerScene attaches every scene binding's Lua function to its phase.
func registerScene(path string, eng *scripting.Engine, d *dispatch.Dispatcher, log *zap.Logger) (int, error) {
	tbl, err := scene.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("no scene file, skipping", zap.String("file", path))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	tbl.Each(func(b scene.Binding, phase dispatch.Phase) {
		d.Register(phase, eng.Listener(b.Function))
		log.Debug("scene listener registered",
			zap.String("name", b.Name),
			zap.String("function", b.Function),
			zap.Stringer("phase", phase))
	})
	return tbl.Count(), nil
}

// positionLogger reports the demo actors once per second of frames.
type positionLogger struct {
	mover  *actor.Mover
	camera *actor.CameraFollow
	log    *zap.Logger
	frames int
}

func (p *positionLogger) OnLateUpdate() {
	p.frames++
	if p.frames%60 != 0 {
		return
	}
	p.log.Info("demo state",
		zap.Int("frame", p.frames),
		zap.Float64("mover_x", p.mover.X),
		zap.Float64("mover_y", p.mover.Y),
		zap.Float64("camera_x", p.camera.X),
		zap.Float64("camera_y", p.camera.Y))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
