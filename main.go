package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/app"
	"github.com/soar/gamepadcam/internal/config"
	"github.com/soar/gamepadcam/internal/console"
	"github.com/soar/gamepadcam/internal/controller"
	"github.com/soar/gamepadcam/internal/frame"
	"github.com/soar/gamepadcam/internal/gamepad"
	"github.com/soar/gamepadcam/internal/gamepad/sdlreader"
	"github.com/soar/gamepadcam/internal/hub"
	"github.com/soar/gamepadcam/internal/logger"
	"github.com/soar/gamepadcam/internal/scene"
	"github.com/soar/gamepadcam/internal/server"
	"github.com/soar/gamepadcam/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	world, err := app.LoadScene(cfg.ScenePath)
	if err != nil {
		log.Fatal("load scene", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	shutdownRequested := make(chan struct{})
	var shutdownOnce sync.Once
	requestShutdown := func() { shutdownOnce.Do(func() { close(shutdownRequested) }) }
	consoleCh := make(chan struct{})
	reregisterConsole := console.SetupConsoleHandler(consoleCh, log)
	go func() {
		select {
		case <-consoleCh:
			requestShutdown()
		case <-ctx.Done():
		}
	}()

	h := hub.NewHub(log.Named("hub"))
	go h.Run(ctx)
	broadcaster := hub.NewBroadcaster(h)
	go broadcaster.Run(ctx)

	sched := frame.NewScheduler()
	rotSync := app.NewRotationSync(sched)

	srv := server.New(h, broadcaster, rotSync, cfg.Listen, log.Named("server"))
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// The frame goroutine owns SDL, the controller and the camera. SDL must
	// stay on one OS thread.
	frameDone := make(chan struct{})
	go func() {
		defer close(frameDone)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		src, pump, closeSource := openSource(cfg, log)
		defer closeSource()
		reregisterConsole()

		cam := scene.NewCamera(world.CameraPosition)
		var ctl *controller.Controller
		ctl = controller.New(cam, world.Root, src, sched,
			app.Callbacks(broadcaster, cam, func() *controller.Controller { return ctl }, log),
			controller.WithLogger(log.Named("controller")),
			controller.WithSettings(cfg.Controller))
		defer ctl.Close()
		rotSync.Attach(ctl)

		unsubscribe := src.Subscribe(app.DeviceNotifier{Publisher: broadcaster})
		defer unsubscribe()

		frame.Run(ctx, sched, cfg.FrameInterval, pump)
	}()

	log.Info("gamepadcam started", zap.String("listen", cfg.Listen), zap.Bool("virtual", cfg.Virtual))

	// Initialize system tray on Windows only
	statusURL, err := app.StatusURL(cfg.Listen)
	if err != nil {
		log.Warn("no status URL for tray", zap.Error(err))
	}
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(statusURL, tray.Actions{
				ResetView: func() { rotSync.SetRotation(0, 0) },
				Shutdown:  requestShutdown,
			}, log.Named("tray"))
			t.Run()
		}()
	} else {
		log.Info("press Ctrl+C to exit")
	}

	select {
	case <-sigCh:
		log.Info("shutting down")
	case <-shutdownRequested:
		log.Info("shutdown requested")
	case err := <-serverErrCh:
		log.Error("HTTP server error", zap.Error(err))
	}
	cancel()
	<-frameDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("gamepadcam stopped")
}

// openSource returns the gamepad source, the per-frame event pump and a
// cleanup function. It must run on the frame goroutine.
func openSource(cfg *config.Config, log *zap.Logger) (controller.Source, func(), func()) {
	if cfg.Virtual {
		v := gamepad.NewVirtual()
		v.Connect("virtual")
		return v, nil, func() {}
	}

	reader := sdlreader.NewReader(log.Named("gamepad"))
	if err := reader.Open(); err != nil {
		log.Warn("gamepad support unavailable", zap.Error(err))
	}
	return reader, reader.PumpEvents, reader.Close
}
