package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"status-leds/animation"
	"status-leds/api"
	"status-leds/config"
	"status-leds/heartbeat"
	"status-leds/lights"
	"status-leds/node"
	"status-leds/notify"
	"status-leds/poll"
	"status-leds/scheduler"
	"status-leds/types"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	dryRun := flag.Bool("dry-run", false, "log frames instead of writing to the serial port")
	initial := flag.String("animation", "", "animation to start with (overrides initial_animation)")
	flag.Parse()

	cfg, err := config.Load(*configPath, flagOverrides(*dryRun, *initial))
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := types.NewLogger(os.Stderr, cfg.LogLevel)

	catalog, err := cfg.Catalog()
	if err != nil {
		log.Fatalf("Error building animation catalog: %v", err)
	}
	ctrl, err := animation.NewController(catalog, cfg.TickRate, cfg.InitialAnimation)
	if err != nil {
		log.Fatalf("Error creating animation controller: %v", err)
	}
	logger.InfoLog.Printf("Loaded %d animations, starting with %s at %.0f Hz",
		catalog.Len(), cfg.InitialAnimation, cfg.TickRate)

	nodeName := node.GetNodeName()
	var notifier *notify.Notifier
	if cfg.Monitor.NotifyURL != "" {
		notifier = notify.New(cfg.Monitor.NotifyURL)
	}

	var monitor *poll.Monitor
	if cfg.MonitorEnabled() {
		source, err := newSource(cfg, logger)
		if err != nil {
			log.Fatalf("Error creating status monitor: %v", err)
		}
		monitor = poll.NewMonitor(source, ctrl, cfg.Monitor.Interval, cfg.Monitor.ConnectivityURL, logger)
		if notifier != nil {
			monitor.WithNotifier(notifier, nodeName)
		}
	}

	light, err := newLight(cfg, logger)
	if err != nil {
		log.Fatalf("Error opening LEDs: %v", err)
	}
	defer func() {
		if err := light.Close(); err != nil {
			logger.ErrorLog.Printf("Error closing LEDs: %s", err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if notifier != nil {
		announce(ctx, notifier, nodeName, cfg.InitialAnimation, logger)
	}

	var wg sync.WaitGroup

	if cfg.HTTP.Addr != "" {
		gin.SetMode(gin.ReleaseMode)
		server := api.NewServer(ctrl, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := api.ListenAndServe(ctx, cfg.HTTP.Addr, server.Router(cfg.HTTP.EnableCORS), logger); err != nil {
				logger.ErrorLog.Printf("HTTP API stopped: %s", err.Error())
			}
		}()
	}

	if monitor != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			monitor.Run(ctx)
		}()
	}

	if cfg.Monitor.HeartbeatURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			heartbeat.Run(ctx, cfg.Monitor.HeartbeatURL, nodeName, cfg.Monitor.HeartbeatInterval, logger)
		}()
	}

	if err := scheduler.Run(ctx, ctrl, light, scheduler.Interval(cfg.TickRate), logger); err != nil {
		logger.ErrorLog.Printf("LED loop: %s", err.Error())
	}

	stop()
	wg.Wait()
	logger.InfoLog.Printf("Shutdown complete")
}

// flagOverrides lets command-line flags override the configuration file.
// Load applies it before validation so -dry-run can stand in for a serial port.
func flagOverrides(dryRun bool, initial string) config.Override {
	return func(cfg *config.Config) {
		if dryRun {
			cfg.DryRun = true
		}
		if initial != "" {
			cfg.InitialAnimation = initial
		}
	}
}

// announce sends the startup message. Failure is logged, not fatal.
func announce(ctx context.Context, n poll.Notifier, nodeName, initial string, logger *types.Logger) {
	message := fmt.Sprintf("%s status lights online, starting with %s", nodeName, initial)
	if err := n.Notify(ctx, message); err != nil {
		logger.WarnLog.Printf("Failed to send startup notification: %s", err.Error())
		return
	}
	logger.DebugLog.Printf("Startup notification sent")
}

func newLight(cfg *config.Config, logger *types.Logger) (lights.Light, error) {
	if cfg.DryRun {
		logger.InfoLog.Printf("Dry run: frames are logged, not sent")
		return lights.NewLogLight(logger), nil
	}
	logger.InfoLog.Printf("Opening %s at %d baud", cfg.Serial.Port, cfg.Serial.Baud)
	light, err := lights.NewSerialLight(cfg.Serial.Port, cfg.Serial.Baud)
	if err != nil {
		return nil, err
	}
	return light, nil
}

func newSource(cfg *config.Config, logger *types.Logger) (poll.Source, error) {
	switch cfg.Monitor.Kind {
	case config.MonitorIncidents:
		return poll.NewIncidentSource(cfg.Monitor.IncidentsURL, time.Now(), logger), nil
	case config.MonitorGitHub:
		gh := cfg.Monitor.GitHub
		client := poll.NewGitHubClient(os.Getenv(gh.TokenEnv))
		return poll.NewWorkflowSource(client, gh.Owner, gh.Repo, gh.Workflow, gh.Branch), nil
	default:
		return nil, fmt.Errorf("unknown monitor kind: %s", cfg.Monitor.Kind)
	}
}
