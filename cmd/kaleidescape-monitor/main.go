// kaleidescape-monitor is an interactive console for a Kaleidescape system.
// It connects to a component over the control protocol, mirrors its state and
// exposes transport, navigation and power commands at a prompt.
//
// Usage:
//
//	kaleidescape-monitor -host 10.0.0.5
//	kaleidescape-monitor -config theater.yaml -protocol-log capture.klog
//	kaleidescape-monitor -discover
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kaleidescape-community/kaleidescape-go/cmd/kaleidescape-monitor/interactive"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/connection"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/device"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/discovery"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/log"
)

// Config holds the monitor configuration. Flags override file values.
type Config struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	DeviceID    string        `yaml:"device_id"`
	Timeout     time.Duration `yaml:"timeout"`
	Reconnect   bool          `yaml:"reconnect"`
	ProtocolLog string        `yaml:"protocol_log"`
	LogLevel    string        `yaml:"log_level"`
}

var (
	configFile  string
	host        string
	port        int
	deviceID    string
	timeout     time.Duration
	reconnect   bool
	protocolLog string
	logLevel    string
	discover    bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Path to YAML configuration file")
	flag.StringVar(&host, "host", "", "Device hostname or IP address")
	flag.IntVar(&port, "port", 0, "Control protocol port (default: 10000)")
	flag.StringVar(&deviceID, "device-id", "", "Device ID to control (default: local device)")
	flag.DurationVar(&timeout, "timeout", 0, "Request timeout (default: 5s)")
	flag.BoolVar(&reconnect, "reconnect", true, "Reconnect automatically after connection loss")
	flag.StringVar(&protocolLog, "protocol-log", "", "Write a protocol capture (.klog) to this path")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&discover, "discover", false, "Browse the local network for components and exit")
}

func main() {
	flag.Parse()

	if discover {
		if err := runDiscover(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Host == "" {
		fmt.Fprintln(os.Stderr, "Error: no host configured (use -host or -config)")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file (if given) and applies flag overrides.
func loadConfig() (*Config, error) {
	cfg := &Config{Reconnect: true}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if deviceID != "" {
		cfg.DeviceID = deviceID
	}
	if timeout != 0 {
		cfg.Timeout = timeout
	}
	if !reconnect {
		cfg.Reconnect = false
	}
	if protocolLog != "" {
		cfg.ProtocolLog = protocolLog
	}
	if logLevel != "info" || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	return cfg, nil
}

func run(cfg *Config) error {
	logger, cleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	connCfg := connection.DefaultConfig(cfg.Host)
	connCfg.Port = cfg.Port
	connCfg.RequestTimeout = cfg.Timeout
	connCfg.Reconnect = cfg.Reconnect
	connCfg.Logger = logger

	dev := device.New(connCfg, cfg.DeviceID)

	monitor, err := interactive.New(dev)
	if err != nil {
		return err
	}

	// Route live state updates through readline's writer so they do not
	// clobber the prompt.
	dev.OnUpdate(func(state device.State) {
		fmt.Fprintf(monitor.Stdout(), "[%s] power=%s play=%s screen=%s\n",
			time.Now().Format("15:04:05"),
			state.Power.State, state.Movie.PlayStatus, state.OSD.Screen)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	fmt.Printf("Connecting to %s...\n", cfg.Host)
	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	err = dev.Connect(connectCtx)
	connectCancel()
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer dev.Disconnect()

	state := dev.State()
	fmt.Printf("Connected to %s %q (kOS %s)\n",
		state.System.Type, state.System.FriendlyName, state.System.KOSVersion)

	monitor.Run(ctx, cancel)
	return nil
}

// setupLogging builds the protocol capture logger and configures slog.
// At debug level, capture events are mirrored into slog as well.
func setupLogging(cfg *Config) (log.Logger, func(), error) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}

	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(slogger)

	var loggers []log.Logger
	cleanup := func() {}

	if cfg.ProtocolLog != "" {
		fileLogger, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create protocol log: %w", err)
		}
		loggers = append(loggers, fileLogger)
		cleanup = func() { fileLogger.Close() }
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(slogger))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, cleanup, nil
	case 1:
		return loggers[0], cleanup, nil
	default:
		return log.NewMultiLogger(loggers...), cleanup, nil
	}
}

func runDiscover() error {
	fmt.Println("Browsing for components...")

	components, err := discovery.Discover(context.Background(), discovery.DefaultTimeout)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		fmt.Println("No components found")
		return nil
	}
	for _, c := range components {
		fmt.Printf("  %s\n", c)
	}
	return nil
}
