// Package interactive provides the interactive command-line interface for
// kaleidescape-monitor.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/device"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/discovery"
)

const commandTimeout = 10 * time.Second

// Monitor handles interactive mode for kaleidescape-monitor.
type Monitor struct {
	dev *device.Device
	rl  *readline.Instance
}

// New creates a new interactive monitor.
func New(dev *device.Device) (*Monitor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "kaleidescape> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Monitor{dev: dev, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the readline prompt. Use
// this for log output to avoid clobbering the input line.
func (m *Monitor) Stdout() io.Writer {
	return m.rl.Stdout()
}

// Run starts the interactive command loop.
func (m *Monitor) Run(ctx context.Context, cancel context.CancelFunc) {
	defer m.rl.Close()

	m.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := m.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			m.printHelp()

		case "status", "s":
			m.cmdStatus()

		case "refresh":
			m.run(func(ctx context.Context) error { return m.dev.Refresh(ctx) })

		case "play":
			m.run(m.dev.Play)
		case "pause":
			m.run(m.dev.Pause)
		case "stop":
			m.run(m.dev.Stop)
		case "next":
			m.run(m.dev.Next)
		case "prev", "previous":
			m.run(m.dev.Previous)
		case "replay":
			m.run(m.dev.Replay)
		case "ff", "scan":
			m.run(m.dev.ScanForward)
		case "rew":
			m.run(m.dev.ScanReverse)

		case "up":
			m.run(m.dev.Up)
		case "down":
			m.run(m.dev.Down)
		case "left":
			m.run(m.dev.Left)
		case "right":
			m.run(m.dev.Right)
		case "select", "ok":
			m.run(m.dev.Select)
		case "cancel", "back":
			m.run(m.dev.Cancel)
		case "menu":
			m.run(m.dev.MenuToggle)
		case "covers":
			m.run(m.dev.GoMovieCovers)

		case "standby":
			m.run(m.dev.EnterStandby)
		case "wake":
			m.run(m.dev.LeaveStandby)

		case "details":
			m.cmdDetails(args)
		case "devices":
			m.cmdDevices()
		case "pairing":
			m.cmdPairing()
		case "discover":
			m.cmdDiscover()

		case "exit", "quit", "q":
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(m.rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (m *Monitor) printHelp() {
	fmt.Fprint(m.rl.Stdout(), `Commands:
  status, s          Show mirrored device state
  refresh            Re-query playback state

  play pause stop next prev replay ff rew
                     Transport controls
  up down left right select cancel menu covers
                     On-screen display navigation
  standby wake       Power control

  details [handle]   Show content details (default: highlighted selection)
  devices            List devices in the system
  pairing            Show system pairing info
  discover           Browse the local network for components

  help, ?            Show this help
  exit, quit         Exit
`)
}

// run executes a device command with a bounded context and reports errors
// on the console instead of aborting the loop.
func (m *Monitor) run(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
	}
}

func (m *Monitor) cmdStatus() {
	w := m.rl.Stdout()
	state := m.dev.State()

	fmt.Fprintf(w, "Connection: %s\n", m.dev.Connection().State())
	fmt.Fprintf(w, "System:     %s %q serial=%s ip=%s kOS=%s protocol=%d\n",
		state.System.Type, state.System.FriendlyName, state.System.SerialNumber,
		state.System.IPAddress, state.System.KOSVersion, state.System.Protocol)
	fmt.Fprintf(w, "Power:      %s readiness=%s zones=%v\n",
		state.Power.State, state.Power.Readiness, state.Power.Zones)
	fmt.Fprintf(w, "OSD:        screen=%s popup=%s dialog=%s highlighted=%s\n",
		state.OSD.Screen, state.OSD.Popup, state.OSD.Dialog, state.OSD.HighlightedSelection)
	fmt.Fprintf(w, "Play:       %s speed=%d title %d %d/%ds chapter %d %d/%ds\n",
		state.Movie.PlayStatus, state.Movie.PlaySpeed,
		state.Movie.TitleNumber, state.Movie.TitleLocation, state.Movie.TitleLength,
		state.Movie.ChapterNumber, state.Movie.ChapterLocation, state.Movie.ChapterLength)
	if state.Movie.Title != "" {
		fmt.Fprintf(w, "Movie:      %q (%s) rating=%s %smin\n",
			state.Movie.Title, state.Movie.Year, state.Movie.Rating, state.Movie.RunningTime)
	}
	fmt.Fprintf(w, "Automation: location=%s mode=%s mask=%s/%s cinemascape=%s\n",
		state.Automation.MovieLocation, state.Automation.VideoMode,
		state.Automation.ScreenMaskRatio, state.Automation.ScreenMaskConservativeRatio,
		state.Automation.CinemascapeMode)
}

func (m *Monitor) cmdDetails(args []string) {
	handle := m.dev.State().OSD.HighlightedSelection
	if len(args) > 0 {
		handle = args[0]
	}
	if handle == "" {
		fmt.Fprintln(m.rl.Stdout(), "Nothing highlighted; pass a content handle")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	details, err := m.dev.GetContentDetails(ctx, handle, "")
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
		return
	}

	w := m.rl.Stdout()
	fmt.Fprintf(w, "Handle: %s (table %s)\n", details.Handle, details.Table)
	for key, value := range details.Fields {
		fmt.Fprintf(w, "  %-20s %s\n", key+":", value)
	}
}

func (m *Monitor) cmdDevices() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	ids, err := m.dev.GetAvailableDevices(ctx)
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
		return
	}
	serials, err := m.dev.GetAvailableSerialNumbers(ctx)
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
		return
	}

	w := m.rl.Stdout()
	for i, id := range ids {
		serial := ""
		if i < len(serials) {
			serial = serials[i]
		}
		fmt.Fprintf(w, "  %s  %s\n", id, serial)
	}
}

func (m *Monitor) cmdPairing() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	info, err := m.dev.GetSystemPairingInfo(ctx)
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
		return
	}

	w := m.rl.Stdout()
	if !info.IsPaired() {
		fmt.Fprintln(w, "System is not paired")
		return
	}
	fmt.Fprintf(w, "Paired with %s (%s)\n", info.PairedFriendlyName(), info.PairedSystemID())
	for _, pair := range info.PairedPeers() {
		fmt.Fprintf(w, "  encore %s <-> premier %s\n", pair[0], pair[1])
	}
}

func (m *Monitor) cmdDiscover() {
	fmt.Fprintln(m.rl.Stdout(), "Browsing for components...")

	components, err := discovery.Discover(context.Background(), 5*time.Second)
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(components) == 0 {
		fmt.Fprintln(m.rl.Stdout(), "No components found")
		return
	}
	for _, c := range components {
		fmt.Fprintf(m.rl.Stdout(), "  %s\n", c)
	}
}
