package device

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/connection"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/dispatch"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/version"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// ErrUnsupportedProtocol is returned by Connect when the device firmware
// speaks a control protocol version older than version.MinProtocol.
var ErrUnsupportedProtocol = errors.New("unsupported control protocol version")

// Device mirrors the state of one Kaleidescape component and provides
// commands to drive it. State is primed with queries on connect and kept
// current by applying the events the device broadcasts.
type Device struct {
	conn       *connection.Connection
	dispatcher *dispatch.Dispatcher
	target     string

	mu    sync.RWMutex
	state State

	sub      *dispatch.Subscription
	onUpdate func(State)
}

// New creates a device for the configured host. deviceID selects the
// component to address on the control connection; the empty string means
// the locally connected component.
func New(cfg connection.Config, deviceID string) *Device {
	if deviceID == "" {
		deviceID = wire.LocalDeviceID
	}

	d := &Device{
		dispatcher: dispatch.New(),
		target:     deviceID,
		state:      newState(),
	}
	d.conn = connection.New(cfg, d.dispatcher)
	d.conn.OnStateChange(d.connectionStateChanged)
	return d
}

// Connection exposes the underlying control connection.
func (d *Device) Connection() *connection.Connection { return d.conn }

// Dispatcher exposes the dispatcher carrying this device's messages, for
// callers that want raw replies and events.
func (d *Device) Dispatcher() *dispatch.Dispatcher { return d.dispatcher }

// State returns a snapshot of the mirrored device state.
func (d *Device) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.snapshot()
}

// OnUpdate sets a callback invoked with a fresh snapshot after every state
// change. Must be set before Connect.
func (d *Device) OnUpdate(fn func(State)) { d.onUpdate = fn }

// IsConnected reports whether the control connection is usable.
func (d *Device) IsConnected() bool { return d.conn.IsConnected() }

// IsServerOnly reports whether the component has no playback zones.
func (d *Device) IsServerOnly() bool {
	s := d.State().System
	return s.MovieZones == 0 && s.MusicZones == 0
}

// IsMoviePlayer reports whether the component plays movies.
func (d *Device) IsMoviePlayer() bool {
	return d.State().System.MovieZones > 0
}

// IsMusicPlayer reports whether the component has music-only zones.
func (d *Device) IsMusicPlayer() bool {
	s := d.State().System
	return s.MusicZones-s.MovieZones > 0
}

// Connect establishes the control connection, primes the device identity
// and refreshes the playback state.
func (d *Device) Connect(ctx context.Context) error {
	if d.sub == nil {
		d.sub = d.dispatcher.Connect(dispatch.Any, d.handleEvent, dispatch.Async())
	}

	if err := d.conn.Connect(ctx); err != nil {
		return err
	}

	if err := d.prime(ctx); err != nil {
		d.conn.Disconnect()
		return err
	}
	return d.Refresh(ctx)
}

// Disconnect closes the control connection.
func (d *Device) Disconnect() {
	d.conn.Disconnect()
}

// prime queries the identity state that only changes across reboots.
func (d *Device) prime(ctx context.Context) error {
	queries := []string{
		messages.CmdGetDeviceInfo,
		messages.CmdGetSystemVersion,
		messages.CmdGetDeviceTypeName,
		messages.CmdGetNumZones,
		messages.CmdGetDevicePowerState,
		messages.CmdGetSystemReadinessState,
	}
	for _, cmd := range queries {
		if err := d.query(ctx, cmd); err != nil {
			return err
		}
	}

	if p := d.State().System.Protocol; !version.Supported(p) {
		return fmt.Errorf("%w: device speaks %d, need %d",
			ErrUnsupportedProtocol, p, version.MinProtocol)
	}

	// Servers have no friendly name of their own.
	if d.IsMoviePlayer() {
		if err := d.query(ctx, messages.CmdGetFriendlyName); err != nil {
			return err
		}
	}
	return nil
}

// Refresh re-queries the playback state. A device in standby answers most
// playback queries with errors, so refresh is a no-op until it powers on.
func (d *Device) Refresh(ctx context.Context) error {
	if d.State().Power.State != messages.PowerOn {
		return nil
	}

	queries := []string{
		messages.CmdGetUIState,
		messages.CmdGetHighlightedSelection,
		messages.CmdGetPlayStatus,
		messages.CmdGetMovieLocation,
		messages.CmdGetScreenMask,
		messages.CmdGetScreenMask2,
		messages.CmdGetCinemascapeMode,
	}
	for _, cmd := range queries {
		if err := d.query(ctx, cmd); err != nil {
			return err
		}
	}

	state := d.State()
	if state.Movie.PlayStatus != messages.PlayStatusNone {
		details, err := d.GetContentDetails(ctx, state.OSD.HighlightedSelection, "")
		if err != nil {
			return err
		}
		d.applyContentDetails(details)
	}
	if state.Automation.CinemascapeMode != messages.CinemascapeNone {
		if err := d.query(ctx, messages.CmdGetCinemascapeMask); err != nil {
			return err
		}
	}
	return nil
}

// query sends a state query and folds the reply into the mirrored state.
func (d *Device) query(ctx context.Context, cmd string, fields ...string) error {
	v, err := d.conn.Send(ctx, d.target, cmd, fields...)
	if err != nil {
		return err
	}
	d.apply(v)
	return nil
}

// GetContentDetails fetches the metadata rows for a content handle. The
// passcode unlocks details of titles hidden by parental controls; pass the
// empty string when none is set.
func (d *Device) GetContentDetails(ctx context.Context, handle, passcode string) (*ContentDetails, error) {
	group, err := d.conn.SendGrouped(ctx, d.target, messages.CmdGetContentDetails, handle, passcode)
	if err != nil {
		return nil, err
	}
	return mergeDetails(group), nil
}

// GetSystemPairingInfo queries the paired-system topology.
func (d *Device) GetSystemPairingInfo(ctx context.Context) (*messages.SystemPairingInfo, error) {
	v, err := d.conn.Send(ctx, d.target, messages.CmdGetSystemPairingInfo)
	if err != nil {
		return nil, err
	}
	info, ok := v.(*messages.SystemPairingInfo)
	if !ok {
		return nil, errUnexpectedReply(v)
	}
	return info, nil
}

// GetFriendlySystemName queries the name assigned to the whole system.
func (d *Device) GetFriendlySystemName(ctx context.Context) (string, error) {
	v, err := d.conn.Send(ctx, d.target, messages.CmdGetFriendlySystemName)
	if err != nil {
		return "", err
	}
	name, ok := v.(*messages.FriendlySystemName)
	if !ok {
		return "", errUnexpectedReply(v)
	}
	return name.SystemName(), nil
}

// GetAvailableDevices queries the control protocol device IDs assigned in
// the system.
func (d *Device) GetAvailableDevices(ctx context.Context) ([]string, error) {
	v, err := d.conn.Send(ctx, d.target, messages.CmdGetAvailableDevices)
	if err != nil {
		return nil, err
	}
	devices, ok := v.(*messages.AvailableDevices)
	if !ok {
		return nil, errUnexpectedReply(v)
	}
	return devices.DeviceIDs(), nil
}

// GetAvailableSerialNumbers queries the serial numbers of the components in
// the system.
func (d *Device) GetAvailableSerialNumbers(ctx context.Context) ([]string, error) {
	v, err := d.conn.Send(ctx, d.target, messages.CmdGetAvailableDevicesBySerialNumber)
	if err != nil {
		return nil, err
	}
	serials, ok := v.(*messages.AvailableDevicesBySerialNumber)
	if !ok {
		return nil, errUnexpectedReply(v)
	}
	return serials.SerialNumbers(), nil
}

// GetPlayingTitleName queries the name of the playing title.
func (d *Device) GetPlayingTitleName(ctx context.Context) (string, error) {
	v, err := d.conn.Send(ctx, d.target, messages.CmdGetPlayingTitleName)
	if err != nil {
		return "", err
	}
	title, ok := v.(*messages.TitleName)
	if !ok {
		return "", errUnexpectedReply(v)
	}
	return title.Title(), nil
}

// GetZoneCapabilities queries what a playback zone of the device can do.
// Zone numbering starts at 1.
func (d *Device) GetZoneCapabilities(ctx context.Context, zone int) (*messages.ZoneCapabilities, error) {
	v, err := d.conn.SendToZone(ctx, d.target, zone, messages.CmdGetZoneCapabilities)
	if err != nil {
		return nil, err
	}
	caps, ok := v.(*messages.ZoneCapabilities)
	if !ok {
		return nil, errUnexpectedReply(v)
	}
	return caps, nil
}

// EnableEvents asks older firmware to start broadcasting state-change
// events on this connection. Devices at the supported protocol level send
// events unconditionally, so this is rarely needed.
func (d *Device) EnableEvents(ctx context.Context) error {
	return d.command(ctx, messages.CmdEnableEvents)
}

// command sends a control command, discarding the acknowledgement.
func (d *Device) command(ctx context.Context, cmd string) error {
	_, err := d.conn.Send(ctx, d.target, cmd)
	return err
}

// EnterStandby puts the device into standby.
func (d *Device) EnterStandby(ctx context.Context) error {
	return d.command(ctx, messages.CmdEnterStandby)
}

// LeaveStandby wakes the device from standby.
func (d *Device) LeaveStandby(ctx context.Context) error {
	return d.command(ctx, messages.CmdLeaveStandby)
}

// Play starts or resumes playback.
func (d *Device) Play(ctx context.Context) error { return d.command(ctx, messages.CmdPlay) }

// Pause pauses playback.
func (d *Device) Pause(ctx context.Context) error { return d.command(ctx, messages.CmdPause) }

// Stop stops playback and returns to the on-screen display.
func (d *Device) Stop(ctx context.Context) error { return d.command(ctx, messages.CmdStop) }

// Next skips to the next chapter or track.
func (d *Device) Next(ctx context.Context) error { return d.command(ctx, messages.CmdNext) }

// Previous skips to the previous chapter or track.
func (d *Device) Previous(ctx context.Context) error { return d.command(ctx, messages.CmdPrevious) }

// Replay jumps back a few seconds.
func (d *Device) Replay(ctx context.Context) error { return d.command(ctx, messages.CmdReplay) }

// ScanForward scans forward, accelerating on repeated calls.
func (d *Device) ScanForward(ctx context.Context) error {
	return d.command(ctx, messages.CmdScanForward)
}

// ScanReverse scans backward, accelerating on repeated calls.
func (d *Device) ScanReverse(ctx context.Context) error {
	return d.command(ctx, messages.CmdScanReverse)
}

// Select activates the highlighted on-screen item.
func (d *Device) Select(ctx context.Context) error { return d.command(ctx, messages.CmdSelect) }

// Up moves the on-screen highlight up.
func (d *Device) Up(ctx context.Context) error { return d.command(ctx, messages.CmdUp) }

// Down moves the on-screen highlight down.
func (d *Device) Down(ctx context.Context) error { return d.command(ctx, messages.CmdDown) }

// Left moves the on-screen highlight left.
func (d *Device) Left(ctx context.Context) error { return d.command(ctx, messages.CmdLeft) }

// Right moves the on-screen highlight right.
func (d *Device) Right(ctx context.Context) error { return d.command(ctx, messages.CmdRight) }

// Cancel backs out of the current on-screen context.
func (d *Device) Cancel(ctx context.Context) error { return d.command(ctx, messages.CmdCancel) }

// GoMovieCovers shows the movie covers screen.
func (d *Device) GoMovieCovers(ctx context.Context) error {
	return d.command(ctx, messages.CmdGoMovieCovers)
}

// MenuToggle toggles the Kaleidescape menu during playback.
func (d *Device) MenuToggle(ctx context.Context) error {
	return d.command(ctx, messages.CmdMenuToggle)
}
