package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleidescape-community/kaleidescape-go/internal/testserver"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/connection"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

const testHandle = "26-0.0-S_c446512"

// newTestDevice starts a scripted server answering the priming and refresh
// queries of a powered-on movie player, and a device pointed at it.
func newTestDevice(t *testing.T, script func(*testserver.Server)) (*Device, *testserver.Server) {
	t.Helper()

	srv, err := testserver.Start()
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	srv.Stub(messages.CmdGetDeviceInfo, messages.NameDeviceInfo,
		"06", "123456789012", "01", "10.0.0.5")
	srv.Stub(messages.CmdGetSystemVersion, messages.NameSystemVersion,
		"16", "10.4.2-19218")
	srv.Stub(messages.CmdGetDeviceTypeName, messages.NameDeviceTypeName,
		"Strato S")
	srv.Stub(messages.CmdGetNumZones, messages.NameNumZones, "01", "01")
	srv.Stub(messages.CmdGetDevicePowerState, messages.NameDevicePowerState, "1", "1")
	srv.Stub(messages.CmdGetSystemReadinessState, messages.NameSystemReadinessState, "0")
	srv.Stub(messages.CmdGetFriendlyName, messages.NameFriendlyName, "Theater")

	srv.Stub(messages.CmdGetUIState, messages.NameUIState, "01", "00", "00", "00")
	srv.Stub(messages.CmdGetHighlightedSelection, messages.NameHighlightedSelection, testHandle)
	srv.Stub(messages.CmdGetPlayStatus, messages.NamePlayStatus,
		"0", "0", "00", "00000", "00000", "000", "00000", "00000")
	srv.Stub(messages.CmdGetMovieLocation, messages.NameMovieLocation, "00")
	srv.Stub(messages.CmdGetScreenMask, messages.NameScreenMask,
		"3", "000", "000", "3", "000", "000")
	srv.Stub(messages.CmdGetScreenMask2, messages.NameScreenMask2,
		"000", "000", "0", "0")
	srv.Stub(messages.CmdGetCinemascapeMode, messages.NameCinemascapeMode, "0")

	if script != nil {
		script(srv)
	}

	cfg := connection.Config{
		Host:           srv.Host(),
		Port:           srv.Port(),
		RequestTimeout: 2 * time.Second,
	}
	return New(cfg, ""), srv
}

func stubContentDetails(srv *testserver.Server) {
	srv.Handle(messages.CmdGetContentDetails, func(req *wire.Request) []*wire.Message {
		reply := func(name string, fields ...string) *wire.Message {
			return &wire.Message{
				DeviceID: req.DeviceID,
				Seq:      req.Seq,
				Status:   wire.StatusOK,
				Name:     name,
				Fields:   fields,
			}
		}
		return []*wire.Message{
			reply(messages.NameContentDetailsOverview, "3", req.Fields[0], "Movies"),
			reply(messages.NameContentDetails, "1", "Title", "2001: A Space Odyssey"),
			reply(messages.NameContentDetails, "2", "Year", "1968"),
			reply(messages.NameContentDetails, "3", "Running time", "148"),
		}
	})
}

func TestConnectPrimesState(t *testing.T) {
	d, _ := newTestDevice(t, nil)
	defer d.Disconnect()

	require.NoError(t, d.Connect(context.Background()))

	state := d.State()
	assert.Equal(t, "123456789012", state.System.SerialNumber)
	assert.Equal(t, "10.0.0.5", state.System.IPAddress)
	assert.Equal(t, 16, state.System.Protocol)
	assert.Equal(t, "10.4.2-19218", state.System.KOSVersion)
	assert.Equal(t, "Strato S", state.System.Type)
	assert.Equal(t, 1, state.System.MovieZones)
	assert.Equal(t, "Theater", state.System.FriendlyName)
	assert.Equal(t, messages.PowerOn, state.Power.State)
	assert.Equal(t, messages.ReadinessReady, state.Power.Readiness)
	assert.Equal(t, messages.ScreenMovieList, state.OSD.Screen)
	assert.Equal(t, testHandle, state.OSD.HighlightedSelection)
	assert.Equal(t, messages.PlayStatusNone, state.Movie.PlayStatus)

	assert.True(t, d.IsMoviePlayer())
	assert.False(t, d.IsServerOnly())
	assert.False(t, d.IsMusicPlayer())
}

func TestConnectRejectsOldProtocol(t *testing.T) {
	d, _ := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetSystemVersion, messages.NameSystemVersion, "15", "7.2.1")
	})
	defer d.Disconnect()

	err := d.Connect(context.Background())
	require.ErrorIs(t, err, ErrUnsupportedProtocol)
	assert.False(t, d.IsConnected())
}

func TestConnectSkipsRefreshInStandby(t *testing.T) {
	d, srv := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetDevicePowerState, messages.NameDevicePowerState, "0", "0")
	})
	defer d.Disconnect()

	require.NoError(t, d.Connect(context.Background()))

	assert.Equal(t, messages.PowerStandby, d.State().Power.State)
	assert.NotContains(t, srv.ReceivedNames(), messages.CmdGetUIState)
}

func TestPowerOnEventTriggersRefresh(t *testing.T) {
	d, srv := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetDevicePowerState, messages.NameDevicePowerState, "0", "0")
	})
	defer d.Disconnect()
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent(wire.LocalDeviceID, messages.NameDevicePowerState, "1", "1")

	assert.Eventually(t, func() bool {
		return d.State().Power.State == messages.PowerOn
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		for _, name := range srv.ReceivedNames() {
			if name == messages.CmdGetUIState {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPlayEventLoadsContentDetails(t *testing.T) {
	d, srv := newTestDevice(t, stubContentDetails)
	defer d.Disconnect()
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent(wire.LocalDeviceID, messages.NamePlayStatus,
		"2", "0", "01", "08580", "00020", "001", "00300", "00020")

	assert.Eventually(t, func() bool {
		return d.State().Movie.Title == "2001: A Space Odyssey"
	}, 2*time.Second, 10*time.Millisecond)

	state := d.State()
	assert.Equal(t, messages.PlayStatusPlaying, state.Movie.PlayStatus)
	assert.Equal(t, testHandle, state.Movie.Handle)
	assert.Equal(t, "1968", state.Movie.Year)
	assert.Equal(t, "148", state.Movie.RunningTime)
	assert.Equal(t, 8580, state.Movie.TitleLength)
}

func TestStopEventClearsMovieMetadata(t *testing.T) {
	d, srv := newTestDevice(t, stubContentDetails)
	defer d.Disconnect()
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent(wire.LocalDeviceID, messages.NamePlayStatus,
		"2", "0", "01", "08580", "00020", "001", "00300", "00020")
	assert.Eventually(t, func() bool {
		return d.State().Movie.Title != ""
	}, 2*time.Second, 10*time.Millisecond)

	srv.SendEvent(wire.LocalDeviceID, messages.NamePlayStatus,
		"0", "0", "00", "00000", "00000", "000", "00000", "00000")

	assert.Eventually(t, func() bool {
		state := d.State()
		return state.Movie.PlayStatus == messages.PlayStatusNone && state.Movie.Title == ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAutomationEvents(t *testing.T) {
	d, srv := newTestDevice(t, nil)
	defer d.Disconnect()
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent(wire.LocalDeviceID, messages.NameMovieLocation, "03")
	srv.SendEvent(wire.LocalDeviceID, messages.NameScreenMask,
		"5", "000", "000", "5", "116", "116")
	srv.SendEvent(wire.LocalDeviceID, messages.NameVideoColor, "2", "4", "10", "1")

	assert.Eventually(t, func() bool {
		a := d.State().Automation
		return a.MovieLocation == messages.MovieLocationContent &&
			a.ScreenMaskRatio == messages.AspectRatio235 &&
			a.ScreenMaskTopMaskAbs == 116 &&
			a.VideoColorEOTF == messages.EOTFHDR &&
			a.VideoColorDepth == 10
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEventsForOtherDevicesIgnored(t *testing.T) {
	d, srv := newTestDevice(t, nil)
	defer d.Disconnect()
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent("02", messages.NameDevicePowerState, "0", "0")

	// Give the async queue a moment; the standby event must not land.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, messages.PowerOn, d.State().Power.State)
}

func TestCommands(t *testing.T) {
	d, srv := newTestDevice(t, nil)
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	require.NoError(t, d.Play(ctx))
	require.NoError(t, d.Pause(ctx))
	require.NoError(t, d.Select(ctx))
	require.NoError(t, d.GoMovieCovers(ctx))
	require.NoError(t, d.MenuToggle(ctx))

	names := srv.ReceivedNames()
	assert.Contains(t, names, messages.CmdPlay)
	assert.Contains(t, names, messages.CmdPause)
	assert.Contains(t, names, messages.CmdSelect)
	assert.Contains(t, names, messages.CmdGoMovieCovers)
	assert.Contains(t, names, messages.CmdMenuToggle)
}

func TestGetContentDetails(t *testing.T) {
	d, _ := newTestDevice(t, stubContentDetails)
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	details, err := d.GetContentDetails(ctx, testHandle, "")
	require.NoError(t, err)

	assert.Equal(t, testHandle, details.Handle)
	assert.Equal(t, "Movies", details.Table)
	assert.Equal(t, "2001: A Space Odyssey", details.Field("Title"))
	assert.Equal(t, "148", details.Field("running_time"))
	assert.Equal(t, "148", details.Field("Running time"))
}

func TestGetFriendlySystemName(t *testing.T) {
	d, _ := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetFriendlySystemName, messages.NameFriendlySystemName, "Home Cinema")
	})
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	name, err := d.GetFriendlySystemName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home Cinema", name)
}

func TestGetPlayingTitleName(t *testing.T) {
	d, _ := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetPlayingTitleName, messages.NameTitleName, "2001: A Space Odyssey")
	})
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	title, err := d.GetPlayingTitleName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2001: A Space Odyssey", title)
}

func TestGetZoneCapabilities(t *testing.T) {
	d, srv := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetZoneCapabilities, messages.NameZoneCapabilities, "Y", "Y", "N", "Y")
	})
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	caps, err := d.GetZoneCapabilities(ctx, 1)
	require.NoError(t, err)
	assert.True(t, caps.HasOSD())
	assert.True(t, caps.HasMovies())
	assert.False(t, caps.HasMusic())
	assert.True(t, caps.HasStore())

	var zone int
	for _, req := range srv.Received() {
		if req.Name == messages.CmdGetZoneCapabilities {
			zone = req.Zone
		}
	}
	assert.Equal(t, 1, zone)
}

func TestGetAvailableDevices(t *testing.T) {
	d, _ := newTestDevice(t, func(srv *testserver.Server) {
		srv.Stub(messages.CmdGetAvailableDevices, messages.NameAvailableDevices, "01", "02")
		srv.Stub(messages.CmdGetAvailableDevicesBySerialNumber,
			messages.NameAvailableDevicesBySerialNumber, "123456789012", "00000000029A")
	})
	defer d.Disconnect()
	ctx := context.Background()
	require.NoError(t, d.Connect(ctx))

	ids, err := d.GetAvailableDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "02"}, ids)

	serials, err := d.GetAvailableSerialNumbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"123456789012", "00000000029A"}, serials)
}

func TestOnUpdateCallback(t *testing.T) {
	d, srv := newTestDevice(t, nil)
	defer d.Disconnect()

	updates := make(chan State, 64)
	d.OnUpdate(func(s State) {
		select {
		case updates <- s:
		default:
		}
	})
	require.NoError(t, d.Connect(context.Background()))

	srv.SendEvent(wire.LocalDeviceID, messages.NameUIState, "07", "00", "00", "00")

	assert.Eventually(t, func() bool {
		for {
			select {
			case s := <-updates:
				if s.OSD.Screen == messages.ScreenPlayingMovie {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "running_time", detailKey("Running time"))
	assert.Equal(t, "hires_cover_url", detailKey("HiRes cover URL"))
	assert.Equal(t, "year", detailKey("Year"))
	assert.Equal(t, "rating_reason", detailKey("Rating - reason"))
}
