package device

import (
	"context"
	"fmt"
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/connection"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
)

// asyncTimeout bounds the follow-up queries triggered by events and
// reconnects, which run without a caller-supplied context.
const asyncTimeout = 30 * time.Second

func errUnexpectedReply(v messages.Variant) error {
	return fmt.Errorf("unexpected reply %q", v.Name())
}

// handleEvent folds a dispatched message into the mirrored state and runs
// the follow-up queries some transitions require. It runs on the async
// subscription queue, never on the connection's read loop.
func (d *Device) handleEvent(v messages.Variant) {
	// Replies to this device's own queries are applied by the sender;
	// only unsolicited broadcasts are folded in here.
	if !v.Message().IsEvent() || v.Message().DeviceID != d.target {
		return
	}

	switch m := v.(type) {
	case *messages.DevicePowerState:
		d.apply(m)
		// Waking from standby makes the playback state queryable again.
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		d.Refresh(ctx)

	case *messages.PlayStatus:
		old := d.State().Movie.PlayStatus
		d.apply(m)
		d.playStatusChanged(old)

	default:
		d.apply(v)
	}
}

// playStatusChanged loads movie metadata when playback starts and clears it
// when the player returns to the on-screen display.
func (d *Device) playStatusChanged(old string) {
	state := d.State()

	playing := state.Power.State == messages.PowerOn &&
		state.Movie.PlayStatus != messages.PlayStatusNone

	if playing {
		if old != messages.PlayStatusNone {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		details, err := d.GetContentDetails(ctx, state.OSD.HighlightedSelection, "")
		if err != nil {
			return
		}
		d.applyContentDetails(details)
		return
	}

	if state.Movie.Title != "" {
		d.mu.Lock()
		d.state.clearMovie()
		d.mu.Unlock()
		d.notify()
	}
}

// connectionStateChanged re-primes the mirrored state after an automatic
// reconnect; the device may have rebooted or changed state while away.
func (d *Device) connectionStateChanged(oldState, newState connection.State) {
	if newState != connection.StateConnected || oldState != connection.StateReconnecting {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		if err := d.prime(ctx); err != nil {
			return
		}
		d.Refresh(ctx)
	}()
}

// apply folds one reply or event into the mirrored state. Messages the
// device does not track are ignored.
func (d *Device) apply(v messages.Variant) {
	d.mu.Lock()
	switch m := v.(type) {
	case *messages.DeviceInfo:
		d.state.System.SerialNumber = m.SerialNumber()
		d.state.System.CPDID = m.CPDID()
		d.state.System.IPAddress = m.IP()
	case *messages.SystemVersion:
		d.state.System.Protocol = m.Protocol()
		d.state.System.KOSVersion = m.KOSVersion()
	case *messages.DeviceTypeName:
		d.state.System.Type = m.TypeName()
	case *messages.FriendlyName:
		d.state.System.FriendlyName = m.FriendlyName()
	case *messages.NumZones:
		d.state.System.MovieZones = m.MovieZones()
		d.state.System.MusicZones = m.MusicZones()

	case *messages.DevicePowerState:
		d.state.Power.State = m.Power()
		d.state.Power.Zones = m.Zones()
	case *messages.SystemReadinessState:
		d.state.Power.Readiness = m.Readiness()

	case *messages.UIState:
		d.state.OSD.Screen = m.Screen()
		d.state.OSD.Popup = m.Popup()
		d.state.OSD.Dialog = m.Dialog()
		d.state.OSD.Screensaver = m.Screensaver()
	case *messages.HighlightedSelection:
		d.state.OSD.HighlightedSelection = m.Handle()

	case *messages.PlayStatus:
		d.state.Movie.PlayStatus = m.Play()
		d.state.Movie.PlaySpeed = m.Speed()
		d.state.Movie.TitleNumber = m.TitleNumber()
		d.state.Movie.TitleLength = m.TitleLength()
		d.state.Movie.TitleLocation = m.TitleLocation()
		d.state.Movie.ChapterNumber = m.ChapterNumber()
		d.state.Movie.ChapterLength = m.ChapterLength()
		d.state.Movie.ChapterLocation = m.ChapterLocation()
	case *messages.TitleName:
		d.state.Movie.Title = m.Title()
	case *messages.MovieMediaType:
		d.state.Movie.MediaType = m.MediaType()

	case *messages.MovieLocation:
		d.state.Automation.MovieLocation = m.Location()
	case *messages.VideoMode:
		d.state.Automation.VideoMode = m.Mode()
	case *messages.VideoColor:
		d.state.Automation.VideoColorEOTF = m.EOTF()
		d.state.Automation.VideoColorSpace = m.Space()
		d.state.Automation.VideoColorDepth = m.Depth()
		d.state.Automation.VideoColorSampling = m.Sampling()
	case *messages.ScreenMask:
		d.state.Automation.ScreenMaskRatio = m.ImageRatio()
		d.state.Automation.ScreenMaskTopTrimRel = m.TopTrimRel()
		d.state.Automation.ScreenMaskBottomTrimRel = m.BottomTrimRel()
		d.state.Automation.ScreenMaskConservativeRatio = m.ConservativeRatio()
		d.state.Automation.ScreenMaskTopMaskAbs = m.TopMaskAbs()
		d.state.Automation.ScreenMaskBottomMaskAbs = m.BottomMaskAbs()
	case *messages.ScreenMask2:
		d.state.Automation.ScreenMask2TopMaskAbs = m.TopMaskAbs()
		d.state.Automation.ScreenMask2BottomMaskAbs = m.BottomMaskAbs()
	case *messages.CinemascapeMode:
		d.state.Automation.CinemascapeMode = m.Mode()
	case *messages.CinemascapeMask:
		d.state.Automation.CinemascapeMask = m.Mask()

	default:
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.notify()
}

// applyContentDetails copies the metadata of the playing title into the
// movie state.
func (d *Device) applyContentDetails(details *ContentDetails) {
	d.mu.Lock()
	m := &d.state.Movie
	m.Handle = details.Handle
	m.Title = details.Field("title")
	m.Cover = details.Field("cover_url")
	m.CoverHiRes = details.Field("hires_cover_url")
	m.Rating = details.Field("rating")
	m.RatingReason = details.Field("rating_reason")
	m.Year = details.Field("year")
	m.RunningTime = details.Field("running_time")
	m.Actors = details.Field("actors")
	m.Director = details.Field("director")
	m.Directors = details.Field("directors")
	m.Genre = details.Field("genre")
	m.Genres = details.Field("genres")
	m.Synopsis = details.Field("synopsis")
	m.Color = details.Field("color")
	m.Country = details.Field("country")
	m.AspectRatio = details.Field("aspect_ratio")
	d.mu.Unlock()
	d.notify()
}

func (d *Device) notify() {
	if d.onUpdate != nil {
		d.onUpdate(d.State())
	}
}
