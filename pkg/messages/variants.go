package messages

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// Response is the common base embedded by every variant.
type Response struct {
	msg *wire.Message
}

// Name returns the symbolic message name.
func (r *Response) Name() string { return r.msg.Name }

// Message returns the underlying wire message.
func (r *Response) Message() *wire.Message { return r.msg }

// Fields returns the raw positional fields.
func (r *Response) Fields() []string { return r.msg.Fields }

// IsEvent reports whether the message arrived unsolicited.
func (r *Response) IsEvent() bool { return r.msg.IsEvent() }

// Status returns the reply status.
func (r *Response) Status() wire.Status { return r.msg.Status }

// intField returns field i as an integer, 0 when absent or non-numeric.
func (r *Response) intField(i int) int {
	n, _ := strconv.Atoi(r.msg.Field(i))
	return n
}

// lookup translates a numeric wire token through an index table, falling
// back to the raw token for values this package does not know yet.
func lookup(index map[int]string, tok string) string {
	if n, err := strconv.Atoi(tok); err == nil {
		if s, ok := index[n]; ok {
			return s
		}
	}
	return tok
}

var leadingZeros = regexp.MustCompile(`\b0+(\d)`)

// normalizeIP strips leading zeros from each octet of a device-reported IP.
func normalizeIP(s string) string {
	return leadingZeros.ReplaceAllString(s, "$1")
}

// normalizeSerial canonicalizes a serial number to its twelve significant
// uppercase digits.
func normalizeSerial(s string) string {
	s = strings.TrimPrefix(s, "#")
	if len(s) > 12 {
		s = s[len(s)-12:]
	}
	for len(s) < 12 {
		s = "0" + s
	}
	return strings.ToUpper(s)
}

// Generic wraps messages with no registered variant, exposing raw fields.
type Generic struct{ Response }

// Ack is the empty-named reply acknowledging a control command.
type Ack struct{ Response }

// AvailableDevices lists the device IDs assigned in the system.
type AvailableDevices struct{ Response }

// DeviceIDs returns the assigned control protocol device IDs.
func (m *AvailableDevices) DeviceIDs() []string { return m.Fields() }

// AvailableDevicesBySerialNumber lists the serial numbers in the system.
type AvailableDevicesBySerialNumber struct{ Response }

// SerialNumbers returns the canonicalized serial numbers.
func (m *AvailableDevicesBySerialNumber) SerialNumbers() []string {
	serials := make([]string, len(m.Fields()))
	for i, f := range m.Fields() {
		serials[i] = normalizeSerial(f)
	}
	return serials
}

// SystemPairingInfo describes the paired-system topology.
type SystemPairingInfo struct{ Response }

// IsPaired reports whether the system is paired.
func (m *SystemPairingInfo) IsPaired() bool { return m.msg.Field(0) != "" }

// PairedSystemID returns the system ID of the paired peer.
func (m *SystemPairingInfo) PairedSystemID() string {
	return strings.ToLower(m.msg.Field(1))
}

// PairedFriendlyName returns the friendly name of the paired peer.
func (m *SystemPairingInfo) PairedFriendlyName() string { return m.msg.Field(2) }

// PairedPeers returns (encore, premier) serial number pairs.
func (m *SystemPairingInfo) PairedPeers() [][2]string {
	if !m.IsPaired() {
		return nil
	}
	var peers [][2]string
	fields := m.Fields()
	for i := 3; i+1 < len(fields); i += 2 {
		peers = append(peers, [2]string{
			normalizeSerial(fields[i]),
			normalizeSerial(fields[i+1]),
		})
	}
	return peers
}

// SystemVersion reports the protocol and kOS versions.
type SystemVersion struct{ Response }

// Protocol returns the control protocol version.
func (m *SystemVersion) Protocol() int { return m.intField(0) }

// KOSVersion returns the kOS software version.
func (m *SystemVersion) KOSVersion() string { return m.msg.Field(1) }

// DeviceInfo identifies a device on the system.
type DeviceInfo struct{ Response }

// SerialNumber returns the canonicalized serial number.
func (m *DeviceInfo) SerialNumber() string { return normalizeSerial(m.msg.Field(1)) }

// CPDID returns the assigned control protocol device ID, empty if unassigned.
func (m *DeviceInfo) CPDID() string {
	if m.intField(2) == 0 {
		return ""
	}
	return m.msg.Field(2)
}

// IP returns the device IP address with leading zeros stripped.
func (m *DeviceInfo) IP() string { return normalizeIP(m.msg.Field(3)) }

// ZoneCapabilities describes what a zone can do.
type ZoneCapabilities struct{ Response }

// HasOSD reports whether the zone renders an on-screen display.
func (m *ZoneCapabilities) HasOSD() bool { return m.msg.Field(0) == "Y" }

// HasMovies reports whether the zone plays movies.
func (m *ZoneCapabilities) HasMovies() bool { return m.msg.Field(1) == "Y" }

// HasMusic reports whether the zone plays music.
func (m *ZoneCapabilities) HasMusic() bool { return m.msg.Field(2) == "Y" }

// HasStore reports whether the zone offers the movie store.
func (m *ZoneCapabilities) HasStore() bool { return m.msg.Field(3) == "Y" }

// NumZones reports the zone counts of a device.
type NumZones struct{ Response }

// MovieZones returns the number of movie zones.
func (m *NumZones) MovieZones() int { return m.intField(0) }

// MusicZones returns the number of music zones.
func (m *NumZones) MusicZones() int { return m.intField(1) }

// DeviceTypeName reports the hardware model name.
type DeviceTypeName struct{ Response }

// TypeName returns the device type name.
func (m *DeviceTypeName) TypeName() string { return m.msg.Field(0) }

// DevicePowerState reports power and per-zone availability.
type DevicePowerState struct{ Response }

// Power returns the symbolic power state.
func (m *DevicePowerState) Power() string {
	return lookup(powerIndex, m.msg.Field(0))
}

// Zones returns the symbolic per-zone availability states.
func (m *DevicePowerState) Zones() []string {
	fields := m.Fields()
	if len(fields) < 2 {
		return nil
	}
	zones := make([]string, len(fields)-1)
	for i, f := range fields[1:] {
		zones[i] = lookup(zoneStateIndex, f)
	}
	return zones
}

// SystemReadinessState reports whether the system is ready for playback.
type SystemReadinessState struct{ Response }

// Readiness returns the symbolic readiness state.
func (m *SystemReadinessState) Readiness() string {
	return lookup(readinessIndex, m.msg.Field(0))
}

// PlayStatus reports playback state and position.
type PlayStatus struct{ Response }

// Play returns the symbolic play status.
func (m *PlayStatus) Play() string { return lookup(playStatusIndex, m.msg.Field(0)) }

// Speed returns the scan speed multiplier.
func (m *PlayStatus) Speed() int { return m.intField(1) }

// TitleNumber returns the playing title number.
func (m *PlayStatus) TitleNumber() int { return m.intField(2) }

// TitleLength returns the title length in seconds.
func (m *PlayStatus) TitleLength() int { return m.intField(3) }

// TitleLocation returns the position within the title in seconds.
func (m *PlayStatus) TitleLocation() int { return m.intField(4) }

// ChapterNumber returns the playing chapter number.
func (m *PlayStatus) ChapterNumber() int { return m.intField(5) }

// ChapterLength returns the chapter length in seconds.
func (m *PlayStatus) ChapterLength() int { return m.intField(6) }

// ChapterLocation returns the position within the chapter in seconds.
func (m *PlayStatus) ChapterLocation() int { return m.intField(7) }

// FriendlySystemName reports the name assigned to the whole system.
type FriendlySystemName struct{ Response }

// SystemName returns the friendly system name.
func (m *FriendlySystemName) SystemName() string { return m.msg.Field(0) }

// FriendlyName reports the name assigned to one device.
type FriendlyName struct{ Response }

// FriendlyName returns the device friendly name.
func (m *FriendlyName) FriendlyName() string { return m.msg.Field(0) }

// UIState reports what the on-screen display is showing.
type UIState struct{ Response }

// Screen returns the symbolic active screen.
func (m *UIState) Screen() string { return lookup(screenIndex, m.msg.Field(0)) }

// Popup returns the symbolic active popup.
func (m *UIState) Popup() string { return lookup(popupIndex, m.msg.Field(1)) }

// Dialog returns the symbolic active dialog.
func (m *UIState) Dialog() string { return lookup(dialogIndex, m.msg.Field(2)) }

// Screensaver returns the symbolic screensaver state.
func (m *UIState) Screensaver() string { return lookup(saverIndex, m.msg.Field(3)) }

// TitleName reports the name of the playing title.
type TitleName struct{ Response }

// Title returns the title name.
func (m *TitleName) Title() string { return m.msg.Field(0) }

// HighlightedSelection reports the handle highlighted in the OSD.
type HighlightedSelection struct{ Response }

// Handle returns the content handle of the highlighted selection.
func (m *HighlightedSelection) Handle() string { return m.msg.Field(0) }

// ContentDetailsOverview opens a group of CONTENT_DETAILS replies.
type ContentDetailsOverview struct{ Response }

// GroupCount returns the number of CONTENT_DETAILS rows that follow.
func (m *ContentDetailsOverview) GroupCount() int { return m.intField(0) }

// Handle returns the content handle the details describe.
func (m *ContentDetailsOverview) Handle() string { return m.msg.Field(1) }

// Table returns the content table the handle belongs to.
func (m *ContentDetailsOverview) Table() string { return m.msg.Field(2) }

// ContentDetails is one metadata row within a content details group.
type ContentDetails struct{ Response }

// Key returns the metadata row name, such as "Title" or "Year".
func (m *ContentDetails) Key() string { return m.msg.Field(1) }

// Value returns the metadata row value.
func (m *ContentDetails) Value() string { return m.msg.Field(2) }

// MovieLocation reports which section of the movie is playing.
type MovieLocation struct{ Response }

// Location returns the symbolic movie location.
func (m *MovieLocation) Location() string {
	return lookup(movieLocationIndex, m.msg.Field(0))
}

// MovieMediaType reports the source media of the playing movie.
type MovieMediaType struct{ Response }

// MediaType returns the symbolic media type.
func (m *MovieMediaType) MediaType() string {
	return lookup(mediaTypeIndex, m.msg.Field(0))
}

// VideoColor reports the active video color configuration.
type VideoColor struct{ Response }

// EOTF returns the symbolic electro-optical transfer function.
func (m *VideoColor) EOTF() string { return lookup(eotfIndex, m.msg.Field(0)) }

// Space returns the symbolic color space.
func (m *VideoColor) Space() string { return lookup(colorSpaceIndex, m.msg.Field(1)) }

// Depth returns the color depth in bits, 0 when unknown.
func (m *VideoColor) Depth() int { return m.intField(2) }

// Sampling returns the symbolic chroma sampling.
func (m *VideoColor) Sampling() string { return lookup(samplingIndex, m.msg.Field(3)) }

// VideoMode reports the output video mode.
type VideoMode struct{ Response }

// Mode returns the symbolic video mode.
func (m *VideoMode) Mode() string { return lookup(videoModeIndex, m.msg.Field(2)) }

// ScreenMask reports image masking relative to the calibrated screen.
type ScreenMask struct{ Response }

// ImageRatio returns the symbolic aspect ratio of the image.
func (m *ScreenMask) ImageRatio() string {
	return lookup(aspectRatioIndex, m.msg.Field(0))
}

// TopTrimRel returns the relative top trim in tenths of a percent.
func (m *ScreenMask) TopTrimRel() int { return m.intField(1) }

// BottomTrimRel returns the relative bottom trim in tenths of a percent.
func (m *ScreenMask) BottomTrimRel() int { return m.intField(2) }

// ConservativeRatio returns the symbolic conservative display ratio.
func (m *ScreenMask) ConservativeRatio() string {
	return lookup(aspectRatioIndex, m.msg.Field(3))
}

// TopMaskAbs returns the absolute top mask in tenths of a percent.
func (m *ScreenMask) TopMaskAbs() int { return m.intField(4) }

// BottomMaskAbs returns the absolute bottom mask in tenths of a percent.
func (m *ScreenMask) BottomMaskAbs() int { return m.intField(5) }

// ScreenMask2 reports image masking relative to the video frame.
type ScreenMask2 struct{ Response }

// TopMaskAbs returns the absolute top mask in tenths of a percent.
func (m *ScreenMask2) TopMaskAbs() int { return m.intField(0) }

// BottomMaskAbs returns the absolute bottom mask in tenths of a percent.
func (m *ScreenMask2) BottomMaskAbs() int { return m.intField(1) }

// TopCalibrated reports whether the top mask is calibrated.
func (m *ScreenMask2) TopCalibrated() int { return m.intField(2) }

// BottomCalibrated reports whether the bottom mask is calibrated.
func (m *ScreenMask2) BottomCalibrated() int { return m.intField(3) }

// CinemascapeMode reports the active CinemaScape display mode.
type CinemascapeMode struct{ Response }

// Mode returns the symbolic CinemaScape mode.
func (m *CinemascapeMode) Mode() string {
	return lookup(cinemascapeIndex, m.msg.Field(0))
}

// CinemascapeMask reports the CinemaScape mask angle.
type CinemascapeMask struct{ Response }

// Mask returns the mask value in tenths of a degree.
func (m *CinemascapeMask) Mask() int { return m.intField(0) }
