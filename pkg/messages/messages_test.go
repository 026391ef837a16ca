package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

func reply(name string, fields ...string) *wire.Message {
	return &wire.Message{
		DeviceID: "01",
		Seq:      1,
		Status:   wire.StatusOK,
		Name:     name,
		Fields:   fields,
	}
}

func TestRegistry(t *testing.T) {
	t.Run("KnownName", func(t *testing.T) {
		v := New(reply(NameDevicePowerState, "1", "1"))
		require.IsType(t, &DevicePowerState{}, v)
		assert.Equal(t, NameDevicePowerState, v.Name())
	})

	t.Run("UnknownName", func(t *testing.T) {
		msg := reply("FUTURE_FIRMWARE_STATE", "a", "b")
		v := New(msg)
		require.IsType(t, &Generic{}, v)
		assert.Equal(t, "FUTURE_FIRMWARE_STATE", v.Name())
		assert.Same(t, msg, v.Message())
	})

	t.Run("EmptyNameIsAck", func(t *testing.T) {
		v := New(reply(""))
		require.IsType(t, &Ack{}, v)
	})

	t.Run("GroupedVariant", func(t *testing.T) {
		v := New(reply(NameContentDetailsOverview, "12", "26-0.0-S_c446", "movies"))
		g, ok := v.(Grouped)
		require.True(t, ok)
		assert.Equal(t, 12, g.GroupCount())
	})
}

func TestDevicePowerState(t *testing.T) {
	t.Run("Numeric", func(t *testing.T) {
		v := New(reply(NameDevicePowerState, "1", "1", "0")).(*DevicePowerState)
		assert.Equal(t, PowerOn, v.Power())
		assert.Equal(t, []string{ZoneAvailable, ZoneDisabled}, v.Zones())
	})

	t.Run("SymbolicPassthrough", func(t *testing.T) {
		v := New(reply(NameDevicePowerState, "ON")).(*DevicePowerState)
		assert.Equal(t, "ON", v.Power())
		assert.Empty(t, v.Zones())
	})
}

func TestPlayStatus(t *testing.T) {
	v := New(reply(NamePlayStatus, "2", "0", "1", "7260", "4245", "12", "360", "105")).(*PlayStatus)
	assert.Equal(t, PlayStatusPlaying, v.Play())
	assert.Equal(t, 0, v.Speed())
	assert.Equal(t, 1, v.TitleNumber())
	assert.Equal(t, 7260, v.TitleLength())
	assert.Equal(t, 4245, v.TitleLocation())
	assert.Equal(t, 12, v.ChapterNumber())
	assert.Equal(t, 360, v.ChapterLength())
	assert.Equal(t, 105, v.ChapterLocation())
}

func TestDeviceInfo(t *testing.T) {
	t.Run("Assigned", func(t *testing.T) {
		v := New(reply(NameDeviceInfo, "", "123456789", "05", "010.100.020.002")).(*DeviceInfo)
		assert.Equal(t, "000123456789", v.SerialNumber())
		assert.Equal(t, "05", v.CPDID())
		assert.Equal(t, "10.100.20.2", v.IP())
	})

	t.Run("UnassignedCPDID", func(t *testing.T) {
		v := New(reply(NameDeviceInfo, "", "00000000162E", "00", "192.168.001.010")).(*DeviceInfo)
		assert.Equal(t, "00000000162E", v.SerialNumber())
		assert.Empty(t, v.CPDID())
		assert.Equal(t, "192.168.1.10", v.IP())
	})
}

func TestAvailableDevicesBySerialNumber(t *testing.T) {
	v := New(reply(NameAvailableDevicesBySerialNumber, "#123456789ab", "162E")).(*AvailableDevicesBySerialNumber)
	assert.Equal(t, []string{"0123456789AB", "00000000162E"}, v.SerialNumbers())
}

func TestSystemPairingInfo(t *testing.T) {
	t.Run("Paired", func(t *testing.T) {
		v := New(reply(NameSystemPairingInfo,
			"1", "1A2B3C4D", "Home Theater", "123456789ABC", "AABBCCDDEEFF")).(*SystemPairingInfo)
		assert.True(t, v.IsPaired())
		assert.Equal(t, "1a2b3c4d", v.PairedSystemID())
		assert.Equal(t, "Home Theater", v.PairedFriendlyName())
		require.Len(t, v.PairedPeers(), 1)
		assert.Equal(t, [2]string{"123456789ABC", "AABBCCDDEEFF"}, v.PairedPeers()[0])
	})

	t.Run("Unpaired", func(t *testing.T) {
		v := New(reply(NameSystemPairingInfo, "", "", "")).(*SystemPairingInfo)
		assert.False(t, v.IsPaired())
		assert.Nil(t, v.PairedPeers())
	})
}

func TestUIState(t *testing.T) {
	v := New(reply(NameUIState, "7", "0", "1", "0")).(*UIState)
	assert.Equal(t, ScreenPlayingMovie, v.Screen())
	assert.Equal(t, PopupNone, v.Popup())
	assert.Equal(t, DialogMenu, v.Dialog())
	assert.Equal(t, SaverInactive, v.Screensaver())
}

func TestVideoColor(t *testing.T) {
	v := New(reply(NameVideoColor, "3", "4", "36", "1")).(*VideoColor)
	assert.Equal(t, EOTFSMPTEST2084, v.EOTF())
	assert.Equal(t, ColorSpaceBT2020, v.Space())
	assert.Equal(t, 36, v.Depth())
	assert.Equal(t, Sampling422, v.Sampling())
}

func TestVideoMode(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		v := New(reply(NameVideoMode, "", "", "27")).(*VideoMode)
		assert.Equal(t, "2160P24_16X9", v.Mode())
	})

	t.Run("UnknownIndexPassesThrough", func(t *testing.T) {
		v := New(reply(NameVideoMode, "", "", "99")).(*VideoMode)
		assert.Equal(t, "99", v.Mode())
	})
}

func TestScreenMask(t *testing.T) {
	v := New(reply(NameScreenMask, "5", "-35", "35", "3", "120", "120")).(*ScreenMask)
	assert.Equal(t, AspectRatio235, v.ImageRatio())
	assert.Equal(t, -35, v.TopTrimRel())
	assert.Equal(t, 35, v.BottomTrimRel())
	assert.Equal(t, AspectRatio178, v.ConservativeRatio())
	assert.Equal(t, 120, v.TopMaskAbs())
	assert.Equal(t, 120, v.BottomMaskAbs())
}

func TestContentDetails(t *testing.T) {
	v := New(reply(NameContentDetails, "3", "Year", "1972")).(*ContentDetails)
	assert.Equal(t, "Year", v.Key())
	assert.Equal(t, "1972", v.Value())
}

func TestMiscVariants(t *testing.T) {
	t.Run("SystemVersion", func(t *testing.T) {
		v := New(reply(NameSystemVersion, "16", "10.4.2-19218")).(*SystemVersion)
		assert.Equal(t, 16, v.Protocol())
		assert.Equal(t, "10.4.2-19218", v.KOSVersion())
	})

	t.Run("ZoneCapabilities", func(t *testing.T) {
		v := New(reply(NameZoneCapabilities, "Y", "Y", "N", "Y")).(*ZoneCapabilities)
		assert.True(t, v.HasOSD())
		assert.True(t, v.HasMovies())
		assert.False(t, v.HasMusic())
		assert.True(t, v.HasStore())
	})

	t.Run("NumZones", func(t *testing.T) {
		v := New(reply(NameNumZones, "1", "2")).(*NumZones)
		assert.Equal(t, 1, v.MovieZones())
		assert.Equal(t, 2, v.MusicZones())
	})

	t.Run("MovieLocation", func(t *testing.T) {
		v := New(reply(NameMovieLocation, "3")).(*MovieLocation)
		assert.Equal(t, MovieLocationContent, v.Location())
	})

	t.Run("MovieMediaType", func(t *testing.T) {
		v := New(reply(NameMovieMediaType, "2")).(*MovieMediaType)
		assert.Equal(t, MediaTypeStream, v.MediaType())
	})

	t.Run("FriendlyNames", func(t *testing.T) {
		sys := New(reply(NameFriendlySystemName, "Living Room")).(*FriendlySystemName)
		assert.Equal(t, "Living Room", sys.SystemName())
		dev := New(reply(NameFriendlyName, "Strato C")).(*FriendlyName)
		assert.Equal(t, "Strato C", dev.FriendlyName())
	})

	t.Run("TitleName", func(t *testing.T) {
		v := New(reply(NameTitleName, "The Godfather")).(*TitleName)
		assert.Equal(t, "The Godfather", v.Title())
	})

	t.Run("HighlightedSelection", func(t *testing.T) {
		v := New(reply(NameHighlightedSelection, "26-0.0-S_c446")).(*HighlightedSelection)
		assert.Equal(t, "26-0.0-S_c446", v.Handle())
	})

	t.Run("Cinemascape", func(t *testing.T) {
		mode := New(reply(NameCinemascapeMode, "2")).(*CinemascapeMode)
		assert.Equal(t, CinemascapeLetterbox, mode.Mode())
		mask := New(reply(NameCinemascapeMask, "178")).(*CinemascapeMask)
		assert.Equal(t, 178, mask.Mask())
	})
}
