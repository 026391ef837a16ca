package messages

import (
	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// Variant is a typed, name-specific view over a parsed wire message.
type Variant interface {
	// Name returns the symbolic message name.
	Name() string

	// Message returns the underlying wire message.
	Message() *wire.Message
}

// Grouped is implemented by variants that open a multi-message group, such
// as CONTENT_DETAILS_OVERVIEW. GroupCount reports how many follow-up replies
// complete the group.
type Grouped interface {
	GroupCount() int
}

// Constructor builds a typed variant from a wire message.
type Constructor func(*wire.Message) Variant

// Registry maps message names to variant constructors. It is populated once
// at startup and read-only afterwards, so concurrent lookups from multiple
// connections need no synchronization.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register associates a message name with a constructor. It must only be
// called during setup, before the registry is shared.
func (r *Registry) Register(name string, fn Constructor) {
	r.constructors[name] = fn
}

// New builds the typed variant for a message. Unknown names fall back to
// Generic; they are never an error so that newer firmware cannot break
// parsing.
func (r *Registry) New(msg *wire.Message) Variant {
	if fn, ok := r.constructors[msg.Name]; ok {
		return fn(msg)
	}
	return &Generic{Response{msg}}
}

// Default is the static table of all message variants this package knows.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("", func(m *wire.Message) Variant { return &Ack{Response{m}} })
	r.Register(NameAvailableDevices, func(m *wire.Message) Variant { return &AvailableDevices{Response{m}} })
	r.Register(NameAvailableDevicesBySerialNumber, func(m *wire.Message) Variant { return &AvailableDevicesBySerialNumber{Response{m}} })
	r.Register(NameCinemascapeMask, func(m *wire.Message) Variant { return &CinemascapeMask{Response{m}} })
	r.Register(NameCinemascapeMode, func(m *wire.Message) Variant { return &CinemascapeMode{Response{m}} })
	r.Register(NameContentDetails, func(m *wire.Message) Variant { return &ContentDetails{Response{m}} })
	r.Register(NameContentDetailsOverview, func(m *wire.Message) Variant { return &ContentDetailsOverview{Response{m}} })
	r.Register(NameDeviceInfo, func(m *wire.Message) Variant { return &DeviceInfo{Response{m}} })
	r.Register(NameDevicePowerState, func(m *wire.Message) Variant { return &DevicePowerState{Response{m}} })
	r.Register(NameDeviceTypeName, func(m *wire.Message) Variant { return &DeviceTypeName{Response{m}} })
	r.Register(NameFriendlyName, func(m *wire.Message) Variant { return &FriendlyName{Response{m}} })
	r.Register(NameFriendlySystemName, func(m *wire.Message) Variant { return &FriendlySystemName{Response{m}} })
	r.Register(NameHighlightedSelection, func(m *wire.Message) Variant { return &HighlightedSelection{Response{m}} })
	r.Register(NameMovieLocation, func(m *wire.Message) Variant { return &MovieLocation{Response{m}} })
	r.Register(NameMovieMediaType, func(m *wire.Message) Variant { return &MovieMediaType{Response{m}} })
	r.Register(NameNumZones, func(m *wire.Message) Variant { return &NumZones{Response{m}} })
	r.Register(NamePlayStatus, func(m *wire.Message) Variant { return &PlayStatus{Response{m}} })
	r.Register(NameScreenMask, func(m *wire.Message) Variant { return &ScreenMask{Response{m}} })
	r.Register(NameScreenMask2, func(m *wire.Message) Variant { return &ScreenMask2{Response{m}} })
	r.Register(NameSystemPairingInfo, func(m *wire.Message) Variant { return &SystemPairingInfo{Response{m}} })
	r.Register(NameSystemReadinessState, func(m *wire.Message) Variant { return &SystemReadinessState{Response{m}} })
	r.Register(NameSystemVersion, func(m *wire.Message) Variant { return &SystemVersion{Response{m}} })
	r.Register(NameTitleName, func(m *wire.Message) Variant { return &TitleName{Response{m}} })
	r.Register(NameUIState, func(m *wire.Message) Variant { return &UIState{Response{m}} })
	r.Register(NameVideoColor, func(m *wire.Message) Variant { return &VideoColor{Response{m}} })
	r.Register(NameVideoMode, func(m *wire.Message) Variant { return &VideoMode{Response{m}} })
	r.Register(NameZoneCapabilities, func(m *wire.Message) Variant { return &ZoneCapabilities{Response{m}} })
	return r
}

// New builds a typed variant using the default registry.
func New(msg *wire.Message) Variant {
	return Default.New(msg)
}
