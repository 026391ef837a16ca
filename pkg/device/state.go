package device

import "github.com/kaleidescape-community/kaleidescape-go/pkg/messages"

// System holds the device identity, learned once at connect time.
type System struct {
	IPAddress    string
	SerialNumber string
	CPDID        string
	Type         string
	Protocol     int
	KOSVersion   string
	FriendlyName string
	MovieZones   int
	MusicZones   int
}

// Power holds the device power and readiness state.
type Power struct {
	State     string
	Readiness string
	Zones     []string
}

// OSD holds what the on-screen display is showing.
type OSD struct {
	Screen               string
	Popup                string
	Dialog               string
	Screensaver          string
	HighlightedSelection string
}

// Movie holds the playback state and the metadata of the playing title.
type Movie struct {
	Handle          string
	Title           string
	Cover           string
	CoverHiRes      string
	Rating          string
	RatingReason    string
	Year            string
	RunningTime     string
	Actors          string
	Director        string
	Directors       string
	Genre           string
	Genres          string
	Synopsis        string
	Color           string
	Country         string
	AspectRatio     string
	MediaType       string
	PlayStatus      string
	PlaySpeed       int
	TitleNumber     int
	TitleLength     int
	TitleLocation   int
	ChapterNumber   int
	ChapterLength   int
	ChapterLocation int
}

// Automation holds the signals automation controllers act on: masking,
// video output and movie position.
type Automation struct {
	MovieLocation string

	VideoMode          string
	VideoColorEOTF     string
	VideoColorSpace    string
	VideoColorDepth    int
	VideoColorSampling string

	ScreenMaskRatio             string
	ScreenMaskTopTrimRel        int
	ScreenMaskBottomTrimRel     int
	ScreenMaskConservativeRatio string
	ScreenMaskTopMaskAbs        int
	ScreenMaskBottomMaskAbs     int

	ScreenMask2TopMaskAbs    int
	ScreenMask2BottomMaskAbs int

	CinemascapeMode string
	CinemascapeMask int
}

// State is a point-in-time snapshot of everything the device tracks.
type State struct {
	System     System
	Power      Power
	OSD        OSD
	Movie      Movie
	Automation Automation
}

func newState() State {
	return State{
		Power: Power{
			State:     messages.PowerStandby,
			Readiness: messages.ReadinessIdle,
		},
		Movie: Movie{
			PlayStatus: messages.PlayStatusNone,
		},
	}
}

// clearMovie resets playback metadata while keeping playback counters, used
// when the player returns to the OSD.
func (s *State) clearMovie() {
	status := s.Movie.PlayStatus
	s.Movie = Movie{PlayStatus: status}
}

// snapshot returns a deep copy safe to hand to callers.
func (s *State) snapshot() State {
	out := *s
	out.Power.Zones = append([]string(nil), s.Power.Zones...)
	return out
}
