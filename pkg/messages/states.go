package messages

// Symbolic values returned by variant accessors. Accessors translate the
// numeric wire tokens through per-message index tables and fall back to the
// raw token for values newer firmware may add.

// Device power states.
const (
	PowerStandby = "STANDBY"
	PowerOn      = "ON"
)

// Per-zone availability states reported alongside the power state.
const (
	ZoneDisabled  = "DISABLED"
	ZoneAvailable = "AVAILABLE"
)

// System readiness states.
const (
	ReadinessReady         = "READY"
	ReadinessBecomingReady = "BECOMING_READY"
	ReadinessIdle          = "IDLE"
)

// Play statuses.
const (
	PlayStatusNone    = "NONE"
	PlayStatusPaused  = "PAUSED"
	PlayStatusPlaying = "PLAYING"
	PlayStatusForward = "FORWARD"
	PlayStatusReverse = "REVERSE"
)

// Movie locations.
const (
	MovieLocationNone         = "NONE"
	MovieLocationContent      = "CONTENT"
	MovieLocationIntermission = "INTERMISSION"
	MovieLocationCredits      = "CREDITS"
	MovieLocationDiscMenu     = "DISC_MENU"
)

// Movie media types.
const (
	MediaTypeNone   = "NONE"
	MediaTypeDVD    = "DVD"
	MediaTypeStream = "STREAM"
	MediaTypeBluRay = "BLURAY"
)

// On-screen display screens.
const (
	ScreenUnknown         = "UNKNOWN"
	ScreenMovieList       = "MOVIE_LIST"
	ScreenMovieCollection = "MOVIE_COLLECTIONS"
	ScreenMovieCovers     = "MOVIE_COVERS"
	ScreenParentalControl = "PARENTAL_CONTROL"
	ScreenPlayingMovie    = "PLAYING_MOVIE"
	ScreenSystemStatus    = "SYSTEM_STATUS"
	ScreenMusicList       = "MUSIC_LIST"
	ScreenMusicCovers     = "MUSIC_COVERS"
	ScreenMusicCollection = "MUSIC_COLLECTIONS"
	ScreenMusicNowPlaying = "MUSIC_NOW_PLAYING"
	ScreenVaultSummary    = "VAULT_SUMMARY"
	ScreenSystemSettings  = "SYSTEM_SETTINGS"
	ScreenMovieStore      = "MOVIE_STORE"
	ScreenPairedUnitLobby = "PAIRED_UNIT_LOBBY"
)

// On-screen display popups.
const (
	PopupNone           = "NONE"
	PopupDetails        = "DETAILS"
	PopupMovieStatus    = "MOVIE_STATUS"
	PopupMovieNotStatus = "MOVIE_NOT_STATUS"
)

// On-screen display dialogs.
const (
	DialogNone        = "NONE"
	DialogMenu        = "MENU"
	DialogPasscode    = "PASSCODE"
	DialogQuestion    = "QUESTION"
	DialogInformation = "INFORMATION"
	DialogWarning     = "WARNING"
	DialogError       = "ERROR"
	DialogPreplay     = "PREPLAY"
	DialogWarranty    = "WARRANTY"
	DialogKeyboard    = "KEYBOARD"
	DialogIPConfig    = "IP_CONFIG"
)

// Screensaver states.
const (
	SaverInactive = "INACTIVE"
	SaverActive   = "ACTIVE"
)

// Cinemascape modes.
const (
	CinemascapeNone       = "NONE"
	CinemascapeAnamorphic = "ANAMORPHIC"
	CinemascapeLetterbox  = "LETTERBOX"
	CinemascapeNative     = "NATIVE"
)

// Screen mask aspect ratios.
const (
	AspectRatioNone = "NONE"
	AspectRatio133  = "1.33"
	AspectRatio166  = "1.66"
	AspectRatio178  = "1.78"
	AspectRatio185  = "1.85"
	AspectRatio235  = "2.35"
)

// Video color EOTFs.
const (
	EOTFUnknown     = "UNKNOWN"
	EOTFSDR         = "SDR"
	EOTFHDR         = "HDR"
	EOTFSMPTEST2084 = "SMPTE_ST_2084"
)

// Video color spaces.
const (
	ColorSpaceDefault = "DEFAULT"
	ColorSpaceRGB     = "RGB"
	ColorSpaceBT601   = "BT601"
	ColorSpaceBT709   = "BT709"
	ColorSpaceBT2020  = "BT2020"
)

// Video chroma samplings.
const (
	SamplingNone = "NONE"
	Sampling422  = "YCBCR422"
	Sampling444  = "YCBCR444"
	SamplingRGB  = "RGB"
	Sampling420  = "YCBCR420"
)

var powerIndex = map[int]string{
	0: PowerStandby,
	1: PowerOn,
}

var zoneStateIndex = map[int]string{
	0: ZoneDisabled,
	1: ZoneAvailable,
}

var readinessIndex = map[int]string{
	0: ReadinessReady,
	1: ReadinessBecomingReady,
	2: ReadinessIdle,
}

var playStatusIndex = map[int]string{
	0: PlayStatusNone,
	1: PlayStatusPaused,
	2: PlayStatusPlaying,
	4: PlayStatusForward,
	6: PlayStatusReverse,
}

var movieLocationIndex = map[int]string{
	0: MovieLocationNone,
	3: MovieLocationContent,
	4: MovieLocationIntermission,
	5: MovieLocationCredits,
	6: MovieLocationDiscMenu,
}

var mediaTypeIndex = map[int]string{
	0: MediaTypeNone,
	1: MediaTypeDVD,
	2: MediaTypeStream,
	3: MediaTypeBluRay,
}

var screenIndex = map[int]string{
	0:  ScreenUnknown,
	1:  ScreenMovieList,
	2:  ScreenMovieCollection,
	3:  ScreenMovieCovers,
	4:  ScreenParentalControl,
	7:  ScreenPlayingMovie,
	8:  ScreenSystemStatus,
	9:  ScreenMusicList,
	10: ScreenMusicCovers,
	11: ScreenMusicCollection,
	12: ScreenMusicNowPlaying,
	14: ScreenVaultSummary,
	15: ScreenSystemSettings,
	16: ScreenMovieStore,
	17: ScreenPairedUnitLobby,
}

var popupIndex = map[int]string{
	0: PopupNone,
	1: PopupDetails,
	2: PopupMovieStatus,
	3: PopupMovieNotStatus,
}

var dialogIndex = map[int]string{
	0:  DialogNone,
	1:  DialogMenu,
	2:  DialogPasscode,
	3:  DialogQuestion,
	4:  DialogInformation,
	5:  DialogWarning,
	6:  DialogError,
	7:  DialogPreplay,
	8:  DialogWarranty,
	9:  DialogKeyboard,
	10: DialogIPConfig,
}

var saverIndex = map[int]string{
	0: SaverInactive,
	1: SaverActive,
}

var cinemascapeIndex = map[int]string{
	0: CinemascapeNone,
	1: CinemascapeAnamorphic,
	2: CinemascapeLetterbox,
	3: CinemascapeNative,
}

var aspectRatioIndex = map[int]string{
	0: AspectRatioNone,
	1: AspectRatio133,
	2: AspectRatio166,
	3: AspectRatio178,
	4: AspectRatio185,
	5: AspectRatio235,
}

var eotfIndex = map[int]string{
	0: EOTFUnknown,
	1: EOTFSDR,
	2: EOTFHDR,
	3: EOTFSMPTEST2084,
}

var colorSpaceIndex = map[int]string{
	0: ColorSpaceDefault,
	1: ColorSpaceRGB,
	2: ColorSpaceBT601,
	3: ColorSpaceBT709,
	4: ColorSpaceBT2020,
}

var samplingIndex = map[int]string{
	0: SamplingNone,
	1: Sampling422,
	2: Sampling444,
	3: SamplingRGB,
	4: Sampling420,
}

// Video modes the movie player can output. Indexes above the classic SD and
// HD modes were added over several kOS generations; unknown indexes pass
// through as their raw token.
var videoModeIndex = map[int]string{
	0:  "UNKNOWN",
	1:  "480I60_4X3",
	2:  "480I60_16X9",
	3:  "480P60_4X3",
	4:  "480P60_16X9",
	5:  "576I50_4X3",
	6:  "576I50_16X9",
	7:  "576P50_4X3",
	8:  "576P50_16X9",
	9:  "720P60_NTSC_HD",
	10: "720P50_PAL_HD",
	11: "1080I60_16X9",
	12: "1080I50_16X9",
	13: "1080P60_16X9",
	14: "1080P50_16X9",
	17: "1080P24_16X9",
	19: "480I60_64X27",
	20: "576I50_64X27",
	21: "1080I60_64X27",
	22: "1080I50_64X27",
	23: "1080P60_64X27",
	24: "1080P50_64X27",
	25: "1080P24_64X27",
	26: "1080P24_64X27",
	27: "2160P24_16X9",
	28: "2160P30_16X9",
	29: "2160P50_16X9",
	30: "2160P60_16X9",
	31: "2160P24_64X27",
	32: "2160P30_64X27",
	33: "2160P50_64X27",
	34: "2160P60_64X27",
}
