package messages

// Reply and event message names.
const (
	NameAvailableDevices               = "AVAILABLE_DEVICES"
	NameAvailableDevicesBySerialNumber = "AVAILABLE_DEVICES_BY_SERIAL_NUMBER"
	NameCinemascapeMask                = "CINEMASCAPE_MASK"
	NameCinemascapeMode                = "CINEMASCAPE_MODE"
	NameContentDetails                 = "CONTENT_DETAILS"
	NameContentDetailsOverview         = "CONTENT_DETAILS_OVERVIEW"
	NameDeviceInfo                     = "DEVICE_INFO"
	NameDevicePowerState               = "DEVICE_POWER_STATE"
	NameDeviceTypeName                 = "DEVICE_TYPE_NAME"
	NameFriendlyName                   = "FRIENDLY_NAME"
	NameFriendlySystemName             = "FRIENDLY_SYSTEM_NAME"
	NameHighlightedSelection           = "HIGHLIGHTED_SELECTION"
	NameMovieLocation                  = "MOVIE_LOCATION"
	NameMovieMediaType                 = "MOVIE_MEDIA_TYPE"
	NameNumZones                       = "NUM_ZONES"
	NamePlayStatus                     = "PLAY_STATUS"
	NameScreenMask                     = "SCREEN_MASK"
	NameScreenMask2                    = "SCREEN_MASK2"
	NameSystemPairingInfo              = "SYSTEM_PAIRING_INFO"
	NameSystemReadinessState           = "SYSTEM_READINESS_STATE"
	NameSystemVersion                  = "SYSTEM_VERSION"
	NameTitleName                      = "TITLE_NAME"
	NameUIState                        = "UI_STATE"
	NameVideoColor                     = "VIDEO_COLOR"
	NameVideoMode                      = "VIDEO_MODE"
	NameZoneCapabilities               = "ZONE_CAPABILITIES"
)

// Command names. State queries are the GET_ form of the reply name they
// produce, except GET_PLAYING_TITLE_NAME, which replies with TITLE_NAME.
const (
	CmdGetAvailableDevices               = "GET_" + NameAvailableDevices
	CmdGetAvailableDevicesBySerialNumber = "GET_" + NameAvailableDevicesBySerialNumber
	CmdGetCinemascapeMask                = "GET_" + NameCinemascapeMask
	CmdGetCinemascapeMode                = "GET_" + NameCinemascapeMode
	CmdGetContentDetails                 = "GET_" + NameContentDetails
	CmdGetDeviceInfo                     = "GET_" + NameDeviceInfo
	CmdGetDevicePowerState               = "GET_" + NameDevicePowerState
	CmdGetDeviceTypeName                 = "GET_" + NameDeviceTypeName
	CmdGetFriendlyName                   = "GET_" + NameFriendlyName
	CmdGetFriendlySystemName             = "GET_" + NameFriendlySystemName
	CmdGetHighlightedSelection           = "GET_" + NameHighlightedSelection
	CmdGetMovieLocation                  = "GET_" + NameMovieLocation
	CmdGetMovieMediaType                 = "GET_" + NameMovieMediaType
	CmdGetNumZones                       = "GET_" + NameNumZones
	CmdGetPlayingTitleName               = "GET_PLAYING_TITLE_NAME"
	CmdGetPlayStatus                     = "GET_" + NamePlayStatus
	CmdGetScreenMask                     = "GET_" + NameScreenMask
	CmdGetScreenMask2                    = "GET_" + NameScreenMask2
	CmdGetSystemPairingInfo              = "GET_" + NameSystemPairingInfo
	CmdGetSystemReadinessState           = "GET_" + NameSystemReadinessState
	CmdGetSystemVersion                  = "GET_" + NameSystemVersion
	CmdGetUIState                        = "GET_" + NameUIState
	CmdGetVideoColor                     = "GET_" + NameVideoColor
	CmdGetVideoMode                      = "GET_" + NameVideoMode
	CmdGetZoneCapabilities               = "GET_" + NameZoneCapabilities

	CmdCancel              = "CANCEL"
	CmdDown                = "DOWN"
	CmdEnableEvents        = "ENABLE_EVENTS"
	CmdEnterStandby        = "ENTER_STANDBY"
	CmdGoMovieCovers       = "GO_MOVIE_COVERS"
	CmdLeaveStandby        = "LEAVE_STANDBY"
	CmdLeft                = "LEFT"
	CmdMenuToggle          = "KALEIDESCAPE_MENU_TOGGLE"
	CmdNext                = "NEXT"
	CmdPause               = "PAUSE"
	CmdPlay                = "PLAY"
	CmdPrevious            = "PREVIOUS"
	CmdReplay              = "REPLAY"
	CmdRight               = "RIGHT"
	CmdScanForward         = "SCAN_FORWARD"
	CmdScanReverse         = "SCAN_REVERSE"
	CmdSelect              = "SELECT"
	CmdStop                = "STOP"
	CmdUp                  = "UP"
)
