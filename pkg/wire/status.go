package wire

import "fmt"

// Status represents a reply status code.
type Status int

const (
	// StatusOK indicates the command was accepted.
	StatusOK Status = 0

	// StatusInvalidRequest indicates the command name is not recognized.
	StatusInvalidRequest Status = 1

	// StatusDeviceUnavailable indicates the addressed device is not reachable.
	StatusDeviceUnavailable Status = 2

	// StatusUndetermined indicates an unclassified device-side failure.
	StatusUndetermined Status = 3

	// StatusInvalidParameter indicates a command field is out of range.
	StatusInvalidParameter Status = 4

	// StatusInvalidSeq indicates the device rejected the sequence number.
	StatusInvalidSeq Status = 5

	// StatusChecksumError indicates the device computed a different checksum.
	StatusChecksumError Status = 6

	// StatusZoneUnavailable indicates the addressed zone is disabled.
	StatusZoneUnavailable Status = 7

	// StatusInvalidDevice indicates the device ID is not known to the system.
	StatusInvalidDevice Status = 8

	// StatusDeviceBusy indicates the device cannot accept more requests.
	StatusDeviceBusy Status = 9
)

// String returns the symbolic reason for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInvalidRequest:
		return "INVALID_REQUEST"
	case StatusDeviceUnavailable:
		return "DEVICE_UNAVAILABLE"
	case StatusUndetermined:
		return "UNDETERMINED_ERROR"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusInvalidSeq:
		return "INVALID_SEQUENCE"
	case StatusChecksumError:
		return "CHECKSUM_ERROR"
	case StatusZoneUnavailable:
		return "ZONE_UNAVAILABLE"
	case StatusInvalidDevice:
		return "INVALID_DEVICE"
	case StatusDeviceBusy:
		return "DEVICE_BUSY"
	default:
		return fmt.Sprintf("UNKNOWN_%03d", int(s))
	}
}

// IsSuccess reports whether the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusOK
}

// IsError reports whether the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusOK
}

// token renders the wire form of the status: "OK" or a three-digit code.
func (s Status) token() string {
	if s == StatusOK {
		return "OK"
	}
	return fmt.Sprintf("%03d", int(s))
}

// StatusError is returned when a device answers a command with an error
// status. It preserves the code and the command that triggered it.
type StatusError struct {
	Status  Status
	Command string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s for command %q", e.Status, e.Command)
	}
	return e.Status.String()
}
