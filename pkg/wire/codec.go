package wire

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MalformedError is returned by Decode when a line cannot be parsed. The
// Code reuses the protocol status table to classify the failure.
type MalformedError struct {
	Code   Status
	Line   string
	Detail string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed message: %s (%s) in %q", e.Code, e.Detail, e.Line)
	}
	return fmt.Sprintf("malformed message: %s in %q", e.Code, e.Line)
}

func malformed(code Status, line, detail string) *MalformedError {
	return &MalformedError{Code: code, Line: line, Detail: detail}
}

// deviceFormat matches the device prefix: a two-digit control protocol
// device ID, a "#SERIAL" reference, or "??", with an optional zone suffix.
var deviceFormat = regexp.MustCompile(`^(\d\d|#[0-9A-F]+|\?\?)(?:\.(\d\d))?$`)

// Decode parses one reply or event line into a Message. The trailing newline
// may be present or already stripped. The transmitted checksum is verified
// against a checksum recomputed from the rest of the line.
func Decode(line string) (*Message, error) {
	line = strings.TrimRight(line, "\r\n")

	slash := strings.IndexByte(line, '/')
	if slash < 0 {
		return nil, malformed(StatusInvalidDevice, line, "missing device separator")
	}
	dev := deviceFormat.FindStringSubmatch(line[:slash])
	if dev == nil {
		return nil, malformed(StatusInvalidDevice, line, "bad device prefix")
	}
	zone := 0
	if dev[2] != "" {
		zone, _ = strconv.Atoi(dev[2])
	}

	tokens := splitTokens(line[slash+1:])
	if len(tokens) < 4 {
		return nil, malformed(StatusInvalidRequest, line, "too few fields")
	}

	seq, err := strconv.Atoi(tokens[0])
	if err != nil || len(tokens[0]) != 4 || seq < 0 {
		return nil, malformed(StatusInvalidSeq, line, "bad sequence token")
	}

	status, err := parseStatus(tokens[1])
	if err != nil {
		return nil, malformed(StatusUndetermined, line, "bad status token")
	}

	csToken := tokens[len(tokens)-1]
	cs, err := strconv.Atoi(csToken)
	if err != nil || csToken == "" {
		return nil, malformed(StatusChecksumError, line, "non-numeric checksum")
	}
	if want := Checksum(line[:len(line)-len(csToken)]); cs != want {
		return nil, malformed(StatusChecksumError, line,
			fmt.Sprintf("checksum %02d, computed %02d", cs, want))
	}

	name := tokens[2]
	raw := tokens[3 : len(tokens)-1]
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i], err = unescapeField(f)
		if err != nil {
			return nil, malformed(StatusInvalidParameter, line, err.Error())
		}
	}

	return &Message{
		DeviceID: dev[1],
		Zone:     zone,
		Seq:      seq,
		Status:   status,
		Name:     name,
		Fields:   fields,
		Checksum: cs,
	}, nil
}

// Encode renders the reply/event line form of a message, recomputing the
// checksum. It is the inverse of Decode up to checksum recomputation.
func Encode(m *Message) string {
	var b strings.Builder
	b.WriteString(source(m.DeviceID, m.Zone))
	fmt.Fprintf(&b, "/%04d:", m.Seq)
	b.WriteString(m.Status.token())
	b.WriteByte(':')
	b.WriteString(m.Name)
	b.WriteByte(':')
	for _, f := range m.Fields {
		b.WriteString(escapeField(f))
		b.WriteByte(':')
	}
	body := b.String()
	return fmt.Sprintf("%s%02d", body, Checksum(body))
}

// EncodeRequest renders an outgoing command line. Commands carry no status
// token. Sequence assignment is the connection's responsibility; the codec
// only renders whatever it is given.
func EncodeRequest(deviceID string, zone, seq int, name string, fields []string) string {
	var b strings.Builder
	b.WriteString(source(deviceID, zone))
	fmt.Fprintf(&b, "/%04d:", seq)
	b.WriteString(name)
	b.WriteByte(':')
	for _, f := range fields {
		b.WriteString(escapeField(f))
		b.WriteByte(':')
	}
	body := b.String()
	return fmt.Sprintf("%s%02d", body, Checksum(body))
}

// Request is a decoded command line. Commands carry no status token.
type Request struct {
	DeviceID string
	Zone     int
	Seq      int
	Name     string
	Fields   []string
}

// DecodeRequest parses one command line. It is the inverse of EncodeRequest
// and exists for tooling that plays the device side of the protocol.
func DecodeRequest(line string) (*Request, error) {
	line = strings.TrimRight(line, "\r\n")

	slash := strings.IndexByte(line, '/')
	if slash < 0 {
		return nil, malformed(StatusInvalidDevice, line, "missing device separator")
	}
	dev := deviceFormat.FindStringSubmatch(line[:slash])
	if dev == nil {
		return nil, malformed(StatusInvalidDevice, line, "bad device prefix")
	}
	zone := 0
	if dev[2] != "" {
		zone, _ = strconv.Atoi(dev[2])
	}

	tokens := splitTokens(line[slash+1:])
	if len(tokens) < 3 {
		return nil, malformed(StatusInvalidRequest, line, "too few fields")
	}

	seq, err := strconv.Atoi(tokens[0])
	if err != nil || len(tokens[0]) != 4 || seq < 0 {
		return nil, malformed(StatusInvalidSeq, line, "bad sequence token")
	}

	csToken := tokens[len(tokens)-1]
	cs, err := strconv.Atoi(csToken)
	if err != nil || csToken == "" {
		return nil, malformed(StatusChecksumError, line, "non-numeric checksum")
	}
	if want := Checksum(line[:len(line)-len(csToken)]); cs != want {
		return nil, malformed(StatusChecksumError, line,
			fmt.Sprintf("checksum %02d, computed %02d", cs, want))
	}

	raw := tokens[2 : len(tokens)-1]
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i], err = unescapeField(f)
		if err != nil {
			return nil, malformed(StatusInvalidParameter, line, err.Error())
		}
	}

	return &Request{
		DeviceID: dev[1],
		Zone:     zone,
		Seq:      seq,
		Name:     tokens[1],
		Fields:   fields,
	}, nil
}

// Checksum sums the bytes of s modulo 100. The transmitted value covers the
// whole line up to and including the colon preceding the checksum token.
func Checksum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i])
	}
	return sum % 100
}

// parseStatus converts a status token: "OK" or a three-digit code.
func parseStatus(tok string) (Status, error) {
	if tok == "OK" {
		return StatusOK, nil
	}
	if len(tok) != 3 {
		return 0, fmt.Errorf("status token %q", tok)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, err
	}
	return Status(n), nil
}

// splitTokens splits on colons, honoring backslash escapes so fields may
// carry embedded separators. Tokens are returned still escaped.
func splitTokens(s string) []string {
	var tokens []string
	start := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == ':':
			tokens = append(tokens, s[start:i])
			start = i + 1
		}
	}
	return append(tokens, s[start:])
}

// escapeField renders a field value for the wire.
func escapeField(f string) string {
	var b strings.Builder
	for _, r := range f {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ':':
			b.WriteString(`\:`)
		case '/':
			b.WriteString(`\/`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unescapeField decodes a raw field token. Besides the escapes produced by
// escapeField, devices emit \dNNN for arbitrary byte values, and some
// firmware sends raw CR/LF after a backslash.
func unescapeField(f string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(f); i++ {
		c := f[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(f) {
			return "", fmt.Errorf("dangling escape")
		}
		switch f[i] {
		case 'd':
			if i+3 >= len(f) {
				return "", fmt.Errorf("truncated \\d escape")
			}
			n, err := strconv.Atoi(f[i+1 : i+4])
			if err != nil || n > 255 {
				return "", fmt.Errorf("bad \\d escape %q", f[i+1:i+4])
			}
			b.WriteByte(byte(n))
			i += 3
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '/', '\\', ':':
			b.WriteByte(f[i])
		case '\n', '\r':
			// Firmware quirk: bare newlines arrive unencoded after
			// a backslash.
			b.WriteByte(f[i])
		default:
			return "", fmt.Errorf("unknown escape \\%c", f[i])
		}
	}
	return b.String(), nil
}
