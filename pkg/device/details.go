package device

import (
	"strings"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
)

// ContentDetails is the merged result of a content details query: the
// overview reply plus every metadata row that followed it, keyed by the
// normalized row name.
type ContentDetails struct {
	Handle string
	Table  string
	Fields map[string]string
}

// Field returns the value of a metadata row. Keys are matched after
// normalization, so "Cover URL", "cover url" and "cover_url" are the same.
func (d *ContentDetails) Field(key string) string {
	return d.Fields[detailKey(key)]
}

// detailKey normalizes a metadata row name: lowercased with runs of
// non-alphanumeric characters collapsed to single underscores.
func detailKey(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mergeDetails folds a grouped content details response into one value.
func mergeDetails(group []messages.Variant) *ContentDetails {
	out := &ContentDetails{Fields: make(map[string]string)}
	for _, v := range group {
		switch m := v.(type) {
		case *messages.ContentDetailsOverview:
			out.Handle = m.Handle()
			out.Table = m.Table()
		case *messages.ContentDetails:
			out.Fields[detailKey(m.Key())] = m.Value()
		}
	}
	return out
}
