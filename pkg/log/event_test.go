package log

import "testing"

func TestDirectionString(t *testing.T) {
	cases := []struct {
		d    Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Direction(%d).String() = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	cases := []struct {
		l    Layer
		want string
	}{
		{LayerTransport, "TRANSPORT"},
		{LayerWire, "WIRE"},
		{LayerService, "SERVICE"},
		{Layer(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.l.String(); got != c.want {
			t.Errorf("Layer(%d).String() = %q, want %q", c.l, got, c.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	cases := []struct {
		c    Category
		want string
	}{
		{CategoryMessage, "MESSAGE"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.c.String(); got != c.want {
			t.Errorf("Category(%d).String() = %q, want %q", c.c, got, c.want)
		}
	}
}

func TestMessageTypeString(t *testing.T) {
	cases := []struct {
		m    MessageType
		want string
	}{
		{MessageTypeRequest, "REQUEST"},
		{MessageTypeReply, "REPLY"},
		{MessageTypeEvent, "EVENT"},
		{MessageType(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Errorf("MessageType(%d).String() = %q, want %q", c.m, got, c.want)
		}
	}
}
