package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKOS(t *testing.T) {
	v, err := ParseKOS("10.4.2-19218")
	require.NoError(t, err)
	assert.Equal(t, KOSVersion{Major: 10, Minor: 4, Patch: 2, Build: "19218"}, v)
	assert.Equal(t, "10.4.2-19218", v.String())

	v, err = ParseKOS("9.0.1")
	require.NoError(t, err)
	assert.Equal(t, KOSVersion{Major: 9, Minor: 0, Patch: 1}, v)
	assert.Equal(t, "9.0.1", v.String())
}

func TestParseKOSInvalid(t *testing.T) {
	for _, s := range []string{"", "10", "10.4", "10.4.x", "10..2", "a.b.c"} {
		_, err := ParseKOS(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestAtLeast(t *testing.T) {
	v := KOSVersion{Major: 10, Minor: 4, Patch: 2}

	assert.True(t, v.AtLeast(KOSVersion{Major: 10, Minor: 4, Patch: 2}))
	assert.True(t, v.AtLeast(KOSVersion{Major: 10, Minor: 3, Patch: 9}))
	assert.True(t, v.AtLeast(KOSVersion{Major: 9, Minor: 9, Patch: 9}))
	assert.False(t, v.AtLeast(KOSVersion{Major: 10, Minor: 4, Patch: 3}))
	assert.False(t, v.AtLeast(KOSVersion{Major: 11, Minor: 0, Patch: 0}))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(MinProtocol))
	assert.True(t, Supported(MinProtocol+1))
	assert.False(t, Supported(MinProtocol-1))
}
