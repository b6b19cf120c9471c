package source

import (
	"testing"

	"glance/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in   string
		want Spec
	}{
		{"-", Spec{Kind: Stdin}},
		{"/tmp/req.fifo", Spec{Kind: Stream, Location: "/tmp/req.fifo"}},
		{"relative/pipe", Spec{Kind: Stream, Location: "relative/pipe"}},
		{"watch:/srv/drop", Spec{Kind: Watch, Location: "/srv/drop"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseSpecInvalid(t *testing.T) {
	for _, in := range []string{"", "watch:"} {
		_, err := ParseSpec(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.IsSourceError(err))
		assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
	}
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs([]string{"-", "watch:/a", "/b"})
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, Stdin, specs[0].Kind)
	assert.Equal(t, Watch, specs[1].Kind)
	assert.Equal(t, Stream, specs[2].Kind)

	_, err = ParseSpecs([]string{"-", ""})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "stdin", Stdin.String())
	assert.Equal(t, "stream", Stream.String())
	assert.Equal(t, "watch", Watch.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestFilter(t *testing.T) {
	f, err := NewFilter([]string{"*.swp", "*/.git/*", "~*"})
	require.NoError(t, err)

	assert.True(t, f.Ignored("/home/u/notes.txt.swp"))
	assert.True(t, f.Ignored("~lock"))
	assert.True(t, f.Ignored("/repo/.git/HEAD"))
	assert.False(t, f.Ignored("/home/u/notes.txt"))

	var none *Filter
	assert.False(t, none.Ignored("/anything"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := NewFilter([]string{"[unclosed"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}
