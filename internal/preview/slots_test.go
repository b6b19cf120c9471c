package preview

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackedContent records when it is released
type trackedContent struct {
	name     string
	released *[]string
}

func (c *trackedContent) Kind() Kind { return KindText }
func (c *trackedContent) isContent() {}
func (c *trackedContent) Release()   { *c.released = append(*c.released, c.name) }

func TestSlotsInstall(t *testing.T) {
	var released []string
	mk := func(name string) *Preview {
		return New("/"+name, &trackedContent{name: name, released: &released})
	}

	var s Slots
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Previous())
	_, ok := s.CurrentPath()
	assert.False(t, ok)

	a, b, c, d := mk("a"), mk("b"), mk("c"), mk("d")

	s.Install(a)
	assert.Same(t, a, s.Current())
	assert.Nil(t, s.Previous())
	assert.Empty(t, released)

	s.Install(b)
	assert.Same(t, b, s.Current())
	assert.Same(t, a, s.Previous())
	assert.Empty(t, released, "the previous generation stays alive")

	s.Install(c)
	assert.Same(t, c, s.Current())
	assert.Same(t, b, s.Previous())
	assert.Equal(t, []string{"a"}, released, "only the oldest generation is released")

	s.Install(d)
	assert.Equal(t, []string{"a", "b"}, released)
	path, ok := s.CurrentPath()
	require.True(t, ok)
	assert.Equal(t, "/d", path)
}

func TestSlotsReinstallSamePreview(t *testing.T) {
	var released []string
	p := New("/same", &trackedContent{name: "same", released: &released})

	var s Slots
	s.Install(p)
	s.Install(p)
	s.Install(p)
	assert.Empty(t, released, "a preview still on display must never be released")
}

func TestImageRelease(t *testing.T) {
	img := &Image{Pixels: image.NewRGBA(image.Rect(0, 0, 3, 3)), Format: "png"}
	p := New("/x.png", img)

	var s Slots
	s.Install(p)
	s.Install(NewError(fmt.Errorf("one")))
	require.NotNil(t, img.Pixels)

	s.Install(NewError(fmt.Errorf("two")))
	assert.Nil(t, img.Pixels)
	assert.Equal(t, image.Rectangle{}, img.Bounds())
}

func TestNewError(t *testing.T) {
	p := NewError(fmt.Errorf("broken pipe"))
	assert.Equal(t, ErrorLabel, p.Path)
	assert.Equal(t, KindError, p.Kind())
	assert.EqualError(t, p.Content.(*Error).Err, "broken pipe")

	var empty *Preview
	assert.Equal(t, KindUnknown, empty.Kind())
	empty.Release()
}
