package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropdown_ToggleAndChoose(t *testing.T) {
	d := NewDropdown([]string{"Wikimedia Commons", "place_holder"})

	_, ok := d.Choose()
	require.False(t, ok, "closed dropdown must not choose")

	d.Toggle()
	require.True(t, d.Open())

	d.MoveDown()
	name, ok := d.Choose()
	require.True(t, ok)
	assert.Equal(t, "place_holder", name)
	assert.False(t, d.Open(), "choosing closes the list")

	d.Toggle()
	d.Toggle()
	assert.False(t, d.Open())
}

func TestDropdown_CursorWraps(t *testing.T) {
	d := NewDropdown([]string{"a", "b", "c"})
	d.Toggle()

	d.MoveUp()
	assert.Equal(t, 2, d.Cursor())
	d.MoveDown()
	assert.Equal(t, 0, d.Cursor())
}

func TestDropdown_Empty(t *testing.T) {
	d := NewDropdown(nil)
	d.Toggle()
	d.MoveDown()
	_, ok := d.Choose()
	assert.False(t, ok)
}

func TestTextInput_Submit(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantOK  bool
		wantRaw string
	}{
		{name: "plain text", value: "button is broken", wantOK: true, wantRaw: "button is broken"},
		{name: "raw value keeps surrounding spaces", value: "  crash on save ", wantOK: true, wantRaw: "  crash on save "},
		{name: "empty", value: "", wantOK: false},
		{name: "spaces only", value: "   ", wantOK: false},
		{name: "blank lines", value: "\n \n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewTextInput()
			in.SetValue(tt.value)

			raw, ok := in.Submit()
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRaw, raw)
				assert.Empty(t, in.Value(), "input must be cleared after submit")
			}
		})
	}
}
