package render_test

import (
	"encoding/json"
	"testing"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	c := render.RGB{R: 200, G: 100, B: 10}
	assert.Equal(t, render.RGB{R: 100, G: 50, B: 5}, c.Scale(0.5))
	assert.Equal(t, c, c.Scale(1))
	assert.Equal(t, render.RGB{}, c.Scale(0))
}

func TestParseHex(t *testing.T) {
	c, err := render.ParseHex("#e74c3c")
	require.NoError(t, err)
	assert.Equal(t, render.RGB{R: 0xe7, G: 0x4c, B: 0x3c}, c)
	assert.Equal(t, "#e74c3c", c.Hex())

	c, err = render.ParseHex("0000FF")
	require.NoError(t, err)
	assert.Equal(t, render.RGB{B: 0xff}, c)

	_, err = render.ParseHex("#abc")
	assert.Error(t, err)
	_, err = render.ParseHex("#gggggg")
	assert.Error(t, err)
}

func TestRGBJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Fill render.RGB `json:"fill"`
	}{render.RGB{R: 1, G: 2, B: 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fill":"#010203"}`, string(b))

	var back struct {
		Fill render.RGB `json:"fill"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, render.RGB{R: 1, G: 2, B: 3}, back.Fill)
}
