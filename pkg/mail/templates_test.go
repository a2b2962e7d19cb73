package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLetterText(t *testing.T) {
	body, err := RenderLetterText(LetterParams{
		Giver:    "Alice",
		Receiver: "Bob",
		GIFURL:   "https://media.example.com/festive.gif",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Ho ho ho Alice")
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, "https://media.example.com/festive.gif")
	assert.Contains(t, body, "Secret Santa", "default signature when no branding name is set")
}

func TestRenderLetterTextBranding(t *testing.T) {
	body, err := RenderLetterText(LetterParams{
		Giver:        "Alice",
		Receiver:     "Bob",
		BrandingName: "North Pole Logistics",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "North Pole Logistics")
}

func TestRenderLetterHTMLEmbedsGIF(t *testing.T) {
	body, err := RenderLetterHTML(LetterParams{
		Giver:    "Alice",
		Receiver: "Bob",
		GIFURL:   "https://media.example.com/festive.gif",
		GIFCID:   "abc123.gif",
	})
	require.NoError(t, err)
	assert.Contains(t, body, `cid:abc123.gif`)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
}

func TestRenderLetterHTMLWithoutGIFFallsBackToLink(t *testing.T) {
	body, err := RenderLetterHTML(LetterParams{
		Giver:    "Alice",
		Receiver: "Bob",
		GIFURL:   "https://media.example.com/festive.gif",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "cid:")
	assert.Contains(t, body, `href="https://media.example.com/festive.gif"`)
}

func TestRenderLetterHTMLEscapesNames(t *testing.T) {
	body, err := RenderLetterHTML(LetterParams{
		Giver:    "<script>alert(1)</script>",
		Receiver: "Bob",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
