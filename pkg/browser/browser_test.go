package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioCRenderHi(t *testing.T) {
	doc := ParseHTML(`<html><body><p style="color:#f00">Hi</p></body></html>`)
	styles := Cascade(doc, nil)
	body := FindElement(doc, "body")
	box := Layout(doc, styles, 480, 272)
	require.NotNil(t, box)
	_ = body

	cmds := Paint(box)
	var texts []PaintCommand
	for _, c := range cmds {
		if c.Op == PaintDrawText {
			texts = append(texts, c)
		}
	}
	require.Len(t, texts, 1)
	assert.Equal(t, "Hi", texts[0].Text)
	assert.Equal(t, uint8(0xff), texts[0].Color.R)
	assert.Equal(t, uint8(0x00), texts[0].Color.G)
	assert.GreaterOrEqual(t, texts[0].X, box.X)
	assert.GreaterOrEqual(t, texts[0].Y, box.Y)
}

func TestCascadeSpecificityLaterWins(t *testing.T) {
	doc := ParseHTML(`<html><body><p class="a">x</p></body></html>`)
	rules := ParseCSS(`p { color: #000000; } .a { color: #112233; }`)
	styles := Cascade(doc, rules)
	p := FindElement(doc, "p")
	st := styles[p]
	assert.Equal(t, uint8(0x11), st.Color.R)
}

func TestMarginCollapsing(t *testing.T) {
	doc := ParseHTML(`<html><body><div style="margin-bottom:20px">a</div><div style="margin-top:10px">b</div></body></html>`)
	styles := Cascade(doc, nil)
	box := Layout(doc, styles, 480, 272)
	require.Len(t, box.Children, 2)
	firstBottom := box.Children[0].Y + box.Children[0].H
	secondTop := box.Children[1].Y
	assert.InDelta(t, 20, secondTop-firstBottom, 1)
}

func TestNavigationBackForwardLaws(t *testing.T) {
	c := NewController()
	c.Navigate("https://a", 1)
	c.Navigate("https://b", 2)
	c.Navigate("https://c", 3)

	cur, _ := c.Back()
	assert.Equal(t, "https://b", cur.URL)

	cur, _ = c.Forward()
	assert.Equal(t, "https://c", cur.URL)

	cur, _ = c.Back()
	assert.Equal(t, "https://b", cur.URL)
	cur, _ = c.Forward()
	assert.Equal(t, "https://c", cur.URL)
}

func TestBackFromInitialIsNoOp(t *testing.T) {
	c := NewController()
	c.Navigate("https://only", 1)
	cur, ok := c.Back()
	assert.True(t, ok)
	assert.Equal(t, "https://only", cur.URL)
}

func TestGeminiHeadingAndLink(t *testing.T) {
	lines := ParseGemini("# Title\n=> gemini://example.com link text\nplain\n")
	require.Len(t, lines, 3)
	assert.Equal(t, GeminiHeading1, lines[0].Kind)
	assert.Equal(t, GeminiLink, lines[1].Kind)
	assert.Equal(t, "gemini://example.com", lines[1].URL)
}
