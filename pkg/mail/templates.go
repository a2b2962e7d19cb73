package mail

import (
	"bytes"
	_ "embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
)

// LetterParams feeds the plain-text and HTML letter templates.
type LetterParams struct {
	Giver        string
	Receiver     string
	GIFURL       string
	GIFCID       string
	BrandingName string
}

var (
	//go:embed templates/letter.txt
	letterTextRaw string
	//go:embed templates/letter.html
	letterHTMLRaw string

	letterText = texttemplate.New("letter-text")
	letterHTML = htmltemplate.New("letter-html")
)

func init() {
	if _, err := letterText.Funcs(sprig.TxtFuncMap()).Parse(letterTextRaw); err != nil {
		panic(err)
	}
	if _, err := letterHTML.Funcs(sprig.HtmlFuncMap()).Parse(letterHTMLRaw); err != nil {
		panic(err)
	}
}

// RenderLetterText renders the plain-text letter body.
func RenderLetterText(p LetterParams) (string, error) {
	b := bytes.Buffer{}
	err := letterText.Execute(&b, p)
	return b.String(), err
}

// RenderLetterHTML renders the HTML letter body.
func RenderLetterHTML(p LetterParams) (string, error) {
	b := bytes.Buffer{}
	err := letterHTML.Execute(&b, p)
	return b.String(), err
}
