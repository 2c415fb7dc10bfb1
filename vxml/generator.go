// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vxml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/ict4d/voteline/models"
)

// ErrWriteFailed marks a document that could not be persisted. Tally and
// ledger state are already committed by then; callers retry by
// re-rendering from current state, not by replaying the vote.
var ErrWriteFailed = errors.New("failed to persist vxml document")

// HomeDocName is the menu document the IVR gateway loads first.
const HomeDocName = "root.xml"

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

var funcs = template.FuncMap{"xml": escaper.Replace}

var (
	homeTmpl = template.Must(template.New("home").Funcs(funcs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<vxml xmlns="http://www.w3.org/2001/vxml" version="2.0">
  <menu>
    <prompt>{{if .Entries}}Welcome. Choose a question. <enumerate/>{{end}}</prompt>
{{- range .Entries}}
    <choice next="{{.DocURL}}">
      <audio src="{{.AudioURL}}">{{xml .Prompt}}</audio>
    </choice>
{{- end}}
    <noinput>Please say one of <enumerate/></noinput>
  </menu>
</vxml>
`))

	questionTmpl = template.Must(template.New("question").Funcs(funcs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<vxml xmlns="http://www.w3.org/2001/vxml" version="2.0">
  <form id="question">
    <block>
      <prompt>
        <audio src="{{.AudioURL}}">{{xml .Prompt}}</audio>
        To vote yes, dial {{.YesPhone}}. To vote no, dial {{.NoPhone}}.
        So far {{.YesCount}} voted yes and {{.NoCount}} voted no.
      </prompt>
      <goto next="{{.HomeURL}}"/>
    </block>
  </form>
</vxml>
`))

	phoneTmpl = template.Must(template.New("phone").Funcs(funcs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<vxml xmlns="http://www.w3.org/2001/vxml" version="2.0">
  <form id="line">
    <block>
      <prompt>You have reached voting line {{xml .Number}}. Your vote has been recorded. Thank you.</prompt>
      <goto next="{{.HomeURL}}"/>
    </block>
  </form>
</vxml>
`))
)

// Generator renders IVR documents from ledger state and persists them to
// a Store. Rendering is a pure function of its input: the same question
// state always reproduces the same bytes.
type Generator struct {
	store    Store
	baseURL  string
	language string
}

// NewGenerator builds a generator publishing under baseURL (the public
// address the IVR gateway fetches documents from).
func NewGenerator(store Store, baseURL, language string) *Generator {
	if language == "" {
		language = "en"
	}
	return &Generator{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
	}
}

// QuestionURL is the public location of a question's prompt document.
func (g *Generator) QuestionURL(token string) string {
	return g.baseURL + "/vxml/" + token + ".xml"
}

// HomeURL is the public location of the home menu.
func (g *Generator) HomeURL() string {
	return g.baseURL + "/vxml/" + HomeDocName
}

// AudioURL is the public location of a question's synthesized prompt in
// the generator's default language.
func (g *Generator) AudioURL(token string) string {
	return g.AudioURLFor(token, g.language)
}

// AudioURLFor is the public location of a question's synthesized prompt
// in the given language.
func (g *Generator) AudioURLFor(token, language string) string {
	return g.baseURL + "/audios/" + AudioName(token, language)
}

// AudioName is the file name the synthesizer writes a question prompt to.
func AudioName(token, language string) string {
	return token + "-" + language + ".mp3"
}

type homeEntry struct {
	Prompt   string
	DocURL   string
	AudioURL string
}

// RenderHomeMenu produces the menu document listing every question. With
// no questions it degrades to the bare menu the gateway plays after a
// reset.
func (g *Generator) RenderHomeMenu(questions []models.Question) []byte {
	entries := make([]homeEntry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, homeEntry{
			Prompt:   q.Prompt,
			DocURL:   q.ArtifactURL,
			AudioURL: g.AudioURL(q.Token),
		})
	}

	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	homeTmpl.Execute(&buf, struct{ Entries []homeEntry }{entries})
	return buf.Bytes()
}

// RenderQuestionPrompt produces the per-question document with the
// current tallies and dial targets.
func (g *Generator) RenderQuestionPrompt(q models.Question) []byte {
	var buf bytes.Buffer
	questionTmpl.Execute(&buf, struct {
		models.Question
		AudioURL string
		HomeURL  string
	}{q, g.AudioURL(q.Token), g.HomeURL()})
	return buf.Bytes()
}

// RenderPhoneGreeting produces the confirmation document played on a
// provisioned line.
func (g *Generator) RenderPhoneGreeting(number string) []byte {
	var buf bytes.Buffer
	phoneTmpl.Execute(&buf, struct {
		Number  string
		HomeURL string
	}{number, g.HomeURL()})
	return buf.Bytes()
}

// WriteHomeMenu renders and persists the home menu.
func (g *Generator) WriteHomeMenu(questions []models.Question) error {
	return g.persist(HomeDocName, g.RenderHomeMenu(questions))
}

// WriteQuestionPrompt renders and persists a question's document.
func (g *Generator) WriteQuestionPrompt(q models.Question) error {
	return g.persist(q.Token+".xml", g.RenderQuestionPrompt(q))
}

// WritePhoneGreeting renders and persists a line's greeting document.
func (g *Generator) WritePhoneGreeting(number string) error {
	return g.persist("phone-"+number+".xml", g.RenderPhoneGreeting(number))
}

// Clear wipes every stored document.
func (g *Generator) Clear() error {
	if err := g.store.RemoveAll(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (g *Generator) persist(name string, content []byte) error {
	if err := g.store.Write(name, content); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, name, err)
	}
	return nil
}
