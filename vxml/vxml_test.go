// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vxml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ict4d/voteline/models"
)

func testGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore failed: %v", err)
	}
	return NewGenerator(store, "http://example.org/", "en"), dir
}

func sampleQuestion() models.Question {
	return models.Question{
		Token:       "tok-1",
		Prompt:      "Do you approve?",
		YesPhone:    "100",
		NoPhone:     "101",
		YesCount:    3,
		NoCount:     1,
		ArtifactURL: "http://example.org/vxml/tok-1.xml",
	}
}

func TestURLs(t *testing.T) {
	gen, _ := testGenerator(t)

	if got := gen.QuestionURL("tok-1"); got != "http://example.org/vxml/tok-1.xml" {
		t.Errorf("QuestionURL = %s", got)
	}
	if got := gen.HomeURL(); got != "http://example.org/vxml/root.xml" {
		t.Errorf("HomeURL = %s", got)
	}
	if got := gen.AudioURLFor("tok-1", "sw"); got != "http://example.org/audios/tok-1-sw.mp3" {
		t.Errorf("AudioURLFor = %s", got)
	}
}

func TestRenderQuestionPromptDeterministic(t *testing.T) {
	gen, _ := testGenerator(t)
	q := sampleQuestion()

	first := gen.RenderQuestionPrompt(q)
	second := gen.RenderQuestionPrompt(q)
	if !bytes.Equal(first, second) {
		t.Error("RenderQuestionPrompt is not deterministic for identical input")
	}

	doc := string(first)
	for _, want := range []string{
		"Do you approve?",
		"dial 100", "dial 101",
		"3 voted yes", "1 voted no",
		gen.HomeURL(),
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Question document missing %q:\n%s", want, doc)
		}
	}
}

func TestRenderQuestionPromptEscapes(t *testing.T) {
	gen, _ := testGenerator(t)
	q := sampleQuestion()
	q.Prompt = `Bread & butter <cheap>?`

	doc := string(gen.RenderQuestionPrompt(q))
	if !strings.Contains(doc, "Bread &amp; butter &lt;cheap&gt;?") {
		t.Errorf("Prompt not XML-escaped:\n%s", doc)
	}
}

func TestRenderHomeMenu(t *testing.T) {
	gen, _ := testGenerator(t)

	empty := string(gen.RenderHomeMenu(nil))
	if !strings.Contains(empty, "<menu>") || strings.Contains(empty, "<choice") {
		t.Errorf("Empty menu should have no choices:\n%s", empty)
	}

	q1, q2 := sampleQuestion(), sampleQuestion()
	q2.Token = "tok-2"
	q2.Prompt = "Second question?"
	q2.ArtifactURL = "http://example.org/vxml/tok-2.xml"

	doc := string(gen.RenderHomeMenu([]models.Question{q1, q2}))
	for _, want := range []string{
		q1.ArtifactURL, q2.ArtifactURL,
		"Do you approve?", "Second question?",
		gen.AudioURL("tok-1"), gen.AudioURL("tok-2"),
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Home menu missing %q:\n%s", want, doc)
		}
	}

	// Entry order follows input order
	if strings.Index(doc, "tok-1.xml") > strings.Index(doc, "tok-2.xml") {
		t.Error("Home menu entries out of order")
	}
}

func TestWriteAndOverwrite(t *testing.T) {
	gen, dir := testGenerator(t)
	q := sampleQuestion()

	if err := gen.WriteQuestionPrompt(q); err != nil {
		t.Fatalf("WriteQuestionPrompt failed: %v", err)
	}

	path := filepath.Join(dir, "tok-1.xml")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if !strings.Contains(string(before), "3 voted yes") {
		t.Errorf("Stored document stale:\n%s", before)
	}

	q.YesCount = 4
	if err := gen.WriteQuestionPrompt(q); err != nil {
		t.Fatalf("WriteQuestionPrompt failed: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read document: %v", err)
	}
	if !strings.Contains(string(after), "4 voted yes") {
		t.Errorf("Overwrite did not replace the document:\n%s", after)
	}

	// No staging leftovers
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("Staging file left behind: %s", e.Name())
		}
	}
}

func TestClearRemovesDocuments(t *testing.T) {
	gen, dir := testGenerator(t)

	gen.WriteHomeMenu(nil)
	gen.WriteQuestionPrompt(sampleQuestion())
	gen.WritePhoneGreeting("100")

	if err := gen.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty store after Clear, found %d entries", len(entries))
	}
}

func TestPhoneGreeting(t *testing.T) {
	gen, dir := testGenerator(t)

	if err := gen.WritePhoneGreeting("100"); err != nil {
		t.Fatalf("WritePhoneGreeting failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "phone-100.xml"))
	if err != nil {
		t.Fatalf("Failed to read greeting: %v", err)
	}
	if !strings.Contains(string(content), "voting line 100") {
		t.Errorf("Greeting missing line number:\n%s", content)
	}
}
