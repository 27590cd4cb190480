package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiAliases); got != "gemini-2.5-flash" {
		t.Errorf("gemini-flash -> %q", got)
	}
	if got := resolveModel("gemini-2.0-flash", geminiAliases); got != "gemini-2.0-flash" {
		t.Errorf("pass-through -> %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(coachTestDefinition())

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(s.Properties))
	}
	if s.Properties["goal"].Type != genai.TypeString {
		t.Errorf("goal type = %s", s.Properties["goal"].Type)
	}
	if s.Properties["motifs"].Type != genai.TypeArray || s.Properties["motifs"].Items.Type != genai.TypeString {
		t.Errorf("motifs = %+v", s.Properties["motifs"])
	}
	if len(s.Properties["motifs"].Items.Enum) != 3 {
		t.Errorf("enum = %v", s.Properties["motifs"].Items.Enum)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
