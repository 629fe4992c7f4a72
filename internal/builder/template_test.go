package builder

import (
	"errors"
	"testing"
)

func TestBuildDocumentFromStartupTemplateWithOverlay(t *testing.T) {
	gen := &stubIDGen{}
	payload := &GeneratedCopy{
		Sections: map[string]map[string]any{
			"hero": {"headline": "Stop losing customers"},
		},
	}

	doc := BuildDocument(gen, "startup", payload)

	wantOrder := []SectionType{SectionHero, SectionFeatures, SectionHowItWorks, SectionCTA, SectionFooter}
	if len(doc.Sections) != len(wantOrder) {
		t.Fatalf("expected %d sections, got %d", len(wantOrder), len(doc.Sections))
	}
	for i, typ := range wantOrder {
		if doc.Sections[i].Type != typ {
			t.Fatalf("section %d = %s, want %s", i, doc.Sections[i].Type, typ)
		}
	}

	hero := doc.Sections[0]
	if hero.Content["headline"] != "Stop losing customers" {
		t.Fatalf("overlay not applied: %v", hero.Content["headline"])
	}
	if hero.Content["ctaText"] != "Get early access" {
		t.Fatalf("non-overlaid fields should keep placeholder defaults, got %v", hero.Content["ctaText"])
	}
	if doc.Template != "startup" {
		t.Fatalf("template name not recorded: %q", doc.Template)
	}
}

func TestBuildDocumentNilPayloadUsesDefaults(t *testing.T) {
	gen := &stubIDGen{}
	doc := BuildDocument(gen, "saas", nil)

	if len(doc.Sections) != 7 {
		t.Fatalf("saas template should seed 7 sections, got %d", len(doc.Sections))
	}
	if doc.GlobalStyles["primaryColor"] != "#0ea5e9" {
		t.Fatalf("template style override missing: %v", doc.GlobalStyles["primaryColor"])
	}
	if doc.GlobalStyles["font"] != "Inter" {
		t.Fatal("base style tokens should be present")
	}
}

func TestBuildDocumentUnknownTemplateFallsBack(t *testing.T) {
	gen := &stubIDGen{}
	doc := BuildDocument(gen, "does-not-exist", nil)
	if doc.Template != DefaultTemplate {
		t.Fatalf("expected fallback to %q, got %q", DefaultTemplate, doc.Template)
	}
}

func TestBuildDocumentMetaOverlay(t *testing.T) {
	gen := &stubIDGen{}
	payload := &GeneratedCopy{Meta: &Meta{Title: "Signal Finder", Description: "Find demand before you build."}}

	doc := BuildDocument(gen, "startup", payload)
	if doc.Meta.Title != "Signal Finder" || doc.Meta.Description != "Find demand before you build." {
		t.Fatalf("meta overlay misapplied: %+v", doc.Meta)
	}

	// Blank meta fields in the payload keep the defaults.
	doc = BuildDocument(gen, "startup", &GeneratedCopy{Meta: &Meta{Title: "  "}})
	if doc.Meta.Title != "Your product" {
		t.Fatalf("blank title should keep default, got %q", doc.Meta.Title)
	}
}

func TestParseGeneratedCopy(t *testing.T) {
	payload, err := ParseGeneratedCopy("```json\n{\"sections\":{\"hero\":{\"headline\":\"Hi\"}}}\n```")
	if err != nil {
		t.Fatalf("fenced JSON should parse: %v", err)
	}
	if payload.Sections["hero"]["headline"] != "Hi" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	if _, err := ParseGeneratedCopy("Sorry, I cannot produce JSON today."); !errors.Is(err, ErrCopyUnparseable) {
		t.Fatalf("expected ErrCopyUnparseable, got %v", err)
	}
}

func TestListTemplatesOrder(t *testing.T) {
	templates := ListTemplates()
	if len(templates) != 4 {
		t.Fatalf("expected 4 templates, got %d", len(templates))
	}
	if templates[0].Name != "startup" {
		t.Fatalf("startup should lead the picker, got %q", templates[0].Name)
	}
	for _, tpl := range templates {
		for _, typ := range tpl.SectionTypes {
			if !KnownType(typ) {
				t.Fatalf("template %s references unknown type %s", tpl.Name, typ)
			}
		}
	}
}
