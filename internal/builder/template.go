package builder

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrCopyUnparseable reports that an AI copy payload could not be decoded.
// Callers fall back to template defaults; generation failure is never fatal.
var ErrCopyUnparseable = errors.New("generated copy payload is not valid JSON")

// DefaultTemplate is used when an unknown template name is requested.
const DefaultTemplate = "startup"

// Template is a named starting configuration: an ordered section type list
// plus default theme tokens.
type Template struct {
	Name         string            `json:"name"`
	Label        string            `json:"label"`
	SectionTypes []SectionType     `json:"sectionTypes"`
	Styles       map[string]string `json:"styles"`
}

var baseStyles = map[string]string{
	"font":            "Inter",
	"primaryColor":    "#4f46e5",
	"backgroundColor": "#ffffff",
	"cardColor":       "#f8fafc",
	"textColor":       "#0f172a",
	"mutedColor":      "#64748b",
	"borderColor":     "#e2e8f0",
	"cornerRadius":    "rounded",
	"spacing":         "normal",
}

func stylesWith(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(baseStyles)+len(overrides))
	for k, v := range baseStyles {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// templateCatalog maps template names to their configuration. Catalog data,
// not behavior: adding a template is an entry here, nothing else.
var templateCatalog = map[string]Template{
	"startup": {
		Name:         "startup",
		Label:        "Startup",
		SectionTypes: []SectionType{SectionHero, SectionFeatures, SectionHowItWorks, SectionCTA, SectionFooter},
		Styles:       stylesWith(nil),
	},
	"saas": {
		Name:         "saas",
		Label:        "SaaS",
		SectionTypes: []SectionType{SectionHero, SectionLogos, SectionFeatures, SectionPricing, SectionFAQ, SectionCTA, SectionFooter},
		Styles:       stylesWith(map[string]string{"primaryColor": "#0ea5e9", "cornerRadius": "pill"}),
	},
	"waitlist": {
		Name:         "waitlist",
		Label:        "Waitlist",
		SectionTypes: []SectionType{SectionHero, SectionFeatures, SectionCountdown, SectionCTA, SectionFooter},
		Styles:       stylesWith(map[string]string{"backgroundColor": "#0f172a", "cardColor": "#1e293b", "textColor": "#f8fafc", "mutedColor": "#94a3b8", "borderColor": "#334155", "gradient": "midnight"}),
	},
	"launch": {
		Name:         "launch",
		Label:        "Product Launch",
		SectionTypes: []SectionType{SectionHero, SectionVideo, SectionFeatures, SectionTestimonials, SectionPricing, SectionFAQ, SectionCTA, SectionFooter},
		Styles:       stylesWith(map[string]string{"primaryColor": "#16a34a", "spacing": "spacious"}),
	},
}

// templateOrder fixes the listing order for the template picker.
var templateOrder = []string{"startup", "saas", "waitlist", "launch"}

// ListTemplates returns the templates in picker order.
func ListTemplates() []Template {
	out := make([]Template, 0, len(templateOrder))
	for _, name := range templateOrder {
		out = append(out, templateCatalog[name])
	}
	return out
}

// LookupTemplate resolves a template by name, falling back to the startup
// template for unknown names.
func LookupTemplate(name string) Template {
	if t, ok := templateCatalog[strings.TrimSpace(name)]; ok {
		return t
	}
	return templateCatalog[DefaultTemplate]
}

// GeneratedCopy is the overlay payload produced by the AI copy collaborator:
// per-section-type field overrides plus optional SEO meta.
type GeneratedCopy struct {
	Sections map[string]map[string]any `json:"sections"`
	Meta     *Meta                     `json:"meta"`
}

// ParseGeneratedCopy decodes an AI response body into a GeneratedCopy. Models
// routinely wrap JSON in a fenced code block, so fences are stripped before
// decoding.
func ParseGeneratedCopy(raw string) (*GeneratedCopy, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	var payload GeneratedCopy
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, ErrCopyUnparseable
	}
	return &payload, nil
}

// BuildDocument seeds a document from a template, overlaying any generated
// copy onto the matching sections. A nil payload (or one with no usable
// fields) degrades to the template's pure defaults; this path never fails.
func BuildDocument(gen IDGenerator, templateName string, copyPayload *GeneratedCopy) Document {
	tpl := LookupTemplate(templateName)

	doc := Document{
		Sections:     make([]Section, 0, len(tpl.SectionTypes)),
		GlobalStyles: stylesWith(tpl.Styles),
		Meta:         Meta{Title: "Your product", Description: "Describe your product in one sentence."},
		Template:     tpl.Name,
	}

	seen := make(map[SectionType]bool)
	for _, typ := range tpl.SectionTypes {
		section := NewSection(gen, typ)
		if copyPayload != nil && !seen[typ] {
			if overlay, ok := copyPayload.Sections[string(typ)]; ok {
				for k, v := range overlay {
					section.Content[k] = cloneValue(v)
				}
				seen[typ] = true
			}
		}
		doc.Sections = append(doc.Sections, section)
	}

	if copyPayload != nil && copyPayload.Meta != nil {
		if strings.TrimSpace(copyPayload.Meta.Title) != "" {
			doc.Meta.Title = copyPayload.Meta.Title
		}
		if strings.TrimSpace(copyPayload.Meta.Description) != "" {
			doc.Meta.Description = copyPayload.Meta.Description
		}
	}

	return doc
}
