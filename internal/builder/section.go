package builder

import (
	"fmt"
	"sync/atomic"
)

// SectionType identifies one of the fixed landing page block variants.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionHowItWorks   SectionType = "howItWorks"
	SectionTestimonials SectionType = "testimonials"
	SectionPricing      SectionType = "pricing"
	SectionFAQ          SectionType = "faq"
	SectionCTA          SectionType = "cta"
	SectionCountdown    SectionType = "countdown"
	SectionVideo        SectionType = "video"
	SectionLogos        SectionType = "logos"
	SectionFooter       SectionType = "footer"
)

// Section is one typed content block inside a Document. Content holds the
// variant-specific payload as JSON-shaped data; sub-item lists (feature cards,
// FAQ pairs, pricing plans) are []any of map[string]any.
type Section struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Visible bool           `json:"visible"`
	Content map[string]any `json:"content"`
}

// SectionDescriptor describes one catalog entry for the add-section UI.
type SectionDescriptor struct {
	Type        SectionType `json:"type"`
	Label       string      `json:"label"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
}

// IDGenerator produces identifiers that are unique for the lifetime of the
// process. Injectable so tests can assert ids deterministically.
type IDGenerator interface {
	NextID(typ SectionType) string
}

type seqIDGenerator struct {
	counter uint64
}

// NewIDGenerator returns the default generator: a monotonic counter combined
// with the section type name ("hero-1", "faq-2").
func NewIDGenerator() IDGenerator {
	return &seqIDGenerator{}
}

func (g *seqIDGenerator) NextID(typ SectionType) string {
	n := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("%s-%d", typ, n)
}

// sectionCatalog is the single source of truth for variant metadata. Order is
// the order the add-section picker presents them in.
var sectionCatalog = []SectionDescriptor{
	{Type: SectionHero, Label: "Hero", Icon: "sparkles", Description: "Headline, subheadline and primary call to action"},
	{Type: SectionFeatures, Label: "Features", Icon: "grid", Description: "Grid of feature cards with icon, title and description"},
	{Type: SectionHowItWorks, Label: "How It Works", Icon: "list-ordered", Description: "Numbered steps explaining the product flow"},
	{Type: SectionTestimonials, Label: "Testimonials", Icon: "quote", Description: "Customer quotes with name and role"},
	{Type: SectionPricing, Label: "Pricing", Icon: "credit-card", Description: "Pricing plans with feature lists"},
	{Type: SectionFAQ, Label: "FAQ", Icon: "help-circle", Description: "Frequently asked questions and answers"},
	{Type: SectionCTA, Label: "Call To Action", Icon: "megaphone", Description: "Closing banner with a single button"},
	{Type: SectionCountdown, Label: "Countdown", Icon: "timer", Description: "Launch deadline countdown"},
	{Type: SectionVideo, Label: "Video", Icon: "play", Description: "Embedded demo video"},
	{Type: SectionLogos, Label: "Logos", Icon: "building", Description: "Social proof logo strip"},
	{Type: SectionFooter, Label: "Footer", Icon: "minus", Description: "Footer text and social links"},
}

// ListTypes returns the ordered catalog of section variants. The returned
// slice is a copy; callers may not mutate the catalog.
func ListTypes() []SectionDescriptor {
	out := make([]SectionDescriptor, len(sectionCatalog))
	copy(out, sectionCatalog)
	return out
}

// KnownType reports whether typ is part of the catalog.
func KnownType(typ SectionType) bool {
	for _, d := range sectionCatalog {
		if d.Type == typ {
			return true
		}
	}
	return false
}

// NewSection builds a default-populated section of the given type with a fresh
// id. An unknown type falls back to the features variant instead of failing;
// the add-section UI only offers catalog types, so this path covers stale or
// hand-edited requests.
func NewSection(gen IDGenerator, typ SectionType) Section {
	if !KnownType(typ) {
		typ = SectionFeatures
	}
	return Section{
		ID:      gen.NextID(typ),
		Type:    typ,
		Visible: true,
		Content: defaultContent(typ),
	}
}

func defaultContent(typ SectionType) map[string]any {
	switch typ {
	case SectionHero:
		return map[string]any{
			"headline":    "Launch your idea in minutes",
			"subheadline": "Describe the problem you solve and why it matters.",
			"ctaText":     "Get early access",
			"ctaLink":     "#signup",
		}
	case SectionFeatures:
		return map[string]any{
			"title": "Everything you need",
			"items": []any{
				map[string]any{"icon": "zap", "title": "Fast to set up", "description": "Go from idea to page without touching code."},
				map[string]any{"icon": "shield", "title": "Built to convert", "description": "Sections proven to turn visitors into signups."},
				map[string]any{"icon": "bar-chart", "title": "Measure interest", "description": "See which channels actually bring people in."},
			},
		}
	case SectionHowItWorks:
		return map[string]any{
			"title": "How it works",
			"steps": []any{
				map[string]any{"title": "Describe your idea", "description": "Tell us the pain you solve and who feels it."},
				map[string]any{"title": "Pick a template", "description": "Start from a layout that fits your launch."},
				map[string]any{"title": "Publish and share", "description": "Put your page live on its own link."},
			},
		}
	case SectionTestimonials:
		return map[string]any{
			"title": "What early users say",
			"items": []any{
				map[string]any{"quote": "This saved me a weekend of fiddling with page builders.", "name": "Alex Rivera", "role": "Indie founder"},
				map[string]any{"quote": "I validated my idea before writing a line of code.", "name": "Sam Chen", "role": "Product manager"},
			},
		}
	case SectionPricing:
		return map[string]any{
			"title": "Simple pricing",
			"plans": []any{
				map[string]any{"name": "Starter", "price": "0", "period": "month", "features": []any{"1 landing page", "Community support"}, "ctaText": "Start free", "highlighted": false},
				map[string]any{"name": "Pro", "price": "19", "period": "month", "features": []any{"Unlimited pages", "Custom slug", "Attribution tracking"}, "ctaText": "Go Pro", "highlighted": true},
				map[string]any{"name": "Team", "price": "49", "period": "month", "features": []any{"Everything in Pro", "Priority support"}, "ctaText": "Contact us", "highlighted": false},
			},
		}
	case SectionFAQ:
		return map[string]any{
			"title": "Frequently asked questions",
			"items": []any{
				map[string]any{"question": "Do I need to know how to code?", "answer": "No. Every section is edited in the dashboard."},
				map[string]any{"question": "Can I use my own domain?", "answer": "Pages live under a shareable link; custom domains are on the roadmap."},
				map[string]any{"question": "Is there a free plan?", "answer": "Yes, the Starter plan is free forever."},
			},
		}
	case SectionCTA:
		return map[string]any{
			"headline":    "Ready to find out if people want this?",
			"subheadline": "Put a page in front of real users today.",
			"buttonText":  "Get started",
			"buttonLink":  "#signup",
		}
	case SectionCountdown:
		return map[string]any{
			"headline": "Launching soon",
			"deadline": "2026-12-31T00:00:00Z",
			"subtext":  "Join the waitlist before we open the doors.",
		}
	case SectionVideo:
		return map[string]any{
			"title":    "See it in action",
			"videoUrl": "",
			"caption":  "A two minute walkthrough of the product.",
		}
	case SectionLogos:
		return map[string]any{
			"title": "Trusted by builders at",
			"logos": []any{
				map[string]any{"name": "Acme", "imageUrl": ""},
				map[string]any{"name": "Northwind", "imageUrl": ""},
				map[string]any{"name": "Initech", "imageUrl": ""},
				map[string]any{"name": "Globex", "imageUrl": ""},
			},
		}
	case SectionFooter:
		return map[string]any{
			"text":            "Built with LaunchDeck",
			"showSocialLinks": true,
		}
	}
	return map[string]any{}
}
