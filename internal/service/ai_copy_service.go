package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/launchdeck/internal/builder"
)

const (
	defaultOpenAICopyModel   = "gpt-4o-mini"
	defaultDeepSeekCopyModel = "deepseek-chat"
	defaultCopyMaxTokens     = 2048
	defaultCopyTemperature   = 0.7
)

// CopyRequest describes the project the copy should sell.
type CopyRequest struct {
	ProjectName string
	Pain        string
	Audience    string
	Template    string
}

// CopyGenerator produces a landing page copy overlay for a project. The
// concrete implementation calls a hosted model; tests inject a fake.
type CopyGenerator interface {
	GenerateCopy(ctx context.Context, req CopyRequest) (*builder.GeneratedCopy, error)
}

// AICopyService generates landing page copy through the chat completions
// client.
type AICopyService struct {
	client *aiChatClient
}

// NewAICopyService constructs the default AICopyService.
func NewAICopyService(settings *SystemSettingService) *AICopyService {
	return &AICopyService{
		client: newAIChatClient(settings, defaultOpenAICopyModel, defaultDeepSeekCopyModel),
	}
}

// SetHTTPClient overrides the HTTP client, mainly for tests.
func (s *AICopyService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetOpenAIBaseURL overrides the OpenAI endpoint.
func (s *AICopyService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetDeepSeekBaseURL overrides the DeepSeek endpoint.
func (s *AICopyService) SetDeepSeekBaseURL(base string) {
	s.client.SetDeepSeekBaseURL(base)
}

const copySystemPrompt = `You write landing page copy for early-stage products. ` +
	`Respond with a single JSON object and nothing else, shaped as ` +
	`{"sections": {"<sectionType>": {<field overrides>}}, "meta": {"title": "...", "description": "..."}}. ` +
	`Only include section types you were asked for. Field names must match the ones listed. ` +
	`Copy should be specific, concrete and free of filler.`

// GenerateCopy asks the configured model for a per-section copy overlay.
// A response that is not valid JSON surfaces builder.ErrCopyUnparseable so the
// caller can fall back to template defaults.
func (s *AICopyService) GenerateCopy(ctx context.Context, req CopyRequest) (*builder.GeneratedCopy, error) {
	tpl := builder.LookupTemplate(req.Template)

	content, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: copySystemPrompt,
		UserPrompt:   buildCopyPrompt(req, tpl),
		MaxTokens:    defaultCopyMaxTokens,
		Temperature:  defaultCopyTemperature,
	})
	if err != nil {
		return nil, err
	}

	return builder.ParseGeneratedCopy(content)
}

func buildCopyPrompt(req CopyRequest, tpl builder.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", strings.TrimSpace(req.ProjectName))
	fmt.Fprintf(&b, "Problem it solves: %s\n", strings.TrimSpace(req.Pain))
	fmt.Fprintf(&b, "Target audience: %s\n", strings.TrimSpace(req.Audience))
	b.WriteString("\nWrite copy for these sections:\n")
	for _, typ := range tpl.SectionTypes {
		switch typ {
		case builder.SectionHero:
			b.WriteString("- hero: headline, subheadline, ctaText\n")
		case builder.SectionFeatures:
			b.WriteString("- features: title, items (three of {icon, title, description})\n")
		case builder.SectionHowItWorks:
			b.WriteString("- howItWorks: title, steps (three of {title, description})\n")
		case builder.SectionTestimonials:
			b.WriteString("- testimonials: title\n")
		case builder.SectionPricing:
			b.WriteString("- pricing: title\n")
		case builder.SectionFAQ:
			b.WriteString("- faq: title, items (three of {question, answer})\n")
		case builder.SectionCTA:
			b.WriteString("- cta: headline, subheadline, buttonText\n")
		case builder.SectionCountdown:
			b.WriteString("- countdown: headline, subtext\n")
		}
	}
	b.WriteString("\nAlso write meta: title (under 60 chars) and description (under 160 chars).\n")
	return b.String()
}
