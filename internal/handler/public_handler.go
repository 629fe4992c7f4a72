package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/launchdeck/internal/builder"
	"github.com/launchdeck/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	visitorCookieName   = "ld_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// markdownFields lists the section content fields that accept markdown. They
// are rendered to sanitized HTML under "<field>Html" next to the raw value.
var markdownFields = map[builder.SectionType][]string{
	builder.SectionFAQ:        {"answer"},
	builder.SectionHowItWorks: {"description"},
}

func renderMarkdown(raw string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(raw), &buf); err != nil {
		return sanitizer.Sanitize(raw)
	}
	return sanitizer.Sanitize(buf.String())
}

// renderDocument returns a copy of the document with hidden sections dropped
// and markdown-capable fields rendered for the public page.
func renderDocument(doc builder.Document) builder.Document {
	out := doc.Clone()
	visible := out.Sections[:0]
	for _, section := range out.Sections {
		if !section.Visible {
			continue
		}
		for _, field := range markdownFields[section.Type] {
			renderSubItemMarkdown(section.Content, field)
		}
		visible = append(visible, section)
	}
	out.Sections = visible
	return out
}

// renderSubItemMarkdown walks the section's sub-item lists and renders the
// named field on each record.
func renderSubItemMarkdown(content map[string]any, field string) {
	for _, key := range []string{"items", "steps"} {
		list, ok := content[key].([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			record, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			raw, ok := record[field].(string)
			if !ok || strings.TrimSpace(raw) == "" {
				continue
			}
			record[field+"Html"] = renderMarkdown(raw)
		}
	}
}

func (a *API) visitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(visitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

// ShowPublishedPage resolves /p/:slug for anonymous viewing. The ?ref= code is
// recorded verbatim for attribution; a lookup miss and an unpublished page are
// indistinguishable to the visitor.
func (a *API) ShowPublishedPage(c *gin.Context) {
	slug := c.Param("slug")

	project, err := a.publisher.FindPublished(slug)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	doc, err := a.projects.LoadDocument(project)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	if err := a.visits.Record(project.ID, slug, c.Query("ref"), a.visitorID(c)); err != nil {
		// Attribution is best-effort; the page still renders.
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":     slug,
		"document": renderDocument(doc),
	})
}
