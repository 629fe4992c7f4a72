package builder

import "errors"

// ErrInvalidIndex reports a structurally impossible move or insert position.
// Unlike missing-id operations this is surfaced, not swallowed: the editor UI
// derives indices from the document it just rendered, so an out-of-range index
// means the caller broke an invariant.
var ErrInvalidIndex = errors.New("section index out of range")

// Meta holds the SEO title and description for a landing page.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SocialLinks holds the optional social profile URLs shown in the footer.
type SocialLinks struct {
	Twitter  string `json:"twitter"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// Document is one project's landing page: an ordered sequence of sections plus
// global style, SEO and social configuration. Section order is display order.
type Document struct {
	Sections     []Section         `json:"sections"`
	GlobalStyles map[string]string `json:"globalStyles"`
	Meta         Meta              `json:"meta"`
	SocialLinks  SocialLinks       `json:"socialLinks"`
	Template     string            `json:"template"`
}

// MetaPatch is a partial update for Meta; nil fields are left untouched.
type MetaPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// SocialLinksPatch is a partial update for SocialLinks.
type SocialLinksPatch struct {
	Twitter  *string `json:"twitter"`
	GitHub   *string `json:"github"`
	LinkedIn *string `json:"linkedin"`
	Website  *string `json:"website"`
}

// cloneValue deep-copies JSON-shaped data (maps, slices, scalars). Section
// payloads hold nested lists of sub-item records, so a shallow copy would leave
// history snapshots sharing mutable state with the live document.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Content = make(map[string]any, len(s.Content))
	for k, v := range s.Content {
		out.Content[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the document. Every mutation operation works on
// a clone so prior snapshots held by the history stack stay intact.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	out.GlobalStyles = make(map[string]string, len(d.GlobalStyles))
	for k, v := range d.GlobalStyles {
		out.GlobalStyles[k] = v
	}
	return out
}

func (d Document) indexOf(sectionID string) int {
	for i, s := range d.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

// UpdateSection shallow-merges fields into the matching section's content.
// A missing id is a no-op: the UI may carry a stale selection after an undo
// and must not crash for it.
func UpdateSection(d Document, sectionID string, fields map[string]any) Document {
	idx := d.indexOf(sectionID)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	for k, v := range fields {
		out.Sections[idx].Content[k] = cloneValue(v)
	}
	return out
}

// MoveSection relocates the section at from to position to: it is removed and
// reinserted in a single pass, not swapped. Out-of-range indices are rejected
// with ErrInvalidIndex rather than clamped.
func MoveSection(d Document, from, to int) (Document, error) {
	n := len(d.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d, ErrInvalidIndex
	}
	out := d.Clone()
	moved := out.Sections[from]
	out.Sections = append(out.Sections[:from], out.Sections[from+1:]...)
	rest := make([]Section, 0, n)
	rest = append(rest, out.Sections[:to]...)
	rest = append(rest, moved)
	rest = append(rest, out.Sections[to:]...)
	out.Sections = rest
	return out, nil
}

// AddSection creates a default section of the given type and inserts it
// immediately after afterIndex; afterIndex -1 appends at the end. The new
// section's id is returned so the caller can auto-select it.
func AddSection(d Document, gen IDGenerator, typ SectionType, afterIndex int) (Document, string, error) {
	n := len(d.Sections)
	if afterIndex < -1 || afterIndex >= n {
		return d, "", ErrInvalidIndex
	}
	section := NewSection(gen, typ)
	out := d.Clone()
	if afterIndex == -1 {
		out.Sections = append(out.Sections, section)
		return out, section.ID, nil
	}
	pos := afterIndex + 1
	sections := make([]Section, 0, n+1)
	sections = append(sections, out.Sections[:pos]...)
	sections = append(sections, section)
	sections = append(sections, out.Sections[pos:]...)
	out.Sections = sections
	return out, section.ID, nil
}

// DeleteSection removes the matching section. The removed flag tells the
// caller whether anything changed so it can clear a now-dangling selection.
func DeleteSection(d Document, sectionID string) (Document, bool) {
	idx := d.indexOf(sectionID)
	if idx < 0 {
		return d, false
	}
	out := d.Clone()
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	return out, true
}

// DuplicateSection deep-copies the matching section's payload, assigns a fresh
// id, and inserts the copy immediately after the original. Missing id is a
// no-op.
func DuplicateSection(d Document, gen IDGenerator, sectionID string) Document {
	idx := d.indexOf(sectionID)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	dup := out.Sections[idx].Clone()
	dup.ID = gen.NextID(dup.Type)
	sections := make([]Section, 0, len(out.Sections)+1)
	sections = append(sections, out.Sections[:idx+1]...)
	sections = append(sections, dup)
	sections = append(sections, out.Sections[idx+1:]...)
	out.Sections = sections
	return out
}

// ToggleVisibility flips the matching section's visible flag. Missing id is a
// no-op.
func ToggleVisibility(d Document, sectionID string) Document {
	idx := d.indexOf(sectionID)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[idx].Visible = !out.Sections[idx].Visible
	return out
}

// UpdateGlobalStyle sets one theme token.
func UpdateGlobalStyle(d Document, key, value string) Document {
	out := d.Clone()
	out.GlobalStyles[key] = value
	return out
}

// UpdateMeta merges non-nil patch fields into the document meta.
func UpdateMeta(d Document, patch MetaPatch) Document {
	out := d.Clone()
	if patch.Title != nil {
		out.Meta.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Meta.Description = *patch.Description
	}
	return out
}

// UpdateSocialLinks merges non-nil patch fields into the social links.
func UpdateSocialLinks(d Document, patch SocialLinksPatch) Document {
	out := d.Clone()
	if patch.Twitter != nil {
		out.SocialLinks.Twitter = *patch.Twitter
	}
	if patch.GitHub != nil {
		out.SocialLinks.GitHub = *patch.GitHub
	}
	if patch.LinkedIn != nil {
		out.SocialLinks.LinkedIn = *patch.LinkedIn
	}
	if patch.Website != nil {
		out.SocialLinks.Website = *patch.Website
	}
	return out
}
