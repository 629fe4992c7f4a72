package builder

// Editor owns the mutable state of one editing session: the live document, its
// undo/redo history, and the currently selected section. One Editor is created
// per session and must only be driven from one goroutine at a time; the HTTP
// layer serializes access per session.
type Editor struct {
	doc      Document
	history  *History
	selected string
	gen      IDGenerator
}

// NewEditor starts an editing session on doc using the default id generator.
func NewEditor(doc Document) *Editor {
	return NewEditorWithGenerator(doc, NewIDGenerator())
}

// NewEditorWithGenerator starts an editing session with an injected id
// generator. The initial document is seeded as the first history snapshot so
// the first edit can be undone back to it.
func NewEditorWithGenerator(doc Document, gen IDGenerator) *Editor {
	h := NewHistory()
	h.Push(doc)
	return &Editor{doc: doc, history: h, gen: gen}
}

// Document returns the current document state.
func (e *Editor) Document() Document {
	return e.doc
}

// Selected returns the id of the selected section, or "" when none.
func (e *Editor) Selected() string {
	return e.selected
}

// Select marks a section as selected. Selecting an id that is not in the
// document clears the selection.
func (e *Editor) Select(sectionID string) {
	if sectionID != "" && e.doc.indexOf(sectionID) < 0 {
		sectionID = ""
	}
	e.selected = sectionID
}

// CanUndo reports whether Undo would change state.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change state.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) apply(doc Document) {
	e.doc = doc
	e.history.Push(doc)
}

// UpdateSection merges fields into a section's content.
func (e *Editor) UpdateSection(sectionID string, fields map[string]any) {
	e.apply(UpdateSection(e.doc, sectionID, fields))
}

// MoveSection relocates a section between display positions.
func (e *Editor) MoveSection(from, to int) error {
	doc, err := MoveSection(e.doc, from, to)
	if err != nil {
		return err
	}
	e.apply(doc)
	return nil
}

// AddSection inserts a new default section after afterIndex (-1 appends) and
// selects it.
func (e *Editor) AddSection(typ SectionType, afterIndex int) (string, error) {
	doc, id, err := AddSection(e.doc, e.gen, typ, afterIndex)
	if err != nil {
		return "", err
	}
	e.apply(doc)
	e.selected = id
	return id, nil
}

// DeleteSection removes a section; deleting the selected section clears the
// selection.
func (e *Editor) DeleteSection(sectionID string) {
	doc, removed := DeleteSection(e.doc, sectionID)
	if !removed {
		return
	}
	e.apply(doc)
	if e.selected == sectionID {
		e.selected = ""
	}
}

// DuplicateSection inserts a deep copy right after the original.
func (e *Editor) DuplicateSection(sectionID string) {
	doc := DuplicateSection(e.doc, e.gen, sectionID)
	if len(doc.Sections) == len(e.doc.Sections) {
		return
	}
	e.apply(doc)
}

// ToggleVisibility flips a section's visible flag.
func (e *Editor) ToggleVisibility(sectionID string) {
	if e.doc.indexOf(sectionID) < 0 {
		return
	}
	e.apply(ToggleVisibility(e.doc, sectionID))
}

// UpdateGlobalStyle sets one theme token.
func (e *Editor) UpdateGlobalStyle(key, value string) {
	e.apply(UpdateGlobalStyle(e.doc, key, value))
}

// UpdateMeta merges a partial meta update.
func (e *Editor) UpdateMeta(patch MetaPatch) {
	e.apply(UpdateMeta(e.doc, patch))
}

// UpdateSocialLinks merges a partial social links update.
func (e *Editor) UpdateSocialLinks(patch SocialLinksPatch) {
	e.apply(UpdateSocialLinks(e.doc, patch))
}

// Undo replaces the live document with the previous snapshot. Returns false
// when at the oldest retained snapshot. A selection pointing at a section that
// no longer exists is cleared.
func (e *Editor) Undo() bool {
	doc, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.doc = doc
	e.Select(e.selected)
	return true
}

// Redo replaces the live document with the next snapshot. Returns false when
// at the newest snapshot.
func (e *Editor) Redo() bool {
	doc, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.doc = doc
	e.Select(e.selected)
	return true
}
