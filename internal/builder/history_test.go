package builder

import "testing"

func docWithTitle(title string) Document {
	return Document{Meta: Meta{Title: title}, GlobalStyles: map[string]string{}}
}

func TestHistoryUndoRedoSequence(t *testing.T) {
	h := NewHistory()
	h.Push(docWithTitle("a"))
	h.Push(docWithTitle("b"))
	h.Push(docWithTitle("c"))

	if doc, ok := h.Undo(); !ok || doc.Meta.Title != "b" {
		t.Fatalf("first undo: got (%v, %v), want b", doc.Meta.Title, ok)
	}
	if doc, ok := h.Undo(); !ok || doc.Meta.Title != "a" {
		t.Fatalf("second undo: got (%v, %v), want a", doc.Meta.Title, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("third undo should be a no-op at the lower bound")
	}

	if doc, ok := h.Redo(); !ok || doc.Meta.Title != "b" {
		t.Fatalf("first redo: got (%v, %v), want b", doc.Meta.Title, ok)
	}
	if doc, ok := h.Redo(); !ok || doc.Meta.Title != "c" {
		t.Fatalf("second redo: got (%v, %v), want c", doc.Meta.Title, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("third redo should be a no-op at the upper bound")
	}
}

func TestHistoryPushDiscardsRedoBranch(t *testing.T) {
	h := NewHistory()
	h.Push(docWithTitle("a"))
	h.Push(docWithTitle("b"))
	h.Push(docWithTitle("c"))

	if _, ok := h.Undo(); !ok {
		t.Fatal("undo failed")
	}
	h.Push(docWithTitle("d"))

	if h.CanRedo() {
		t.Fatal("redo branch should be discarded after a new push")
	}
	if doc, ok := h.Undo(); !ok || doc.Meta.Title != "b" {
		t.Fatalf("undo after branch discard: got %v, want b", doc.Meta.Title)
	}
	if doc, ok := h.Redo(); !ok || doc.Meta.Title != "d" {
		t.Fatalf("redo after branch discard: got %v, want d", doc.Meta.Title)
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 60; i++ {
		h.Push(docWithTitle(string(rune('0' + i%10))))
	}

	if h.Len() != 50 {
		t.Fatalf("expected 50 retained snapshots, got %d", h.Len())
	}

	undos := 0
	for {
		if _, ok := h.Undo(); !ok {
			break
		}
		undos++
	}
	if undos != 49 {
		t.Fatalf("expected 49 undos to reach the oldest retained snapshot, got %d", undos)
	}
}

func TestHistoryCapPreservesRelativeCursor(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 55; i++ {
		h.Push(docWithTitle("x"))
	}
	// Undo twice, then redo: cursor math must survive eviction shifts.
	h.Undo()
	h.Undo()
	if doc, ok := h.Redo(); !ok || doc.Meta.Title != "x" {
		t.Fatalf("redo after eviction failed: (%v, %v)", doc.Meta.Title, ok)
	}
	if !h.CanRedo() {
		t.Fatal("one more redo should remain")
	}
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	gen := &stubIDGen{}
	doc := Document{GlobalStyles: map[string]string{}}
	doc.Sections = append(doc.Sections, NewSection(gen, SectionHero))

	h := NewHistory()
	h.Push(doc)

	next := UpdateSection(doc, doc.Sections[0].ID, map[string]any{"headline": "changed"})
	h.Push(next)

	snap, ok := h.Undo()
	if !ok {
		t.Fatal("undo failed")
	}
	if snap.Sections[0].Content["headline"] == "changed" {
		t.Fatal("earlier snapshot was corrupted by a later operation")
	}
}
