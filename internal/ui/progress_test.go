package ui

import (
	"strings"
	"testing"
)

func TestProgressModelCounts(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("checking", []string{"a.c", "b.c", "c.c"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.c", Status: StatusErrors, Errors: 2, Warnings: 1})
	m.Update(eventMsg{File: "b.c", Status: StatusClean, Cached: true})
	m.Update(eventMsg{File: "zzz.c", Status: StatusClean})

	if m.finished != 2 || m.errors != 2 || m.warnings != 1 {
		t.Fatalf("finished=%d errors=%d warnings=%d", m.finished, m.errors, m.warnings)
	}
	view := m.View()
	for _, want := range []string{"2/3 files", "2 errors, 1 warning", "cached", "a.c", "b.c"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "c.c ") {
		t.Errorf("queued file must not be listed:\n%s", view)
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: checking") {
		t.Errorf("done header missing:\n%s", m.View())
	}
}

func TestProgressModelScrolls(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".c"
	}
	m := NewProgressModel("t", files, nil).(*progressModel)
	for _, f := range files {
		m.applyEvent(Event{File: f, Status: StatusClean})
	}
	if len(m.recent) != maxRows || m.recent[0] != 5 {
		t.Fatalf("recent = %v", m.recent)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.c", 10); got != "src/ver..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("日本語.c", 3); got != "日" {
		t.Fatalf("got %q", got)
	}
}
