package ui

import (
	"strings"
	"testing"
)

func TestProgressModelCountsFiles(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("checking", []string{"a.php", "b.php", "c.php"}, events).(*progressModel)

	m.Update(eventMsg(Event{Path: "b.php", Status: StatusFindings, Findings: 2}))
	m.Update(eventMsg(Event{Path: "a.php", Status: StatusClean}))
	m.Update(eventMsg(Event{Path: "unknown.php", Status: StatusError}))

	if m.done != 2 || m.issues != 2 {
		t.Fatalf("done=%d issues=%d, want 2 and 2", m.done, m.issues)
	}
	view := m.View()
	if !strings.Contains(view, "checking (2/3 files, 2 issues)") {
		t.Fatalf("unexpected header:\n%s", view)
	}
	if !strings.Contains(view, "2 issues") || !strings.Contains(view, "clean") {
		t.Fatalf("missing statuses:\n%s", view)
	}
	if strings.Contains(view, "c.php") {
		t.Fatalf("queued files must not be listed:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.closed {
		t.Fatalf("done message must quit")
	}
	if !strings.Contains(m.View(), "done: checking") {
		t.Fatalf("closed view:\n%s", m.View())
	}
}

func TestProgressModelKeepsRecentRows(t *testing.T) {
	var files []string
	for i := range maxRows + 3 {
		files = append(files, strings.Repeat("f", i+1)+".php")
	}
	m := NewProgressModel("fixing", files, nil).(*progressModel)
	for _, f := range files {
		m.Update(eventMsg(Event{Path: f, Status: StatusFixed}))
	}
	if len(m.recent) != maxRows {
		t.Fatalf("recent rows = %d, want %d", len(m.recent), maxRows)
	}
	if m.recent[len(m.recent)-1] != len(files)-1 {
		t.Fatalf("last row must be the last finished file")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.php", 20, "short.php"},
		{"a/very/long/path.php", 10, "a/very/..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
