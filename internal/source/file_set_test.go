package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.php", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("test.php", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// индекс указывает на последнюю версию
	latestID, exists := fs.GetLatest("test.php")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
	if fs.Get(42) != nil {
		t.Errorf("Expected nil for unknown id")
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.php", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
	if file.LineCount() != 2 {
		t.Errorf("Expected 2 lines, got %d", file.LineCount())
	}
}

func TestPositionAcrossLines(t *testing.T) {
	f := NewFile(0, "p.php", []byte("ab\ncd\n\nx"), 0)
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' относится к первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tc := range cases {
		if got := f.Position(tc.off); got != tc.want {
			t.Errorf("Position(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestGetLineStripsCarriageReturn(t *testing.T) {
	f := NewFile(0, "crlf.php", []byte("one\r\ntwo\r\nthree"), 0)
	if got := f.GetLine(1); got != "one" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Errorf("GetLine(9) = %q, want empty", got)
	}
}

func TestBOMRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.php")
	raw := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x\n" {
		t.Fatalf("Expected BOM to be stripped, got %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatal("Expected FileHadBOM flag to be set")
	}
	out, err := EncodeForWrite(f, f.Content)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(raw) {
		t.Fatalf("Expected BOM restored, got %v", out)
	}
}

func TestLoadLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.php")
	// "café" в iso-8859-1
	if err := os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path, "iso-8859-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "café" {
		t.Fatalf("Expected decoded content, got %q", f.Content)
	}
	if f.Flags&FileDecoded == 0 || f.Encoding != "iso-8859-1" {
		t.Fatalf("Expected decoded flag and encoding, got %v %q", f.Flags, f.Encoding)
	}
	out, err := EncodeForWrite(f, f.Content)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[3] != 0xE9 {
		t.Fatalf("Expected re-encoded bytes, got %v", out)
	}

	if _, err := fs.Load(path, "no-such-charset"); err == nil {
		t.Fatal("Expected error for unknown encoding")
	}
}

func TestWithContentKeepsIdentity(t *testing.T) {
	f := NewFile(3, "a/./b.php", []byte("x"), FileVirtual)
	g := f.WithContent([]byte("y\nz"))
	if g.ID != 3 || g.Path != "a/b.php" || g.Flags != FileVirtual {
		t.Fatalf("unexpected identity: %+v", g)
	}
	if g.Hash == f.Hash {
		t.Fatal("Expected hash to change with content")
	}
	if len(g.LineIdx) != 1 {
		t.Fatalf("Expected rebuilt line index, got %v", g.LineIdx)
	}
}
