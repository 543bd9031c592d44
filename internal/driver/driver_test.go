package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codesniff/internal/diag"
	"codesniff/internal/source"
	"codesniff/internal/sniffs"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func process(t *testing.T, path string, opts Options) FileResult {
	t.Helper()
	if opts.Registrations == nil {
		opts.Registrations = sniffs.Default()
	}
	return ProcessFile(context.Background(), source.NewFileSet(), path, opts)
}

func TestProcessFileCheck(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "a.php"), "$a = 1 and 2;  \n")
	res := process(t, path, Options{Timings: true})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Findings() != 2 {
		t.Fatalf("expected 2 findings, got %d", res.Findings())
	}
	if res.Fix != nil || res.Written {
		t.Fatalf("check must not fix")
	}
	if res.Timing == nil || len(res.Timing.Phases) != 3 || res.Timing.Phases[2].Name != "sniff" {
		t.Fatalf("unexpected timings: %+v", res.Timing)
	}
}

func TestProcessFileFixWrites(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "a.php"), "$a = 1 and 2;  \n")
	res := process(t, path, Options{Mode: ModeFix})
	if res.Err != nil || !res.Written {
		t.Fatalf("expected a write, got err=%v written=%v", res.Err, res.Written)
	}
	if got := readFile(t, path); got != "$a = 1 && 2;\n" {
		t.Fatalf("file = %q", got)
	}
	if res.Findings() != 0 || res.Unstable() {
		t.Fatalf("fixed file must be clean and stable")
	}

	again := process(t, path, Options{Mode: ModeFix})
	if again.Err != nil || again.Written {
		t.Fatalf("unchanged file must not be rewritten")
	}
}

func TestProcessFileDryRun(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "a.php"), "IF ($a) {}\n")
	res := process(t, path, Options{Mode: ModeFix, DryRun: true})
	if res.Written || readFile(t, path) != "IF ($a) {}\n" {
		t.Fatalf("dry run must leave the file alone")
	}
	if res.Fixed() != "if ($a) {}\n" {
		t.Fatalf("fixed = %q", res.Fixed())
	}
}

func TestProcessFileKeepsEncoding(t *testing.T) {
	src := "// Привет\n$a AND $b;\n"
	raw, err := source.Encode([]byte(src), "windows-1251")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "cp.php")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res := process(t, path, Options{Mode: ModeFix, Encoding: "windows-1251"})
	if res.Err != nil || !res.Written {
		t.Fatalf("expected a write, got %v", res.Err)
	}
	want, _ := source.Encode([]byte("// Привет\n$a && $b;\n"), "windows-1251")
	if got := readFile(t, path); got != string(want) {
		t.Fatalf("file was not written back in its encoding: %q", got)
	}
}

func TestProcessFileLoadError(t *testing.T) {
	res := process(t, filepath.Join(t.TempDir(), "missing.php"), Options{})
	if res.Err == nil {
		t.Fatalf("expected an error")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadError {
		t.Fatalf("expected an IO diagnostic, got %+v", items)
	}
}

func TestProcessFileCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	path := writeFile(t, filepath.Join(t.TempDir(), "a.php"), "$a or $b;\n")

	first := process(t, path, Options{Cache: cache})
	second := process(t, path, Options{Cache: cache})
	if first.Cached || !second.Cached {
		t.Fatalf("expected a miss then a hit, got %v %v", first.Cached, second.Cached)
	}
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != 1 || len(b) != 1 || a[0].Source != b[0].Source || a[0].Line != b[0].Line || a[0].Message != b[0].Message {
		t.Fatalf("cached findings differ: %+v vs %+v", a, b)
	}

	// другие настройки правил дают другой ключ
	regs := sniffs.Default()
	regs[len(regs)-1].Properties = map[string]string{"lineLimit": "5"}
	third := process(t, path, Options{Cache: cache, Registrations: regs})
	if third.Cached || third.Findings() != 2 {
		t.Fatalf("changed ruleset must miss the cache, got cached=%v findings=%d", third.Cached, third.Findings())
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if after := process(t, path, Options{Cache: cache}); after.Cached {
		t.Fatalf("dropped cache must miss")
	}
}

type extSelector struct{}

func (extSelector) Matches(path string) bool { return filepath.Ext(path) == ".php" }
func (extSelector) Excluded(path string) bool {
	return strings.Contains(filepath.ToSlash(path), "/vendor")
}

func TestRunDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.php"), "$b and $c;\n")
	writeFile(t, filepath.Join(root, "a.php"), "$a;\n")
	writeFile(t, filepath.Join(root, "vendor", "lib.php"), "$x and $y;\n")
	writeFile(t, filepath.Join(root, "README.md"), "and\n")

	var seen int
	opts := Options{Registrations: sniffs.Default(), Jobs: 2, Progress: func(FileResult) {}}
	_, results, err := RunDir(context.Background(), []string{root}, extSelector{}, opts)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 files, got %d", len(results))
	}
	if filepath.Base(results[0].Path) != "a.php" || filepath.Base(results[1].Path) != "b.php" {
		t.Fatalf("results must follow sorted file order: %s, %s", results[0].Path, results[1].Path)
	}
	for _, r := range results {
		seen += r.Findings()
	}
	if seen != 1 {
		t.Fatalf("expected 1 finding, got %d", seen)
	}
}

func TestRunFilesCancelled(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "a.php"), "$a;\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := RunFiles(ctx, []string{path}, Options{Registrations: sniffs.Default()})
	if err == nil {
		t.Fatalf("cancelled run must report the context error")
	}
}

func TestRulesetDigest(t *testing.T) {
	regs := sniffs.Default()
	base := RulesetDigest(regs, 0, "")
	if RulesetDigest(regs, 4, "") == base || RulesetDigest(regs, 0, "windows-1251") == base {
		t.Fatalf("run settings must change the digest")
	}
	if RulesetDigest(regs[:len(regs)-1], 0, "") == base {
		t.Fatalf("sniff list must change the digest")
	}
	if RulesetDigest(sniffs.Default(), 0, "") != base {
		t.Fatalf("digest must be deterministic")
	}
}
