package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

// snippetSeeds cover the disambiguation rules of the tokenizer.
var snippetSeeds = []string{
	"",
	"<?php $a = $b and $c;",
	"<?php $x = [1, [2, 3]]; $y = $x[0][1];",
	"<?php $s = <<<EOT\nhi\nEOT;\n",
	"<?php $s = <<<'N'\nraw\nN;\n",
	"<?php $s = <<<EOT\nnever closed",
	"<?php $o?->Class::function(); $$v;",
	"<?php $i = (int) $s; #[A] class B {}",
	"<?php $t = $a ? $b : $c ?: $d ?? $e;",
	"<?php if ($a): echo 1; endif; else { }",
	"<?php class A { static function make() { return array(1); } }",
	"<?php } ) ]",
	"<?php function f( {",
	"\t  trailing  \r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.php файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".php" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
