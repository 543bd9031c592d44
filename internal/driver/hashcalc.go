package driver

import (
	"crypto/sha256"
	"maps"
	"slices"
	"strconv"

	"codesniff/internal/sniff"
	"codesniff/internal/version"
)

// Digest is a sha256 value.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). parts уже в детерминированном порядке.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// RulesetDigest fingerprints everything that changes findings besides the
// file content: sniffs in order with their settings, tab width and encoding.
func RulesetDigest(regs []sniff.Registration, tabWidth int, encoding string) Digest {
	h := sha256.New()
	field := func(s string) {
		_, _ = h.Write([]byte(strconv.Itoa(len(s))))
		_, _ = h.Write([]byte{':'})
		_, _ = h.Write([]byte(s))
	}
	field("tab=" + strconv.Itoa(tabWidth))
	field("enc=" + encoding)
	for i := range regs {
		r := &regs[i]
		field(r.Code)
		if r.Severity != nil {
			field("sev=" + r.Severity.String())
		}
		for _, ex := range r.Exclude {
			field("ex=" + ex)
		}
		for _, k := range slices.Sorted(maps.Keys(r.Properties)) {
			field(k + "=" + r.Properties[k])
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey binds the file content to the ruleset and the tool version.
func cacheKey(content [32]byte, ruleset Digest) Digest {
	return combineDigest(Digest(content), ruleset, sha256.Sum256([]byte(version.Current())))
}
