package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// Decode transcodes content from the named encoding into UTF-8.
func Decode(content []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return content, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Encode transcodes UTF-8 content back into the named encoding.
func Encode(content []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		return content, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return out, nil
}

// EncodeForWrite prepares fixed content of f for writing back to disk:
// re-encodes it into the original encoding and restores the BOM.
func EncodeForWrite(f *File, content []byte) ([]byte, error) {
	if f != nil && f.Flags&FileDecoded != 0 {
		encoded, err := Encode(content, f.Encoding)
		if err != nil {
			return nil, err
		}
		content = encoded
	}
	return RestoreBOM(f, content), nil
}
