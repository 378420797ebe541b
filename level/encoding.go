package level

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "utf-8-sig", "utf8-sig":
		return unicode.UTF8BOM, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("level: unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// decodeText converts file bytes to UTF-8. A leading byte-order mark is
// honored and removed whatever the configured encoding.
func decodeText(raw []byte, name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return nil, fmt.Errorf("level: decode %s: %w", name, err)
	}
	return out, nil
}

func encodeText(text []byte, name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), text)
	if err != nil {
		return nil, fmt.Errorf("level: encode %s: %w", name, err)
	}
	return out, nil
}
