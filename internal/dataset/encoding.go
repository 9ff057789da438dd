package dataset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// LookupEncoding resolves an encoding name. "utf-8-sig" strips a leading byte
// order mark on read and writes one on output; other names are resolved
// through the WHATWG index (utf-8, windows-1252, iso-8859-9, ...).
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "utf-8-sig", "utf8-sig":
		return unicode.UTF8BOM, nil
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	return enc, nil
}
