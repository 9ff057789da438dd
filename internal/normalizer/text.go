package normalizer

import (
	"strings"

	"socleaner/internal/models"
	"socleaner/pkg/utils"
)

// entities are decoded in this order on every pass.
var entities = [...]struct{ from, to string }{
	{"&quot;", `"`},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#39;", "'"},
}

// Clean decodes the fixed HTML entity set and collapses whitespace.
// Decoding repeats until nothing changes, so Clean(Clean(s)) == Clean(s)
// even for doubly escaped input such as "&amp;lt;".
func Clean(text string) string {
	for {
		decoded := decodeEntities(text)
		if decoded == text {
			break
		}
		text = decoded
	}

	return utils.NormalizeWhitespace(text)
}

// CleanCell is Clean for a nullable cell; a null cell yields "".
func CleanCell(c models.Cell) string {
	if !c.Valid {
		return ""
	}

	return Clean(c.Value)
}

func decodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	for _, e := range entities {
		text = strings.ReplaceAll(text, e.from, e.to)
	}

	return text
}
