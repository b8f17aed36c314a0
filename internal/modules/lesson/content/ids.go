package content

import (
	"strings"

	"github.com/google/uuid"
)

// EnsureBlockIDs assigns "<type>_<uuid>" ids to blocks that have none or that
// repeat an id already seen earlier in the document. It returns a new
// document and whether anything changed.
func EnsureBlockIDs(doc Document) (Document, bool) {
	out := doc.Clone()
	changed := false
	seen := map[string]bool{}
	for i := range out.Blocks {
		b := &out.Blocks[i]
		id := ""
		if b.ID != nil {
			id = strings.TrimSpace(*b.ID)
		}
		if id == "" || seen[id] {
			t := string(b.Type)
			if t == "" {
				t = "block"
			}
			id = t + "_" + uuid.New().String()
			b.ID = &id
			changed = true
		}
		seen[id] = true
	}
	return out, changed
}
