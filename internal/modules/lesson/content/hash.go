package content

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// CanonicalJSON marshals the document with stable key ordering and no
// whitespace. Payload structs marshal in field order and maps are sorted by
// encoding/json, so equal documents produce equal bytes.
func CanonicalJSON(doc Document) []byte {
	b, err := json.Marshal(doc)
	if err != nil {
		return []byte(`{"blocks":[]}`)
	}
	return b
}

func Hash(doc Document) string {
	return HashBytes(CanonicalJSON(doc))
}
