package redis

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"
)

// mergeDocument merges the updated struct back over the original raw JSON as
// an RFC 7386 merge patch: keys the struct declares overwrite the stored
// ones, everything else is preserved verbatim.
func mergeDocument(original []byte, doc interface{}) ([]byte, error) {
	patch, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(original, patch)
}
