package recording

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Query evaluates a JSONPath-style expression against the JSON form of the
// recording, for example "$.variables[0].name" or "$.metadata.y.unit".
func (r *Recording) Query(path string) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return QueryJSON(data, path)
}

// QueryJSON evaluates a JSONPath-style expression against raw JSON.
// Null results are returned as "null".
func QueryJSON(data []byte, path string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty path expression")
	}

	result := gjson.GetBytes(data, toGJSONPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}

	return result.String(), nil
}

// toGJSONPath converts $.a.b[0]['c'] into a.b.0.c
func toGJSONPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	r := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	path = r.Replace(path)

	return strings.TrimPrefix(path, ".")
}
