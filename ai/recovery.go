package ai

import (
	"encoding/json"
	"log"
	"strings"
)

// recoverJSON removes markdown code fences and leading chatter from raw
// oracle output so the remainder can be parsed as JSON. It never fails; it
// only produces a best-effort candidate string.
func recoverJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Models sometimes lead with a sentence before the JSON object.
	if !strings.HasPrefix(content, "{") && strings.Contains(content, "\n{") {
		parts := strings.SplitN(content, "\n{", 2)
		if !strings.Contains(parts[0], "{") {
			content = "{" + parts[1]
		}
	}

	return strings.TrimSpace(content)
}

// decodeAssignments parses oracle output into a column -> label mapping.
// Unparsable output degrades to an empty mapping, meaning "no visualizations
// suggested", never an error.
func decodeAssignments(content string) map[string]string {
	cleaned := recoverJSON(content)
	assignments := make(map[string]string)
	if err := json.Unmarshal([]byte(cleaned), &assignments); err != nil {
		log.Printf("[OracleClient] Discarding unparsable column suggestions: %v", err)
		return map[string]string{}
	}
	return assignments
}

// decodePairs parses oracle output into pairID -> (x, y, label) triples.
// Unparsable output degrades to an empty mapping. Entries are decoded one at
// a time so a single malformed pair (wrong arity, non-string element) is
// dropped without taking its siblings with it.
func decodePairs(content string) map[string][3]string {
	cleaned := recoverJSON(content)
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Printf("[OracleClient] Discarding unparsable pair suggestions: %v", err)
		return map[string][3]string{}
	}

	pairs := make(map[string][3]string, len(raw))
	for key, value := range raw {
		var triple []string
		if err := json.Unmarshal(value, &triple); err != nil {
			log.Printf("[OracleClient] Skipping malformed pair %s: %v", key, err)
			continue
		}
		if len(triple) < 3 {
			log.Printf("[OracleClient] Skipping malformed pair %s: %d elements", key, len(triple))
			continue
		}
		pairs[key] = [3]string{triple[0], triple[1], triple[2]}
	}
	return pairs
}
