package util

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Habit names carry inline #hashtags ("Run 5k #fitness"); the tags column
// stores them as a JSON array.
var tagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractTags pulls the #hashtags out of a habit name, lowercased and
// deduplicated in order of first appearance.
func ExtractTags(name string) []string {
	matches := tagPattern.FindAllStringSubmatch(name, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, match := range matches {
		tag := strings.ToLower(match[1])
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// TagsToJSON serializes tags for the habits.tags column. Empty input stores
// "[]" so the column is always valid JSON.
func TagsToJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

// JSONToTags is the inverse of TagsToJSON. Unparseable or empty input yields
// an empty slice, never nil, so callers can range without a check.
func JSONToTags(raw string) []string {
	if raw == "" || raw == "null" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
