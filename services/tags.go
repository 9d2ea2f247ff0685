package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blog-platform/models"
)

// MaxTagsLength matches the width of the posts.tags column.
const MaxTagsLength = 500

// NormalizeTags trims each comma-separated entry and drops empty and
// repeated ones (case-insensitively). The result is nil when nothing is left.
func NormalizeTags(raw string) *string {
	seen := map[string]bool{}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil
	}
	joined := strings.Join(tags, ", ")
	return &joined
}

// normalizeTagsField normalizes raw and rejects a result wider than the
// tags column.
func normalizeTagsField(raw string) (*string, error) {
	tags := NormalizeTags(raw)
	if tags != nil && utf8.RuneCountInString(*tags) > MaxTagsLength {
		return nil, models.InvalidInput("tags", fmt.Sprintf("tags must be at most %d characters", MaxTagsLength))
	}
	return tags, nil
}
