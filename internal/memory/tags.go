package memory

import "strings"

// tagSeparator joins tags for on-disk storage. There is no escaping: a
// tag that itself contains the separator will not survive a round-trip.
// Known limitation of the storage format, kept as-is.
const tagSeparator = ","

// JoinTags serializes a tag sequence for storage. An empty or nil
// sequence becomes the empty string.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// SplitTags reverses JoinTags. The empty string yields an empty
// sequence, never a single empty-string element.
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, tagSeparator)
}
