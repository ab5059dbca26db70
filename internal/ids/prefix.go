package ids

import (
	"strings"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

// NormalizeUniqueIDs lowercases ids and drops empty values and duplicates,
// keeping first-seen order.
func NormalizeUniqueIDs(ids []string) []string {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idLower := internalstrings.NormalizeLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}
	return uniqueIDs
}

// MatchPrefixNormalized finds the ID in normalized ids that starts with
// prefix, ignoring case. An exact match wins over longer IDs sharing the
// prefix. ambiguous is true when more than one ID matches.
func MatchPrefixNormalized(ids []string, prefix string) (match string, found bool, ambiguous bool) {
	prefix = internalstrings.NormalizeLowerTrimSpace(prefix)
	if prefix == "" {
		return "", false, false
	}

	for _, id := range ids {
		if id == prefix {
			return id, true, false
		}
	}

	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if found {
			return "", true, true
		}
		match, found = id, true
	}
	return match, found, false
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
// Keys are lowercase.
func UniquePrefixLengths(ids []string) map[string]int {
	return UniquePrefixLengthsNormalized(NormalizeUniqueIDs(ids))
}

// UniquePrefixLengthsNormalized is UniquePrefixLengths for IDs already
// passed through NormalizeUniqueIDs.
func UniquePrefixLengthsNormalized(ids []string) map[string]int {
	lengths := make(map[string]int, len(ids))
	for _, id := range ids {
		lengths[id] = uniquePrefixLength(id, ids)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
