package prefs

import "strings"

// fallbackNote explains the neutral default returned when no contextual
// group matches. The note's presence is how clients detect the fallback.
const fallbackNote = "no contextual group matched; returning general preferences"

// Contextual is the context-aware subset of a preference baseline.
type Contextual struct {
	MatchedGroups     []string `json:"matched_groups"`
	PreferredLanguage *string  `json:"preferred_language"`
	Tasks             []string `json:"tasks"`
	Styles            []string `json:"styles"`
	Frameworks        []string `json:"frameworks"`
	Tools             []string `json:"tools"`
	SignalsOverlap    int      `json:"signals_overlap"`
	Note              string   `json:"note,omitempty"`
}

// ContextualPreferences filters a baseline down to the entries relevant
// to a free-text task description. With zero matched groups it does NOT
// return empty subsets; it falls back to a neutral default (top 3 tasks,
// full style list, top 3 frameworks, top 5 tools) with an explanatory
// note. That fallback is the documented no-match policy.
func ContextualPreferences(context string, baseline Preferences) Contextual {
	lower := strings.ToLower(context)

	matched := []string{}
	var relevance []string
	for _, g := range contextGroups {
		if containsAny(lower, g.triggers) {
			matched = append(matched, g.name)
			relevance = append(relevance, g.triggers...)
		}
	}

	out := Contextual{
		MatchedGroups:     matched,
		PreferredLanguage: baseline.PreferredLanguage,
	}

	if len(matched) == 0 {
		out.Tasks = head(baseline.CommonTasks, 3)
		out.Styles = head(baseline.styleList, len(baseline.styleList))
		out.Frameworks = head(baseline.Frameworks, 3)
		out.Tools = head(baseline.Tools, 5)
		out.SignalsOverlap = len(out.Tasks) + len(out.Styles) + len(out.Frameworks) + len(out.Tools)
		out.Note = fallbackNote
		return out
	}

	out.Tasks = filterRelevant(baseline.CommonTasks, lower, relevance)
	out.Styles = filterRelevant(baseline.styleList, lower, relevance)
	out.Frameworks = filterRelevant(baseline.Frameworks, lower, relevance)
	out.Tools = filterRelevant(baseline.Tools, lower, relevance)
	out.SignalsOverlap = len(out.Tasks) + len(out.Styles) + len(out.Frameworks) + len(out.Tools)
	return out
}

// filterRelevant keeps entries that appear verbatim in the lowercased
// context, or that share a substring with any relevance word in either
// direction.
func filterRelevant(entries []string, lowerCtx string, relevance []string) []string {
	kept := []string{}
	for _, e := range entries {
		le := strings.ToLower(e)
		if strings.Contains(lowerCtx, le) {
			kept = append(kept, e)
			continue
		}
		for _, w := range relevance {
			if strings.Contains(le, w) || strings.Contains(w, le) {
				kept = append(kept, e)
				break
			}
		}
	}
	return kept
}

func head(items []string, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < len(items) && i < n; i++ {
		out = append(out, items[i])
	}
	return out
}
