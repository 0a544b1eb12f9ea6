package prefs

import (
	"math"
	"strings"

	"github.com/dreyes/memtrail/internal/memory"
)

// RawSignals exposes the heuristic frequency tables verbatim for
// transparency. Consumers may ignore them.
type RawSignals struct {
	Languages  map[string]int `json:"languages"`
	Tasks      map[string]int `json:"tasks"`
	Styles     map[string]int `json:"styles"`
	Frameworks map[string]int `json:"frameworks"`
	Tools      map[string]int `json:"tools"`
}

// Preferences is the heuristic preference analysis over all commands.
type Preferences struct {
	PreferredLanguage *string    `json:"preferred_language"`
	Confidence        *float64   `json:"confidence"`
	CommonTasks       []string   `json:"common_tasks"`
	Style             *string    `json:"style"`
	Frameworks        []string   `json:"frameworks"`
	Tools             []string   `json:"tools"`
	RawSignals        RawSignals `json:"raw_signals"`

	// styleList is the ordered style keyword selection behind the joined
	// Style summary, kept for contextual filtering.
	styleList []string
}

// InferPreferences scans every command against the fixed dictionaries and
// derives the summary views.
//
// The language counter takes two independent signals per record: exact
// tag membership in the language set, and any marker substring in the
// text. A record whose tag is "python" AND whose text contains ".py"
// increments the python counter twice. That double-count is deliberate
// weighting toward stronger evidence; keep it.
func InferPreferences(cmds []memory.Command) Preferences {
	tagTable := newCounter[string]()
	langs := newCounter[string]()
	tasks := newCounter[string]()
	styles := newCounter[string]()
	frameworks := newCounter[string]()
	tools := newCounter[string]()

	for _, c := range cmds {
		for _, t := range c.Tags {
			if t == "" {
				continue
			}
			tagTable.inc(strings.ToLower(t))
		}

		lower := strings.ToLower(c.Text)
		for _, lang := range languagePriority {
			if containsAny(lower, languageMarkers[lang]) {
				langs.inc(lang)
			}
		}
		countKeywords(tasks, lower, taskKeywords)
		countKeywords(styles, lower, styleKeywords)
		countKeywords(frameworks, lower, frameworkKeywords)
		countKeywords(tools, lower, toolKeywords)
	}

	// Tag-membership signal, folded in from the raw tag table.
	for _, lang := range languagePriority {
		if n := tagTable.counts[lang]; n > 0 {
			langs.add(lang, n)
		}
	}

	p := Preferences{
		Frameworks: frameworks.top(5),
		Tools:      tools.top(8),
		RawSignals: RawSignals{
			Languages:  langs.snapshot(),
			Tasks:      tasks.snapshot(),
			Styles:     styles.snapshot(),
			Frameworks: frameworks.snapshot(),
			Tools:      tools.snapshot(),
		},
	}

	if best, n := pickLanguage(langs); n > 0 {
		conf := round3(float64(n) / float64(langs.sum()))
		p.PreferredLanguage = &best
		p.Confidence = &conf
	}

	taskTop := tasks.top(5)
	p.CommonTasks = make([]string, len(taskTop))
	for i, kw := range taskTop {
		p.CommonTasks[i] = displayTask(kw)
	}

	p.styleList = make([]string, 0, 5)
	for _, kw := range styles.top(5) {
		p.styleList = append(p.styleList, displayStyle(kw))
	}
	if len(p.styleList) > 0 {
		joined := strings.Join(p.styleList, ", ")
		p.Style = &joined
	}

	return p
}

// pickLanguage returns the highest-count language; equal counts resolve
// by the fixed priority order.
func pickLanguage(langs *counter[string]) (string, int) {
	best := ""
	bestN := 0
	for _, lang := range languagePriority {
		if n := langs.counts[lang]; n > bestN {
			best, bestN = lang, n
		}
	}
	return best, bestN
}

func countKeywords(c *counter[string], lowerText string, keywords []string) {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			c.inc(kw)
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// displayTask renames "document" to "documentation" in output only; the
// counter stays keyed by the raw keyword.
func displayTask(kw string) string {
	if kw == "document" {
		return "documentation"
	}
	return kw
}

// displayStyle upper-cases the acronym keywords in output.
func displayStyle(kw string) string {
	switch kw {
	case "oop":
		return "OOP"
	case "tdd":
		return "TDD"
	}
	return kw
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
