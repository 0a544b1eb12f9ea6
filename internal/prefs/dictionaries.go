package prefs

// Static configuration tables driving the heuristics. Extending a table
// teaches the engine a new signal; the scoring code never changes.

// languagePriority is the fixed tie-break order for preferred_language:
// earlier entries win when counts are equal. It also defines the language
// set used for exact tag membership.
var languagePriority = []string{
	"python",
	"typescript",
	"javascript",
	"go",
	"java",
	"rust",
	"bash",
}

// languageMarkers maps each language to substrings that count as evidence
// when found in command text: file extensions and CLI tool names.
var languageMarkers = map[string][]string{
	"python":     {".py", "pip ", "pytest", "virtualenv"},
	"typescript": {".ts", "tsc ", "deno "},
	"javascript": {".js", "npm ", "node ", "yarn "},
	"go":         {".go", "go build", "go test", "golang"},
	"java":       {".java", "mvn ", "gradle"},
	"rust":       {".rs", "cargo "},
	"bash":       {".sh", "bash ", "shell script"},
}

// taskKeywords are matched as case-insensitive substrings of command text.
// "document" is renamed "documentation" in display output only.
var taskKeywords = []string{
	"refactor",
	"test",
	"optimize",
	"document",
	"deploy",
	"debug",
	"review",
	"fix",
}

// styleKeywords feed the style summary. "oop" and "tdd" are upper-cased
// in display output.
var styleKeywords = []string{
	"async",
	"clean",
	"performance",
	"oop",
	"functional",
	"tdd",
}

var frameworkKeywords = []string{
	"react",
	"vue",
	"angular",
	"django",
	"flask",
	"fastapi",
	"spring",
	"rails",
	"express",
	"gin",
	"echo",
}

var toolKeywords = []string{
	"docker",
	"kubernetes",
	"git",
	"terraform",
	"ansible",
	"make",
	"jenkins",
	"github actions",
	"aws",
	"postgres",
	"redis",
	"nginx",
}

// contextGroup clusters trigger substrings under a semantic name. A group
// matches when the lowercased context contains any trigger; the union of
// matched groups' triggers becomes the relevance-word set.
type contextGroup struct {
	name     string
	triggers []string
}

var contextGroups = []contextGroup{
	{"documentation", []string{"doc", "docs", "readme", "comment", "explain", "update"}},
	{"testing", []string{"test", "unit", "coverage", "tdd", "regression"}},
	{"performance", []string{"performance", "optimize", "slow", "speed", "benchmark", "profil"}},
	{"deployment", []string{"deploy", "release", "ship", "rollout", "pipeline"}},
	{"refactor", []string{"refactor", "cleanup", "clean up", "restructure", "rewrite"}},
	{"debug", []string{"debug", "bug", "fix", "error", "crash", "broken"}},
}
