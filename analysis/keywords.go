package analysis

import "strings"

// categoryKeywords binds one category to the substrings that signal it.
type categoryKeywords struct {
	category Category
	keywords []string
}

// keywordTable is an ordered keyword-to-category mapping. The same mechanism
// serves two matching policies: MatchAll lets one comment hit several
// categories (comment categorization), MatchFirst stops at the first hit
// (reviewer profile tallies).
type keywordTable []categoryKeywords

// MatchAll returns every category with at least one keyword hit, in table
// order. One hit per category is enough.
func (t keywordTable) MatchAll(content string) []Category {
	lower := strings.ToLower(content)
	var matched []Category
	for _, entry := range t {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, entry.category)
				break
			}
		}
	}
	return matched
}

// MatchFirst returns the first category with a keyword hit, or CategoryOther.
func (t keywordTable) MatchFirst(content string) Category {
	lower := strings.ToLower(content)
	for _, entry := range t {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// commentCategoryTable drives comment categorization. It is fixed: the
// groupings produced from it are fully determined by the input comments.
var commentCategoryTable = keywordTable{
	{CategoryArchitecture, []string{
		"architecture", "design", "structure", "pattern", "refactor",
		"coupling", "cohesion", "separation", "abstraction", "interface",
	}},
	{CategoryCodeStyle, []string{
		"style", "formatting", "convention", "naming", "indentation",
		"spacing", "line length", "readability", "clean code",
	}},
	{CategoryPerformance, []string{
		"performance", "speed", "slow", "optimization", "efficient",
		"memory", "cpu", "bottleneck", "cache", "algorithm",
	}},
	{CategorySecurity, []string{
		"security", "vulnerability", "exploit", "authentication",
		"authorization", "sanitize", "validation", "injection", "xss",
	}},
	{CategoryTesting, []string{
		"test", "testing", "unit test", "integration", "coverage",
		"mock", "assertion", "testcase",
	}},
	{CategoryDocumentation, []string{
		"documentation", "comment", "docstring", "readme", "docs",
		"explain", "clarify", "description", "example",
	}},
	{CategoryNaming, []string{
		"naming", "variable name", "function name", "class name",
		"descriptive", "meaningful", "confusing name", "rename",
	}},
	{CategoryErrorHandling, []string{
		"error", "exception", "try", "catch", "finally", "handling",
		"error handling", "exception handling", "graceful",
	}},
	{CategoryMaintainability, []string{
		"maintainable", "maintenance", "readable", "complexity",
		"simple", "complicated", "understand", "clear",
	}},
}

// profileCategoryTable is the narrower table used for reviewer profiles,
// tuned for reviewer-style signals. Profiles use MatchFirst, so order
// matters here.
var profileCategoryTable = keywordTable{
	{CategoryMaintainability, []string{
		"config", "configuration", "setting", "maintain", "refactor", "organize",
	}},
	{CategoryDocumentation, []string{
		"document", "readme", "comment", "explain", "clarify",
	}},
	{CategoryArchitecture, []string{
		"architecture", "design", "structure", "pattern", "tool", "build",
	}},
	{CategoryCodeStyle, []string{
		"style", "format", "naming", "convention", "clean",
	}},
	{CategoryErrorHandling, []string{
		"error", "exception", "handle", "graceful", "shutdown",
	}},
	{CategoryTesting, []string{
		"test", "testing", "coverage", "spec",
	}},
	{CategoryPerformance, []string{
		"performance", "optimize", "efficient", "fast", "slow",
	}},
	{CategorySecurity, []string{
		"security", "auth", "permission", "validate", "sanitize",
	}},
}
