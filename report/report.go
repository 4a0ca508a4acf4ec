// Package report renders analysis results as Markdown and writes them to
// PR-specific files.
package report

import (
	"fmt"
	"strings"

	"github.com/reviewlens/reviewlens/analysis"
)

const (
	descriptionLimit = 200
	exampleLimit     = 150

	// minInstructionLength is the shortest trimmed copilot instruction
	// considered actionable; anything at or below is dropped.
	minInstructionLength = 10
)

var valuableBucketTitles = map[string]string{
	"style_forming_comments": "🎨 風格塑造建議",
	"development_philosophy": "💭 開發理念",
	"professional_habits":    "⚙️ 專業習慣",
}

// Render formats the analysis result as a Markdown document: a header
// block followed by up to five sections, each omitted when its backing
// data is empty.
func Render(result *analysis.AnalysisResult) string {
	var b strings.Builder

	writeHeader(&b, result)
	writeKnowledgeSection(&b, result.KnowledgeInsights)
	writeActionSection(&b, result.Learning.ImmediateActions)
	writeMentoringSection(&b, result.MentoringInsights)
	writeValuableSection(&b, result.Valuable)
	writeResponseSection(&b, result.CommitGroups())

	return b.String()
}

func writeHeader(b *strings.Builder, result *analysis.AnalysisResult) {
	fmt.Fprintf(b, "# PR 審查分析報告\n\n")
	fmt.Fprintf(b, "**專案：** %s  \n", result.Repository)
	fmt.Fprintf(b, "**PR：** #%d  \n", result.PRNumber)
	fmt.Fprintf(b, "**分析日期：** %s  \n", result.AnalysisTimestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(b, "**洞察數量：** %d | **審查者：** %d\n\n", len(result.Insights), len(result.ReviewerProfiles))
	b.WriteString("---\n")
}

func writeKnowledgeSection(b *strings.Builder, insights []string) {
	if len(insights) == 0 {
		return
	}
	b.WriteString("\n## 🧠 核心知識洞察\n\n")
	for i, insight := range insights {
		fmt.Fprintf(b, "%d. %s\n", i+1, insight)
	}
}

func writeActionSection(b *strings.Builder, actions []string) {
	if len(actions) == 0 {
		return
	}
	b.WriteString("\n## 🎯 立即行動項目\n\n")
	for _, action := range actions {
		fmt.Fprintf(b, "- %s\n", action)
	}
}

func writeMentoringSection(b *strings.Builder, insights []string) {
	if len(insights) == 0 {
		return
	}
	b.WriteString("\n## 🎓 導師級技術指導\n\n")
	for i, insight := range insights {
		fmt.Fprintf(b, "%d. %s\n", i+1, insight)
	}
}

func writeValuableSection(b *strings.Builder, valuable analysis.ValuableInsights) {
	buckets := []struct {
		key   string
		items []string
	}{
		{"style_forming_comments", valuable.StyleFormingComments},
		{"development_philosophy", valuable.DevelopmentPhilosophy},
		{"professional_habits", valuable.ProfessionalHabits},
	}

	empty := true
	for _, bucket := range buckets {
		if len(bucket.items) > 0 {
			empty = false
		}
	}
	if empty {
		return
	}

	b.WriteString("\n## ✨ 值得內化的 Code Style 洞察\n")
	for _, bucket := range buckets {
		if len(bucket.items) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n### %s\n\n", valuableBucketTitles[bucket.key])
		for _, item := range bucket.items {
			fmt.Fprintf(b, "- %s\n", item)
		}
	}
}

// writeResponseSection renders reviewer responses clustered into their
// commit groups. Responses without an actionable copilot instruction are
// dropped, and a group left with no responses is omitted entirely.
func writeResponseSection(b *strings.Builder, groups []analysis.CommitGroup) {
	type renderedGroup struct {
		analysis.CommitGroup
		kept []analysis.GroupedResponse
	}

	var rendered []renderedGroup
	for _, group := range groups {
		var kept []analysis.GroupedResponse
		for _, gr := range group.Responses {
			if len(strings.TrimSpace(gr.Response.CopilotInstruction)) > minInstructionLength {
				kept = append(kept, gr)
			}
		}
		if len(kept) > 0 {
			rendered = append(rendered, renderedGroup{group, kept})
		}
	}
	if len(rendered) == 0 {
		return
	}

	b.WriteString("\n## 💬 Reviewer 回覆建議\n")
	for _, group := range rendered {
		fmt.Fprintf(b, "\n### 📦 %s\n\n", group.Name)
		if group.SuggestedCommitMessage != "" {
			fmt.Fprintf(b, "**建議 Commit Message:** `%s`\n\n", group.SuggestedCommitMessage)
		}
		for i, gr := range group.kept {
			writeResponse(b, i+1, gr)
		}
	}
}

func writeResponse(b *strings.Builder, n int, gr analysis.GroupedResponse) {
	resp := gr.Response
	insight := gr.Insight

	fmt.Fprintf(b, "#### %d. 回覆給 %s\n\n", n, resp.Reviewer)

	if insight.Category != analysis.CategoryOther {
		fmt.Fprintf(b, "**技術領域：** %s\n\n", insight.Category.Title())
	}

	if resp.OriginalComment != "" {
		if strings.Contains(resp.OriginalComment, "```") {
			b.WriteString("**原始評論：**\n")
			for _, line := range strings.Split(resp.OriginalComment, "\n") {
				fmt.Fprintf(b, "> %s\n", line)
			}
			b.WriteString("\n")
		} else {
			fmt.Fprintf(b, "**原始評論：** %q\n\n", resp.OriginalComment)
		}
	}

	if insight.Description != "" {
		fmt.Fprintf(b, "**相關洞察：** %s\n\n", TruncateSentence(insight.Description, descriptionLimit))
	}

	if len(insight.Examples) > 0 {
		fmt.Fprintf(b, "**相關評論範例：**\n\n> %s\n\n", TruncateSentence(insight.Examples[0], exampleLimit))
	}

	fmt.Fprintf(b, "**English Response:** %s\n\n", resp.Response)
	fmt.Fprintf(b, "**Copilot 修改指令:**\n```\n%s\n```\n\n", resp.CopilotInstruction)
}

// sentenceTerminators are the punctuation marks TruncateSentence treats as
// acceptable cut points, covering half-width and full-width forms.
var sentenceTerminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {}, '．': {},
}

// TruncateSentence cuts s to at most limit runes. When the cut point does
// not land on sentence-ending punctuation, it backs up to the nearest such
// mark within the preceding 50 runes; if none is found the hard cut stands,
// marked with an ellipsis.
func TruncateSentence(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	if _, ok := sentenceTerminators[runes[limit-1]]; ok {
		return string(runes[:limit])
	}

	floor := limit - 50
	if floor < 0 {
		floor = 0
	}
	for i := limit - 1; i >= floor; i-- {
		if _, ok := sentenceTerminators[runes[i]]; ok {
			return string(runes[:i+1])
		}
	}

	return string(runes[:limit]) + "..."
}
