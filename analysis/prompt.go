package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reviewlens/reviewlens/github"
)

// SystemPrompt configures the model persona shared by both prompt shapes.
// Responses are requested in Traditional Chinese with a JSON body.
const SystemPrompt = `你是一位資深的技術導師和代碼審查專家，專精於從 code review 中提取 reviewer 的專業知識和經驗。

你的任務是幫助 PR 創建者學習和成長，重點在於：
1. 識別 reviewer 分享的深層技術知識和最佳實踐
2. 理解 reviewer 的關注點背後的原因和經驗
3. 將隱性知識轉化為可學習的洞察
4. 發現 PR 創建者可能的知識盲點

所有回應必須使用繁體中文，並以教學和知識傳遞為導向。`

const categoryPromptTemplate = `你正在分析資深 reviewer 在代碼審查中分享的專業知識和經驗洞察。

PR 背景資訊：
- 專案：%s
- PR #%d：%s
- PR 創建者：%s
- 技術領域：%s

資深審查者的評論內容：
%s

深度分析任務：
1. **知識萃取**：reviewer 分享了哪些專業知識？背後的技術原理是什麼？
2. **經驗洞察**：從 reviewer 的建議中可以看出他們踩過哪些坑？有什麼經驗教訓？
3. **最佳實踐**：reviewer 推薦的做法背後有什麼設計思維和考量？
4. **盲點發現**：PR 創建者可能忽略了哪些重要面向？

請以下列 JSON 格式回應（繁體中文）：
{
    "description": "reviewer 在此技術領域的核心洞察和關注點的簡潔摘要",
    "severity": "high|medium|low",
    "knowledge_category": "reviewer 分享的核心知識領域",
    "reviewer_insights": {
        "technical_knowledge": "reviewer 展現的深層技術知識和原理",
        "experience_lessons": "從評論中可推斷的實戰經驗和教訓",
        "design_philosophy": "reviewer 體現的設計思維和架構理念"
    },
    "actionable_guidance": {
        "immediate_actions": ["可立即採取的具體改進措施"]
    },
    "reviewer_responses": [
        {
            "reviewer": "reviewer_name",
            "original_comment": "簡短引用 reviewer 的原始評論片段 (20-30字)",
            "response": "Brief English response acknowledging their insight (<30 words)",
            "copilot_instruction": "Specific technical instruction for Copilot agent to implement the reviewer's suggestion"
        }
    ]
}

重點：
1. 將 reviewer 的隱性知識轉化為 PR 創建者可學習的明確洞察
2. 為每個 reviewer 生成簡潔的英文回覆，體現對其專業洞察的理解
3. 提供精確的 Copilot 指令，基於 reviewer 的技術建議進行代碼修改`

const overallPromptTemplate = `你正在分析整個 PR 審查過程中的知識傳遞和學習機會。

PR 背景資訊：
- 專案：%s
- PR #%d：%s
- PR 創建者：%s
- 總評論數：%d
- 參與審查者：%d

審查者活動與專業表現：
%s

涵蓋的技術領域：%s

綜合分析任務：
1. **知識傳遞品質**：reviewer 群體展現的整體專業水準和知識深度
2. **學習機會評估**：這次 PR 為創建者提供了哪些成長機會？
3. **團隊協作模式**：reviewer 之間的互補性和知識覆蓋範圍
4. **發展建議**：基於 reviewer 的集體智慧，對 PR 創建者的成長建議

請以 JSON 格式提供綜合評估（繁體中文）：
{
    "description": "整體 PR 審查過程的綜合評估與學習機會摘要",
    "valuable_insights": {
        "style_forming_comments": ["最值得記錄和內化的 code style 原則"],
        "development_philosophy": ["值得形成個人開發風格的核心理念"],
        "professional_habits": ["值得培養的專業開發習慣"]
    },
    "reviewer_responses": [
        {
            "reviewer": "reviewer_name",
            "original_comment": "簡短引用此 reviewer 的關鍵評論 (20-30字)",
            "response": "Brief English response acknowledging their overall contribution (<30 words)",
            "copilot_instruction": "Strategic instruction for Copilot agent based on collective reviewer wisdom"
        }
    ]
}

目標：
1. 將 reviewer 的集體智慧轉化為 PR 創建者的學習藍圖
2. 為主要 reviewer 生成感謝回覆，體現對其貢獻的認可
3. 提供整體的 Copilot 改進策略`

const (
	maxCommentSamples  = 5
	sampleContentLimit = 300
	maxSummaryFiles    = 3
)

// RenderCategoryPrompt builds the per-category analysis prompt.
func RenderCategoryPrompt(info github.PullRequestInfo, category Category, comments []github.Comment) string {
	return fmt.Sprintf(categoryPromptTemplate,
		info.Repository,
		info.Number,
		info.Title,
		info.Author,
		string(category),
		FormatCommentSamples(comments, maxCommentSamples),
	)
}

// RenderOverallPrompt builds the aggregate prompt covering every reviewer.
func RenderOverallPrompt(info github.PullRequestInfo, byReviewer map[string][]github.Comment, categories []Category) string {
	totalComments := 0
	for _, comments := range byReviewer {
		totalComments += len(comments)
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return fmt.Sprintf(overallPromptTemplate,
		info.Repository,
		info.Number,
		info.Title,
		info.Author,
		totalComments,
		len(byReviewer),
		FormatReviewerSummary(byReviewer),
		strings.Join(names, ", "),
	)
}

// FormatCommentSamples renders up to maxSamples comments as a numbered
// list, truncating each body to 300 runes with a trailing ellipsis.
func FormatCommentSamples(comments []github.Comment, maxSamples int) string {
	if maxSamples > len(comments) {
		maxSamples = len(comments)
	}
	var b strings.Builder
	for i := 0; i < maxSamples; i++ {
		c := comments[i]
		content := c.Content
		if runes := []rune(content); len(runes) > sampleContentLimit {
			content = string(runes[:sampleContentLimit]) + "..."
		}
		fileInfo := ""
		if c.FilePath != "" {
			fileInfo = fmt.Sprintf(" (File: %s)", c.FilePath)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. Reviewer: %s%s\n   Comment: %s", i+1, c.Author, fileInfo, content)
	}
	return b.String()
}

// FormatReviewerSummary renders one line per reviewer: comment count, mean
// comment length, and up to three distinct touched files in first-seen order.
func FormatReviewerSummary(byReviewer map[string][]github.Comment) string {
	lines := make([]string, 0, len(byReviewer))
	for _, reviewer := range sortedKeys(byReviewer) {
		comments := byReviewer[reviewer]
		if len(comments) == 0 {
			continue
		}
		totalLength := 0
		seen := make(map[string]struct{})
		var files []string
		for _, c := range comments {
			totalLength += len([]rune(c.Content))
			if c.FilePath == "" {
				continue
			}
			if _, ok := seen[c.FilePath]; !ok {
				seen[c.FilePath] = struct{}{}
				files = append(files, c.FilePath)
			}
		}
		if len(files) > maxSummaryFiles {
			files = files[:maxSummaryFiles]
		}
		avg := float64(totalLength) / float64(len(comments))
		lines = append(lines, fmt.Sprintf("- %s: %d comments, avg %.0f chars, focuses on %v",
			reviewer, len(comments), avg, files))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
