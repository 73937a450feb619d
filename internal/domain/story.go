package domain

// Spreadsheet column headers for the story-problem workflow.
const (
	ProblemColumn = "문제"
	StoryColumn   = "생성된 문장제"
)

// StoryRow pairs an input expression with its generated story problem.
// Rows are correlated with the input spreadsheet strictly by index.
type StoryRow struct {
	Problem string `json:"problem"`
	Story   string `json:"story"`
}
