package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/cuesheet/internal/domain"
)

const storyPreviewWidth = 60

// FormatStoryPreview renders the first limit rows of a story run. limit <= 0
// shows every row.
func FormatStoryPreview(rows []domain.StoryRow, limit int) string {
	if len(rows) == 0 {
		return Dim("변환할 문제가 없습니다.")
	}
	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}

	headers := []string{"#", domain.ProblemColumn, domain.StoryColumn}
	table := make([][]string, 0, len(shown))
	for i, r := range shown {
		story := Truncate(r.Story, storyPreviewWidth)
		if r.Story == "" {
			story = Dim("-")
		}
		table = append(table, []string{Dim(strconv.Itoa(i + 1)), r.Problem, story})
	}

	out := RenderTable(headers, table)
	if len(shown) < len(rows) {
		out += Dim(fmt.Sprintf("… 외 %d행", len(rows)-len(shown)))
	}
	return out
}
