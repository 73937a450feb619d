package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/intelligence"
)

const detailWidth = 40

// FormatAgenda renders the agenda rows with 1-based positions. cursor
// highlights one row; pass -1 for none.
func FormatAgenda(rows []agenda.Row, cursor int) string {
	if len(rows) == 0 {
		return Dim("  행사 순서가 비어 있습니다. a 키로 추가하세요.")
	}

	headers := []string{"", "#", "순서", "시간", "상세"}
	table := make([][]string, 0, len(rows))
	total := 0
	for i, r := range rows {
		marker := " "
		label := r.Label
		if i == cursor {
			marker = StyleHeader.Render("›")
			label = StyleBold.Render(label)
		}
		if strings.TrimSpace(r.Label) == "" {
			label = StyleRed.Render("(이름 없음)")
		}
		table = append(table, []string{
			marker,
			Dim(strconv.Itoa(i + 1)),
			label,
			FormatMinutes(r.DurationMinutes),
			Dim(Truncate(r.Detail, detailWidth)),
		})
		total += r.DurationMinutes
	}

	return RenderTable(headers, table) + Dim(fmt.Sprintf("  합계 %s · %d개 순서", FormatMinutes(total), len(rows)))
}

// FormatEventMeta renders the metadata header shown above the agenda.
func FormatEventMeta(meta domain.EventMeta, presetName string) string {
	name := meta.Name
	if strings.TrimSpace(name) == "" {
		name = StyleRed.Render("(행사명 미입력)")
	} else {
		name = StyleBold.Render(name)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s", name, KindBadge(meta.Kind)))
	if presetName != "" {
		b.WriteString("  " + Dim("["+presetName+"]"))
	}
	b.WriteString("\n")

	fields := []string{
		meta.Date.Format(intelligence.ScenarioDateLayout),
		CoalesceDim(meta.Location, "(장소 미입력)"),
		fmt.Sprintf("사회자 %d명", meta.MCCount),
	}
	b.WriteString("  " + strings.Join(fields, Dim(" · ")))
	if meta.Kind.HasVIPs() {
		b.WriteString("\n  " + Dim("내빈: ") + CoalesceDim(Truncate(meta.VIPAttendees, 60), "(없음)"))
	}
	return b.String()
}

// CoalesceDim returns s, or fallback rendered dim when s is blank.
func CoalesceDim(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return Dim(fallback)
	}
	return s
}
