package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/template"
)

// FormatTemplateList renders the presets of one kind as a numbered table
// inside a bordered box. The numbers are accepted by `template show`.
func FormatTemplateList(presets []template.Preset) string {
	if len(presets) == 0 {
		return Dim("템플릿이 없습니다.")
	}
	headers := []string{"#", "템플릿", "순서 수"}
	rows := make([][]string, 0, len(presets))
	for i, p := range presets {
		name := Bold(p.Name)
		if p.IsCustom() {
			name = Dim(p.Name)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(len(p.Labels)),
		})
	}
	return RenderBox(KindBadge(presets[0].Kind), RenderTable(headers, rows))
}

// FormatTemplateShow renders one preset with its default agenda labels.
func FormatTemplateShow(p template.Preset) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleBold.Render(p.Name), KindBadge(p.Kind)))

	if len(p.Labels) == 0 {
		b.WriteString(Dim("  기본 순서 없음 (직접 입력)"))
		return RenderBox("", b.String())
	}

	b.WriteString(Header("기본 행사 순서"))
	b.WriteString("\n")
	for i, label := range p.Labels {
		b.WriteString(fmt.Sprintf("  %s %s\n", Dim(fmt.Sprintf("%2d.", i+1)), label))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
