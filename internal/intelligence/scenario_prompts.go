package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cuesheet/internal/agenda"
	"github.com/alexanderramin/cuesheet/internal/domain"
)

// ScenarioDateLayout renders the event date in the prompt.
const ScenarioDateLayout = "2006년 01월 02일"

const scenarioSystemPromptTemplate = "당신은 전문적인 %s 시나리오 작성자입니다. 행사의 특성과 분위기를 고려하여 자연스럽고 품격 있는 시나리오를 작성해주세요."

const twoMCInstruction = "사회자 2명이 번갈아가며 진행하는 형식으로 작성해주세요."

var scenarioInstructions = []string{
	"1. 각 순서별 정확한 사회자 멘트",
	"2. 시간 배분",
	"3. 특이사항 및 주의사항",
	"4. 청중 동작 안내 (기립, 착석 등)",
}

const vipInstruction = "5. VIP 참석자 소개 및 예우 사항"

// ScenarioSystemMessage returns the system message for an event kind.
func ScenarioSystemMessage(kind domain.EventKind) string {
	return fmt.Sprintf(scenarioSystemPromptTemplate, kind)
}

// FormatAgenda renders serialized agenda entries one per line as
// "N. label (M분) - detail".
func FormatAgenda(entries []agenda.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %s (%d분) - %s", e.Position, e.Label, e.DurationMinutes, e.Detail)
	}
	return strings.Join(lines, "\n")
}

// BuildScenarioPrompt assembles the user prompt for one scenario request.
// The output depends only on its arguments.
func BuildScenarioPrompt(meta domain.EventMeta, entries []agenda.Entry) string {
	var vipInfo string
	if meta.Kind.HasVIPs() && meta.VIPAttendees != "" {
		vipInfo = "주요 참석자:\n" + meta.VIPAttendees + "\n"
	}

	instructions := scenarioInstructions
	if meta.Kind.HasVIPs() {
		instructions = append(instructions[:len(instructions):len(instructions)], vipInstruction)
	}

	var mcInstruction string
	if meta.MCCount == 2 {
		mcInstruction = twoMCInstruction
	}

	var b strings.Builder
	fmt.Fprintf(&b, "행사 유형: %s\n", meta.Kind)
	fmt.Fprintf(&b, "행사명: %s\n", meta.Name)
	fmt.Fprintf(&b, "일시: %s\n", meta.Date.Format(ScenarioDateLayout))
	fmt.Fprintf(&b, "장소: %s\n", meta.Location)
	fmt.Fprintf(&b, "사회자 수: %d명\n", meta.MCCount)
	b.WriteString(vipInfo)
	b.WriteString("\n\n행사 순서:\n")
	b.WriteString(FormatAgenda(entries))
	fmt.Fprintf(&b, "\n\n위 정보를 바탕으로 %s에 적합한 시나리오를 작성해주세요. 다음 사항을 반드시 포함해주세요:\n", meta.Kind)
	b.WriteString(strings.Join(instructions, "\n"))
	b.WriteString("\n\n")
	b.WriteString(mcInstruction)
	return b.String()
}
