package intelligence

import (
	"fmt"
	"strings"
)

// StoryProblemSystemMessage is sent with every story problem request.
const StoryProblemSystemMessage = "당신은 초등학교 수학 교사입니다. 주어진 수식을 학생들이 일상에서 겪을 법한 상황으로 바꾸어 이해하기 쉬운 문장제 문제를 만들어주세요."

var storyProblemInstructions = []string{
	"1. 초등학생이 이해할 수 있는 쉬운 표현을 사용해주세요.",
	"2. 일상생활 속 상황을 활용해주세요.",
	"3. 수식에 나온 숫자와 연산을 그대로 유지해주세요.",
	"4. 정답이나 풀이 과정은 쓰지 말고 문제 문장만 작성해주세요.",
	"5. 2~3문장 이내로 작성해주세요.",
}

// BuildStoryProblemPrompt assembles the user prompt for one spreadsheet row.
func BuildStoryProblemPrompt(problem string) string {
	return fmt.Sprintf("다음 수식을 문장제 문제로 바꿔주세요.\n수식: %s\n\n다음 사항을 지켜주세요:\n%s",
		strings.TrimSpace(problem), strings.Join(storyProblemInstructions, "\n"))
}
