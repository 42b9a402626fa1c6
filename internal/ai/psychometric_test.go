package ai

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestQuestionKind(t *testing.T) {
	tests := []struct {
		name     string
		question TestQuestion
		want     QuestionKind
	}{
		{
			name:     "带选项为选择题",
			question: TestQuestion{Question: "Which subject do you prefer?", Options: []string{"Math", "History"}},
			want:     QuestionMultipleChoice,
		},
		{
			name:     "量表句式为量表题",
			question: TestQuestion{Question: "On a scale of 1 to 5, how much do you enjoy teamwork?"},
			want:     QuestionScale,
		},
		{
			name:     "无选项无量表为开放题",
			question: TestQuestion{Question: "Describe your dream career."},
			want:     QuestionOpenEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.question.Kind())
		})
	}
}

func TestPersonaSectionVariants(t *testing.T) {
	d := SegmentDetails{Grade: "10th", Location: "Pune", FieldOfStudy: "CS", Experience: "5", Role: "Developer", Industry: "IT"}

	kid := personaSection("kid", d, false)
	assert.Contains(t, kid, "Kid (8-13 years)")

	school := personaSection("school-student", d, true)
	assert.Contains(t, school, "Grade 10th")
	assert.Contains(t, school, "Location: Pune")

	college := personaSection("college-student", d, false)
	assert.Contains(t, college, "Field of Study:** CS")

	pro := personaSection("professional", d, true)
	assert.Contains(t, pro, "Role: Developer")
	assert.Contains(t, pro, "Industry: IT")
}

func testPaperJSON(n int) string {
	var b strings.Builder
	b.WriteString(`{"questions":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"question":"q%d"}`, i+1)
	}
	b.WriteString(`]}`)
	return b.String()
}

func TestGenerateTestRequiresFullPaper(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(testPaperJSON(3)),
	}}
	c := testClient(gen)

	_, err := c.GeneratePsychometricTest(context.Background(), "kid", SegmentDetails{Grade: "5th"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestGenerateTestAcceptsFullPaper(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(testPaperJSON(20)),
	}}
	c := testClient(gen)

	out, err := c.GeneratePsychometricTest(context.Background(), "kid", SegmentDetails{Grade: "5th"})
	require.NoError(t, err)
	assert.Len(t, out.Questions, 20)
}

func TestEvaluatePromptCarriesAnswersAndStatement(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(`{"psychometricSummaryReport":"r","careerAdvisory":"a","expertAdvice":"e"}`),
	}}
	c := testClient(gen)

	answers := []TestAnswer{
		{Question: "Do you like puzzles?", Answer: "Yes"},
		{Question: "Team or solo?", Answer: "Team"},
	}
	out, err := c.EvaluatePsychometricTest(context.Background(), "college-student", SegmentDetails{FieldOfStudy: "CS"}, answers, "my statement")
	require.NoError(t, err)
	assert.Equal(t, "r", out.SummaryReport)
	assert.Equal(t, "a", out.CareerAdvisory)
	assert.Equal(t, "e", out.ExpertAdvice)
}

func TestParseChatHistory(t *testing.T) {
	history := strings.Join([]string{
		"User: hello",
		"AI: hi there",
		"garbage line",
		"User: recommend a college",
	}, "\n")

	contents := ParseChatHistory(history)
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "hello", contents[0].Parts[0].Text)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "hi there", contents[1].Parts[0].Text)
	assert.Equal(t, "recommend a college", contents[2].Parts[0].Text)
}

func TestParseChatHistoryEmpty(t *testing.T) {
	assert.Empty(t, ParseChatHistory(""))
}
