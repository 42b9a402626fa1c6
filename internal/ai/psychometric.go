package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// SegmentDetails 各人群分支的补充信息，只有对应分支的字段会被填充
type SegmentDetails struct {
	// kid / school-student
	Grade string `json:"grade,omitempty"`
	// school-student
	Location string `json:"location,omitempty"`
	// college-student
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	// professional
	Experience string `json:"experience,omitempty"`
	Role       string `json:"role,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

// TestQuestion 无options则为量表题或开放题，以题干中的量表句式区分
type TestQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// QuestionKind 题型
type QuestionKind string

const (
	QuestionMultipleChoice QuestionKind = "multiple-choice"
	QuestionScale          QuestionKind = "scale"
	QuestionOpenEnded      QuestionKind = "open-ended"
)

// Kind 按约定判别题型：有选项为选择题，题干含量表句式为量表题，否则开放题
func (q TestQuestion) Kind() QuestionKind {
	if len(q.Options) > 0 {
		return QuestionMultipleChoice
	}
	if strings.Contains(q.Question, "On a scale") {
		return QuestionScale
	}
	return QuestionOpenEnded
}

// testQuestionCount 测评卷固定题量
const testQuestionCount = 20

type PsychometricTestOutput struct {
	Questions []TestQuestion `json:"questions"`
}

// TestAnswer 题目原文与作答配对
type TestAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluationOutput 三段Markdown报告
type EvaluationOutput struct {
	SummaryReport  string `json:"psychometricSummaryReport"`
	CareerAdvisory string `json:"careerAdvisory"`
	ExpertAdvice   string `json:"expertAdvice"`
}

const generateTestInstruction = `You are a Career & Skills Psychometric Assistant. Your job is to create a personalized 20-question psychometric test based on the user's persona. The test should be culturally relevant for India.

**Instructions for Test Generation:**
- Generate exactly 20 questions relevant to the user's persona and details.
- Use a mix of question types:
    1.  **Multiple-Choice:** Provide options in the 'options' array.
    2.  **Scale-Based:** Leave 'options' empty and include "On a scale of 1 to 5" in the question text.
    3.  **Open-Ended:** Leave 'options' empty and ask a question requiring a written response. Do NOT include "On a scale..." for these.
- **Include questions related to hobbies and sports preferences for all personas.** Ask about playing vs. following, team vs. individual sports, etc.`

const evaluateTestInstruction = `You are an AI Career Psychologist & Mentor. You will analyze a user's psychometric test results to provide a detailed, empathetic, and actionable report. Your response must be structured into three parts: a Psychometric Test Report, Career Advisory, and an Expert Advice Section.

---
**YOUR TASK: Generate the following three sections based on the user's data and persona.**
---

**1. Psychometric Summary Report (Detailed)**
Provide a psychologist-style report. Be detailed, empathetic, and provide reasoning.
- **Personality Profile:** Analyze their personality (e.g., "You score high on Openness... which means you are curious and empathetic...").
- **Aptitude Strengths:** Identify their key cognitive strengths (e.g., "Your numerical and logical reasoning is strong, making data-heavy roles easier...").
- **Interest Mapping (RIASEC style):** Map their interests (e.g., "You fall into the Investigative + Artistic types, meaning you enjoy creative problem-solving...").
- **Values & Motivation:** Discern what drives them (e.g., "Autonomy and recognition matter deeply to you; you'll feel stifled in overly bureaucratic roles.").
- **Emotional Intelligence (EQ):** Offer insights into their self-awareness and empathy.

**2. Career Advisory (Extensive & Beyond Just Path)**
Go beyond just suggesting job titles.
- **Career Pathways & Workplace Culture Fit:** Suggest multiple paths and the type of environment (startup vs. corporate vs. academia) where they would thrive.
- **Skill Gaps & Future Trends:** List specific hard and soft skills to develop and mention emerging sectors they should watch.
- **Potential Challenges & Work-Life Alignment:** Identify their blind spots and discuss how their personality might affect work-life balance.

**3. Expert Advice (Human-like, Relatable, Conversational)**
Write in the tone of a wise, warm career coach. Use natural jargon and relatable proverbs (Hindi & English).
- **Example Tone:** "Beta, your profile screams leadership potential, but remember — 'jhukta hai wohi shakh jismein phal lagte hain'. Humility will accelerate your journey. Focus on mastering communication alongside your technical edge — that's your rocket fuel."
- **Example Tone 2:** "Rome wasn't built in a day — patience and consistency will be your biggest investments. As they say, 'low hanging fruits first' – pick skills that give you quick wins."

---
**GENERATE THE RESPONSE IN THE SPECIFIED JSON FORMAT. EACH FIELD SHOULD BE A SINGLE MARKDOWN-FORMATTED STRING.**
---`

var generateTestFlow = NewFlow(
	"generatePsychometricTest",
	generateTestInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"questions": {
				Type:        genai.TypeArray,
				Description: "An array of 20 psychometric test questions.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString, Description: "The question text."},
						"options": {
							Type:        genai.TypeArray,
							Items:       &genai.Schema{Type: genai.TypeString},
							Description: "An array of options for multiple-choice questions.",
						},
					},
					Required: []string{"question"},
				},
			},
		},
		Required: []string{"questions"},
	},
	`{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["question"],
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"options": {"type": "array", "items": {"type": "string"}}
					}
				}
			}
		}
	}`,
)

var evaluateTestFlow = NewFlow(
	"evaluatePsychometricTest",
	evaluateTestInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"psychometricSummaryReport": {
				Type:        genai.TypeString,
				Description: "A detailed, empathetic psychologist-style report covering personality, aptitude, interests, values, and EQ. Formatted as a single Markdown string.",
			},
			"careerAdvisory": {
				Type:        genai.TypeString,
				Description: "Extensive career advice covering pathways, culture fit, skill gaps, trends, and challenges. Formatted as a single Markdown string.",
			},
			"expertAdvice": {
				Type:        genai.TypeString,
				Description: "A warm, conversational, human-like section from a career coach, using relatable metaphors and actionable guidance. Formatted as a single Markdown string.",
			},
		},
		Required: []string{"psychometricSummaryReport", "careerAdvisory", "expertAdvice"},
	},
	`{
		"type": "object",
		"required": ["psychometricSummaryReport", "careerAdvisory", "expertAdvice"],
		"properties": {
			"psychometricSummaryReport": {"type": "string", "minLength": 1},
			"careerAdvisory": {"type": "string", "minLength": 1},
			"expertAdvice": {"type": "string", "minLength": 1}
		}
	}`,
)

// personaSection 按人群拼出提示词中的画像段落
func personaSection(segment string, d SegmentDetails, forEvaluation bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**User Persona: %s**\n\n", segment)

	switch segment {
	case "kid":
		if forEvaluation {
			fmt.Fprintf(&b, "**Persona Details:** Grade %s\n", d.Grade)
			b.WriteString("- **Tone:** Simple, fun, encouraging, and parent-friendly.\n")
			b.WriteString("- **Focus:** Discover talents and suggest fun hobbies. Avoid formal career talk. Frame \"career exposure\" as discovering what they might enjoy, like a \"future engineer\" or \"storyteller.\"\n")
		} else {
			b.WriteString("**Persona: Kid (8-13 years)**\n")
			b.WriteString("- **Goal:** Discover natural inclinations, hobbies, and talents.\n")
			b.WriteString("- **Test Focus:**\n")
			b.WriteString("    - **Aptitude:** Simple puzzles, memory challenges, shape recognition, pattern completion.\n")
			b.WriteString("    - **Personality:** Playful choices (e.g., \"Do you prefer playing in a team or alone?\").\n")
			b.WriteString("    - **Interests:** Image-based or simple questions about hobbies (music, coding, art, sports, reading).\n")
			b.WriteString("- **Question Style:** Fun, simple language. Use emojis where appropriate.\n")
		}
	case "school-student":
		if forEvaluation {
			fmt.Fprintf(&b, "**Persona Details:** Grade %s, Location: %s\n", d.Grade, d.Location)
			b.WriteString("- **Tone:** Motivational but practical.\n")
			b.WriteString("- **Focus:** Help decide academic streams (Science, Commerce, Arts) and suggest broad career clusters (e.g., Engineering, Design, Civil Services).\n")
		} else {
			b.WriteString("**Persona: School Student (14-18 years)**\n")
			fmt.Fprintf(&b, "- **Grade:** %s\n", d.Grade)
			b.WriteString("- **Goal:** Help decide academic streams (Science, Commerce, Arts) and potential career clusters.\n")
			b.WriteString("- **Test Focus:**\n")
			b.WriteString("    - **Aptitude:** Logical reasoning, basic math, verbal skills, abstract reasoning.\n")
			b.WriteString("    - **Personality:** Curiosity, discipline, teamwork, creativity.\n")
			b.WriteString("    - **Interests:** Subject preferences (Math vs. History), dream career questions.\n")
			b.WriteString("- **Question Style:** Motivational and practical.\n")
		}
	case "college-student":
		if forEvaluation {
			fmt.Fprintf(&b, "**Persona Details:** Field of Study: %s\n", d.FieldOfStudy)
			b.WriteString("- **Tone:** Balanced professional and advisory.\n")
			b.WriteString("- **Focus:** Suggest specific internships, entry-level jobs, or higher education paths. Discuss workplace culture.\n")
		} else {
			b.WriteString("**Persona: College Student (18-24 years)**\n")
			fmt.Fprintf(&b, "- **Field of Study:** %s\n", d.FieldOfStudy)
			b.WriteString("- **Goal:** Choose internships, jobs, or higher education paths.\n")
			b.WriteString("- **Test Focus:**\n")
			b.WriteString("    - **Aptitude:** Problem-solving, analytical ability, abstract thinking.\n")
			b.WriteString("    - **Personality:** Collaboration vs. independence, risk appetite.\n")
			b.WriteString("    - **Interests:** Domains like Tech, Business, Research, Arts, Public Service.\n")
			b.WriteString("- **Question Style:** Balanced professional and advisory tone. For college students, include questions about their interest and passion for their field, not just technical knowledge checks. For example: \"How passionate are you about your current course?\"\n")
		}
	case "professional":
		if forEvaluation {
			fmt.Fprintf(&b, "**Persona Details:** Experience: %s, Role: %s, Industry: %s\n", d.Experience, d.Role, d.Industry)
			b.WriteString("- **Tone:** Formal and strategic.\n")
			b.WriteString("- **Focus:** Provide strategies for career growth, transitions, or upskilling. Talk about leadership and industry trends.\n")
		} else {
			b.WriteString("**Persona: Working Professional (25+ years)**\n")
			fmt.Fprintf(&b, "- **Years of Experience:** %s\n", d.Experience)
			fmt.Fprintf(&b, "- **Current Role:** %s\n", d.Role)
			fmt.Fprintf(&b, "- **Industry:** %s\n", d.Industry)
			b.WriteString("- **Goal:** Career growth, transitions, or upskilling.\n")
			b.WriteString("- **Test Focus:**\n")
			b.WriteString("    - **Aptitude:** Scenario-based reasoning, decision-making, problem-solving.\n")
			b.WriteString("    - **Personality:** Work values (stability vs. innovation), leadership potential.\n")
			b.WriteString("    - **Interests:** Exploring new domains (e.g., tech, management, entrepreneurship).\n")
			b.WriteString("- **Question Style:** Formal and strategic.\n")
		}
	}
	return b.String()
}

// GeneratePsychometricTest 为指定人群生成20题测评卷
func (c *Client) GeneratePsychometricTest(ctx context.Context, segment string, details SegmentDetails) (*PsychometricTestOutput, error) {
	prompt := personaSection(segment, details, false)

	var out PsychometricTestOutput
	if err := c.Run(ctx, generateTestFlow, prompt, &out); err != nil {
		return nil, err
	}
	if len(out.Questions) != testQuestionCount {
		return nil, fmt.Errorf("flow %s: %w: expected %d questions, got %d", generateTestFlow.Name, ErrEmptyOutput, testQuestionCount, len(out.Questions))
	}
	return &out, nil
}

// EvaluatePsychometricTest 汇总作答与自述，生成三段式测评报告
func (c *Client) EvaluatePsychometricTest(ctx context.Context, segment string, details SegmentDetails, answers []TestAnswer, reflection string) (*EvaluationOutput, error) {
	var b strings.Builder
	b.WriteString(personaSection(segment, details, true))
	b.WriteString("\n**User's Test Data:**\n- **Test Answers:**\n")
	for _, a := range answers {
		fmt.Fprintf(&b, "  - Question: %q\n  - Answer: %q\n", a.Question, a.Answer)
	}
	fmt.Fprintf(&b, "- **Personal Statement:**\n%q\n", reflection)

	var out EvaluationOutput
	if err := c.Run(ctx, evaluateTestFlow, b.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
