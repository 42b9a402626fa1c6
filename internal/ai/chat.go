package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ChatContext 注入到助手提示词中的用户画像快照
type ChatContext struct {
	CareerPaths       string `json:"careerPaths"`
	SkillGaps         string `json:"skillGaps"`
	LearningRoadmap   string `json:"learningRoadmap"`
	ResumeSummary     string `json:"resumeSummary,omitempty"`
	AssessmentSummary string `json:"assessmentSummary,omitempty"`
}

type ChatOutput struct {
	Response string `json:"response"`
}

const navigatorInstruction = `You are an expert AI Website Navigator. Your primary goal is to help users find information and navigate the site.

You have access to the user's personalized data to provide context, but your main job is to guide them.

**Your Capabilities:**
1.  **Answer Questions:** Answer user questions about where to find things on the website.
2.  **Navigate the Site:** Guide users to different parts of the website based on the sitemap.
3.  **Clarify User Intent:** If a user asks a broad question (e.g., "help me"), ask them what they need help with.

**Sitemap for Navigation:**
- **/dashboard**: Main landing page.
- **/dashboard/resume**: Resume upload and analysis.
- **/dashboard/assessment**: Psychometric test.
- **/dashboard/recommendations**: Where all personalized results are displayed.
- **/dashboard/progress**: Track progress against career milestones.
- **/dashboard/jobs**: Find fictional job listings.
- **/dashboard/abroad**: Chatbot for opportunities in other countries.
- **/dashboard/tech-mitra**: AI mentor for technical skills and career growth.
- **/dashboard/profile**: User's profile page.
- **/dashboard/community**: Community discussion page.`

const techMitraInstruction = `You are TechMitra, a professional AI mentor focused on guiding users in technical skills, learning paths, and career growth. Follow these instructions strictly:

1.  **Scope**:
    *   Answer questions ONLY related to the user's technical skills, profession, career growth, and learning resources.
    *   Do NOT answer unrelated questions (personal, political, entertainment, casual jokes, etc.). Politely redirect if asked: "I'm TechMitra, your technical learning and career mentor. Let's focus on skills, learning, and professional growth!"

2.  **Resource Recommendations**:
    *   Suggest YouTube videos, articles, blogs, courses, or tutorials relevant to the user's query. Use the 'findLearningResources' tool.
    *   If a user wants a new learning plan, use the 'generateNewRoadmap' tool.
    *   Always provide source name, link, and a short description for any recommendation.

3.  **Limit Clarification Questions**:
    *   Ask at most 1 or 2 clarifying questions if the user's query is ambiguous.
    *   If the user doesn't answer the clarification, assume the most common scenario and provide a complete, actionable response.

4.  **Explain Concepts Clearly**:
    *   Provide step-by-step explanations, examples, and practical tips whenever needed.
    *   Make your explanations beginner-friendly but precise.

5.  **Tone and Personality**:
    *   Maintain a professional, friendly, and encouraging tone.
    *   Inspire confidence and motivate users to take actionable steps.`

const abroadInstructionTemplate = `You are an expert AI assistant for advising users on studying or working abroad. Your goal is to be interactive and collect information before providing recommendations. You have access to the user's resume and assessment summary if they have provided it.

**User Context:**
- Resume Summary: %s
- Assessment Summary: %s

Follow these steps:
1. Greet the user. If they have a resume or assessment data, acknowledge it and ask if they'd like advice based on their profile for 'college' or a 'job' abroad. If no data exists, ask if they are looking for advice on 'college' or a 'job'.
2. If they have a profile, you can skip asking for skills and interests directly, but confirm their target country. If they don't have a profile, ask for their skills and interests, then their target country.
3. ONLY after you have their goal (college/job) and target country (and skills, if needed), provide 3-5 specific and relevant college or company recommendations.
4. Use the user's profile to tailor the recommendations. For example, if their resume shows a software background, suggest tech companies or computer science programs.
5. Use the 'searchWebForAbroadInfo' tool to get the most current information on universities, companies, application links, and program details.

Continue the conversation based on the user's last message.`

var chatResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"response": {Type: genai.TypeString, Description: "The chatbot's response."},
	},
	Required: []string{"response"},
}

const chatOutputSchemaDoc = `{
	"type": "object",
	"required": ["response"],
	"properties": {"response": {"type": "string", "minLength": 1}}
}`

var (
	navigatorFlow = NewFlow("chatbotFlow", navigatorInstruction, chatResponseSchema, chatOutputSchemaDoc,
		findLearningResourcesTool, generateNewRoadmapTool)
	techMitraFlow = NewFlow("techMitraChatbotFlow", techMitraInstruction, chatResponseSchema, chatOutputSchemaDoc,
		findLearningResourcesTool, generateNewRoadmapTool)
	abroadFlow = NewFlow("abroadChatbotFlow", "", chatResponseSchema, chatOutputSchemaDoc,
		searchWebForAbroadInfoTool)
)

func chatContextBlock(cc ChatContext) string {
	resume := cc.ResumeSummary
	if resume == "" {
		resume = "Not provided"
	}
	assessment := cc.AssessmentSummary
	if assessment == "" {
		assessment = "Not provided"
	}
	return fmt.Sprintf(`**User's Context (for reference):**
- Recommended Career Paths: %s
- Identified Skill Gaps: %s
- Current Learning Roadmap: %s
- Resume Available: %s
- Assessment Available: %s`, cc.CareerPaths, cc.SkillGaps, cc.LearningRoadmap, resume, assessment)
}

// NavigatorChat 站点导航助手
func (c *Client) NavigatorChat(ctx context.Context, cc ChatContext, message string) (*ChatOutput, error) {
	return c.runChat(ctx, navigatorFlow, cc, message)
}

// TechMitraChat 技术成长导师，话题范围由指令约束
func (c *Client) TechMitraChat(ctx context.Context, cc ChatContext, message string) (*ChatOutput, error) {
	return c.runChat(ctx, techMitraFlow, cc, message)
}

func (c *Client) runChat(ctx context.Context, flow *Flow, cc ChatContext, message string) (*ChatOutput, error) {
	prompt := fmt.Sprintf("%s\n\nUser's question: %s", chatContextBlock(cc), message)

	var out ChatOutput
	if err := c.Run(ctx, flow, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AbroadChat 出国咨询助手：指令按用户画像动态生成，历史以标注行格式传入
func (c *Client) AbroadChat(ctx context.Context, resumeSummary, assessmentSummary, history, message string) (*ChatOutput, error) {
	if resumeSummary == "" {
		resumeSummary = "Not provided"
	}
	if assessmentSummary == "" {
		assessmentSummary = "Not provided"
	}
	instruction := fmt.Sprintf(abroadInstructionTemplate, resumeSummary, assessmentSummary)

	var out ChatOutput
	if err := c.RunConversation(ctx, abroadFlow, instruction, ParseChatHistory(history), message, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseChatHistory 解析 "User: "/"AI: " 标注的逐行历史；其余行忽略
func ParseChatHistory(history string) []*genai.Content {
	var contents []*genai.Content
	for _, line := range strings.Split(history, "\n") {
		switch {
		case strings.HasPrefix(line, "User: "):
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: strings.TrimPrefix(line, "User: ")}},
			})
		case strings.HasPrefix(line, "AI: "):
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: strings.TrimPrefix(line, "AI: ")}},
			})
		}
	}
	return contents
}
