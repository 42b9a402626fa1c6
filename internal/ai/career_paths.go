package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// CareerPathsInput 职业路径推荐输入：简历全文 + 逗号分隔的技能/兴趣
type CareerPathsInput struct {
	ResumeText string `json:"resumeText"`
	Skills     string `json:"skills"`
	Interests  string `json:"interests"`
}

// CareerPathsOutput 三件套结果：路径、技能差距、Markdown学习路线图
type CareerPathsOutput struct {
	CareerPaths     []string `json:"careerPaths"`
	SkillGaps       []string `json:"skillGaps"`
	LearningRoadmap string   `json:"learningRoadmap"`
}

const careerPathsInstruction = `You are a career advisor. A user has provided their resume, skills, and interests.

Based on this, suggest 3-5 personalized career paths, identify skill gaps, and create a learning roadmap.

The learning roadmap must be in a well-formatted Markdown format.

Here is the format for the learning roadmap:
---
### User Profile
- **Current Skills**: [User's provided skills]
- **Target Careers**: [Generated career paths]
- **Skill Gaps**: [Generated skill gaps]
- **Roadmap Version**: Original

### Learning Path

**Step 1: [Step Title]**
*Description*: [Brief description of the step]
*Duration*: [Estimated time, e.g., 2 weeks]
*Resources*:
  - **YouTube**: "[Video Title]" – [URL]
  - **Course**: "[Course Title]" – [URL]

**Step 2: [Step Title]**
...

### Notes / Recommendations
- [Actionable recommendation 1]
- [Actionable recommendation 2]
---

Respond in JSON format. The 'learningRoadmap' field must contain the roadmap in the specified Markdown format.`

var careerPathsFlow = NewFlow(
	"generatePersonalizedCareerPaths",
	careerPathsInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"careerPaths": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An array of personalized career path recommendations.",
			},
			"skillGaps": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An array of skills the user needs to develop for the recommended career paths.",
			},
			"learningRoadmap": {
				Type:        genai.TypeString,
				Description: "A personalized learning roadmap in a specific text format.",
			},
		},
		Required: []string{"careerPaths", "skillGaps", "learningRoadmap"},
	},
	`{
		"type": "object",
		"required": ["careerPaths", "skillGaps", "learningRoadmap"],
		"properties": {
			"careerPaths": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
			"skillGaps": {"type": "array", "items": {"type": "string"}},
			"learningRoadmap": {"type": "string", "minLength": 1}
		}
	}`,
)

// GenerateCareerPaths 由简历/技能/兴趣生成个性化职业推荐
func (c *Client) GenerateCareerPaths(ctx context.Context, in CareerPathsInput) (*CareerPathsOutput, error) {
	prompt := fmt.Sprintf("User Data:\nResume text: %s\nSkills: %s\nInterests: %s", in.ResumeText, in.Skills, in.Interests)

	var out CareerPathsOutput
	if err := c.Run(ctx, careerPathsFlow, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
