package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// RoadmapInput 备选路线图生成输入；摘要字段可为空
type RoadmapInput struct {
	CareerPath        string `json:"careerPath"`
	SkillGaps         string `json:"skillGaps"`
	ResumeSummary     string `json:"resumeSummary,omitempty"`
	AssessmentSummary string `json:"assessmentSummary,omitempty"`
}

type RoadmapOutput struct {
	Roadmap string `json:"roadmap"`
}

const roadmapInstruction = `You are an AI career advisor creating a personalized learning roadmap for a user in India.

Based on the user's desired career path, skill gaps, and existing profile, generate a comprehensive learning roadmap. The roadmap must be in a well-formatted Markdown format. Prioritize courses and resources from India-based platforms or those that are highly relevant to the Indian job market.

Here is the format for the text roadmap:
---
### User Profile
- **Current Skills**: [Infer from assessment summary or leave blank if not provided]
- **Target Careers**: [The user's desired career path]
- **Skill Gaps**: [The user's provided skill gaps]
- **Roadmap Version**: Alternative

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

Your entire output must be in JSON format. The 'roadmap' field must contain the roadmap in Markdown.`

var roadmapFlow = NewFlow(
	"generatePersonalizedLearningRoadmap",
	roadmapInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"roadmap": {
				Type:        genai.TypeString,
				Description: "A personalized learning roadmap in a specific text format, including courses, projects, and resources.",
			},
		},
		Required: []string{"roadmap"},
	},
	`{
		"type": "object",
		"required": ["roadmap"],
		"properties": {"roadmap": {"type": "string", "minLength": 1}}
	}`,
)

// GenerateRoadmap 为既有职业目标生成一份新的(备选)学习路线图
func (c *Client) GenerateRoadmap(ctx context.Context, in RoadmapInput) (*RoadmapOutput, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "User's Data:\nDesired Career Path: %s\nSkill Gaps: %s\n", in.CareerPath, in.SkillGaps)
	if in.ResumeSummary != "" {
		fmt.Fprintf(&b, "\nResume Summary: %s\n", in.ResumeSummary)
	}
	if in.AssessmentSummary != "" {
		fmt.Fprintf(&b, "\nAssessment Summary: %s\n", in.AssessmentSummary)
	}

	var out RoadmapOutput
	if err := c.Run(ctx, roadmapFlow, b.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
