package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// LearningResource 推荐资源条目
type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

type learningResourcesOutput struct {
	Resources []LearningResource `json:"resources"`
}

// SearchResult 出国咨询的检索结果条目
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type webSearchOutput struct {
	Results []SearchResult `json:"results"`
}

// 工具内部的二次模型调用也走网关，共享超时与指标
var resourceSearchFlow = NewFlow(
	"findLearningResources",
	"You are a helpful research assistant. Respond in JSON format.",
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"resources": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString},
						"url":   {Type: genai.TypeString},
						"type":  {Type: genai.TypeString, Enum: []string{"Article", "Video", "Course", "Tool"}},
					},
					Required: []string{"title", "url", "type"},
				},
			},
		},
		Required: []string{"resources"},
	},
	`{
		"type": "object",
		"required": ["resources"],
		"properties": {
			"resources": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title", "url", "type"],
					"properties": {
						"title": {"type": "string"},
						"url": {"type": "string", "format": "uri"},
						"type": {"type": "string", "enum": ["Article", "Video", "Course", "Tool"]}
					}
				}
			}
		}
	}`,
)

var webSearchFlow = NewFlow(
	"searchWebForAbroadInfo",
	"You are a web search engine. Respond in JSON format.",
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"results": {
				Type:        genai.TypeArray,
				Description: "An array of 3-5 relevant search results.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":   {Type: genai.TypeString, Description: "The title of the search result."},
						"url":     {Type: genai.TypeString, Description: "The URL of the resource."},
						"snippet": {Type: genai.TypeString, Description: "A brief snippet of the content."},
					},
					Required: []string{"title", "url", "snippet"},
				},
			},
		},
		Required: []string{"results"},
	},
	`{
		"type": "object",
		"required": ["results"],
		"properties": {
			"results": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title", "url", "snippet"],
					"properties": {
						"title": {"type": "string"},
						"url": {"type": "string", "format": "uri"},
						"snippet": {"type": "string"}
					}
				}
			}
		}
	}`,
)

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// findLearningResourcesTool 为指定主题检索学习资源
var findLearningResourcesTool = &Tool{
	Declaration: &genai.FunctionDeclaration{
		Name:        "findLearningResources",
		Description: "Finds learning resources like articles, videos, or courses for a given topic.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {Type: genai.TypeString, Description: "The topic to search for resources on."},
			},
			Required: []string{"topic"},
		},
	},
	Handler: func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error) {
		topic := stringArg(args, "topic")
		prompt := fmt.Sprintf(`Find 3-5 high-quality, relevant learning resources (articles, YouTube videos, online courses, or tools) for the following topic: %q. Prioritize resources that are relevant to an audience in India. Provide the title, a valid URL, and the type for each.`, topic)

		var out learningResourcesOutput
		if err := c.Run(ctx, resourceSearchFlow, prompt, &out); err != nil {
			// 资源检索失败不致命，模型会基于空结果继续作答
			return map[string]any{"resources": []any{}}, nil
		}
		return map[string]any{"resources": out.Resources}, nil
	},
}

// generateNewRoadmapTool 为新的职业目标现场生成备选路线图
var generateNewRoadmapTool = &Tool{
	Declaration: &genai.FunctionDeclaration{
		Name:        "generateNewRoadmap",
		Description: "Generates a new or alternative personalized learning roadmap based on the user's career goals and skill gaps.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"careerPath":        {Type: genai.TypeString, Description: "The desired career path for the new roadmap."},
				"skillGaps":         {Type: genai.TypeString, Description: "The skill gaps to address in the new roadmap."},
				"resumeSummary":     {Type: genai.TypeString, Description: "A summary of the user's resume, if available."},
				"assessmentSummary": {Type: genai.TypeString, Description: "A summary of the user's skill/interest assessment, if available."},
			},
			Required: []string{"careerPath", "skillGaps"},
		},
	},
	Handler: func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error) {
		out, err := c.GenerateRoadmap(ctx, RoadmapInput{
			CareerPath:        stringArg(args, "careerPath"),
			SkillGaps:         stringArg(args, "skillGaps"),
			ResumeSummary:     stringArg(args, "resumeSummary"),
			AssessmentSummary: stringArg(args, "assessmentSummary"),
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"newRoadmap": out.Roadmap}, nil
	},
}

// searchWebForAbroadInfoTool 出国留学/工作信息检索
var searchWebForAbroadInfoTool = &Tool{
	Declaration: &genai.FunctionDeclaration{
		Name:        "searchWebForAbroadInfo",
		Description: "Searches the web for real-time information about universities, courses, companies, jobs, and visa requirements for studying or working abroad.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {Type: genai.TypeString, Description: "A detailed search query."},
			},
			Required: []string{"query"},
		},
	},
	Handler: func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error) {
		query := stringArg(args, "query")
		prompt := fmt.Sprintf(`You are a web search engine. Find 3-5 relevant and up-to-date resources for the following query: %q. The user is likely from India, so prioritize results that are relevant to them. For each result, provide a realistic title, a valid URL, and a concise snippet. The results should be real, existing universities, companies, or official resources.`, query)

		var out webSearchOutput
		if err := c.Run(ctx, webSearchFlow, prompt, &out); err != nil {
			return map[string]any{"results": []any{}}, nil
		}
		return map[string]any{"results": out.Results}, nil
	},
}
