package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// JobListing 虚构但贴近真实的岗位信息
type JobListing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

type JobsOutput struct {
	JobListings []JobListing `json:"jobListings"`
}

const jobsInstruction = `You are a helpful career assistant for users in India. A user wants to see relevant job listings for a recommended career path.

Generate a list of 3-5 fictional, but realistic, job listings based on the provided career path. Job locations should be major cities in India (e.g., Bangalore, Pune, Hyderabad, Mumbai, Remote).

For each job, provide a title, a fictional company name, a location, and a fictional URL to an application page.`

var jobsFlow = NewFlow(
	"findRelevantJobs",
	jobsInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"jobListings": {
				Type:        genai.TypeArray,
				Description: "An array of 3-5 relevant fictional job listings.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    {Type: genai.TypeString, Description: "The job title."},
						"company":  {Type: genai.TypeString, Description: "The company name."},
						"location": {Type: genai.TypeString, Description: "The job location (e.g., \"Bangalore, India\", \"Remote\")."},
						"url":      {Type: genai.TypeString, Description: "A URL to a fictional job application page."},
					},
					Required: []string{"title", "company", "location", "url"},
				},
			},
		},
		Required: []string{"jobListings"},
	},
	`{
		"type": "object",
		"required": ["jobListings"],
		"properties": {
			"jobListings": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["title", "company", "location", "url"],
					"properties": {
						"title": {"type": "string", "minLength": 1},
						"company": {"type": "string", "minLength": 1},
						"location": {"type": "string", "minLength": 1},
						"url": {"type": "string", "format": "uri"}
					}
				}
			}
		}
	}`,
)

// FindRelevantJobs 按职业路径生成虚构岗位列表
func (c *Client) FindRelevantJobs(ctx context.Context, careerPath string) (*JobsOutput, error) {
	prompt := fmt.Sprintf("Career Path: %s", careerPath)

	var out JobsOutput
	if err := c.Run(ctx, jobsFlow, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
