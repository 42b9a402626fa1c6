package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type FlowchartOutput struct {
	Flowchart string `json:"flowchart"`
}

const flowchartInstruction = `You are a visual AI designer. You have been given a detailed learning roadmap in Markdown format. Your task is to convert this roadmap into a clear, professional flowchart using Mermaid syntax.

- Represent each roadmap step as a node.
- Use arrows to show the sequence between steps.
- Keep the flowchart clean, top-down, and easy to read.
- Use concise text in each node.
- Add styling to the nodes to match the theme: a light indigo fill (#E8EAF6) and a deep indigo border (#3F51B5).
- Style the final node (e.g., "Ready for Job Applications") with a vibrant orange fill (#FF9800) to indicate completion.

Here is an example of the Mermaid flowchart format:
graph TD
    A["Step 1: Foundation"] --> B["Step 2: Core Skills"]
    B --> C["Step 3: Project"]
    C --> D["Step 4: Specialization"]
    D --> E["Ready for Job Applications"]

    style A fill:#E8EAF6,stroke:#3F51B5,stroke-width:2px
    style B fill:#E8EAF6,stroke:#3F51B5,stroke-width:2px
    style C fill:#E8EAF6,stroke:#3F51B5,stroke-width:2px
    style D fill:#E8EAF6,stroke:#3F51B5,stroke-width:2px
    style E fill:#FF9800,stroke:#3F51B5,stroke-width:2px

Respond in JSON format. The 'flowchart' field must contain only the Mermaid syntax.`

var flowchartFlow = NewFlow(
	"generateRoadmapFlowchart",
	flowchartInstruction,
	&genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"flowchart": {
				Type:        genai.TypeString,
				Description: "A Mermaid syntax flowchart representing the learning roadmap.",
			},
		},
		Required: []string{"flowchart"},
	},
	`{
		"type": "object",
		"required": ["flowchart"],
		"properties": {"flowchart": {"type": "string", "minLength": 1}}
	}`,
)

// GenerateFlowchart 把Markdown路线图转为Mermaid流程图文本
func (c *Client) GenerateFlowchart(ctx context.Context, roadmap string) (*FlowchartOutput, error) {
	prompt := fmt.Sprintf("Textual Roadmap to Convert:\n%s", roadmap)

	var out FlowchartOutput
	if err := c.Run(ctx, flowchartFlow, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
