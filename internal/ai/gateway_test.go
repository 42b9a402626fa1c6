package ai

import (
	"career_compass_backend/internal/config"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	responses []*genai.GenerateContentResponse
	err       error
	calls     int
	lastModel string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.lastModel = model
	if f.err != nil {
		return nil, f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func toolCallResponse(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{
				{FunctionCall: &genai.FunctionCall{Name: name, Args: args}},
			}}},
		},
	}
}

func testClient(gen contentGenerator) *Client {
	return newClient(gen, config.AIConfig{
		Model:          "gemini-2.0-flash",
		TimeoutSeconds: 5,
		MaxToolRounds:  1,
	})
}

var echoFlow = NewFlow(
	"echoFlow",
	"You echo.",
	&genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{"response": {Type: genai.TypeString}},
		Required:   []string{"response"},
	},
	`{"type":"object","required":["response"],"properties":{"response":{"type":"string","minLength":1}}}`,
)

func TestRunDecodesValidOutput(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(`{"response":"hello"}`),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Response)
	assert.Equal(t, "gemini-2.0-flash", gen.lastModel)
}

func TestRunEmptyOutput(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(""),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestRunRejectsSchemaViolation(t *testing.T) {
	// response字段缺失，通不过输出Schema校验
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(`{"reply":"hello"}`),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestRunProviderFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	assert.ErrorIs(t, err, ErrProvider)
}

func TestRunBlockedBySafety(t *testing.T) {
	resp := textResponse(`{"response":"x"}`)
	resp.Candidates[0].FinishReason = genai.FinishReasonSafety
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{resp}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestRunResolvesToolCallThenOutput(t *testing.T) {
	invoked := false
	flow := NewFlow(
		"toolFlow",
		"instruction",
		echoFlow.Response,
		`{"type":"object","required":["response"],"properties":{"response":{"type":"string"}}}`,
		&Tool{
			Declaration: &genai.FunctionDeclaration{Name: "lookup"},
			Handler: func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error) {
				invoked = true
				assert.Equal(t, "go", args["topic"])
				return map[string]any{"found": true}, nil
			},
		},
	)

	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		toolCallResponse("lookup", map[string]any{"topic": "go"}),
		textResponse(`{"response":"done"}`),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), flow, "hi", &out)
	require.NoError(t, err)
	assert.True(t, invoked)
	assert.Equal(t, "done", out.Response)
	assert.Equal(t, 2, gen.calls)
}

func TestRunEnforcesToolRoundCap(t *testing.T) {
	flow := NewFlow(
		"loopFlow",
		"instruction",
		echoFlow.Response,
		`{"type":"object","required":["response"],"properties":{"response":{"type":"string"}}}`,
		&Tool{
			Declaration: &genai.FunctionDeclaration{Name: "lookup"},
			Handler: func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error) {
				return map[string]any{}, nil
			},
		},
	)

	// 模型永远要求调用工具，超过上限后终止
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		toolCallResponse("lookup", nil),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), flow, "hi", &out)
	assert.ErrorIs(t, err, ErrToolRounds)
	// 首轮 + 上限允许的一轮重试
	assert.Equal(t, 2, gen.calls)
}

func TestRunUnknownToolFails(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		toolCallResponse("nonexistent", nil),
		textResponse(`{"response":"x"}`),
	}}
	c := testClient(gen)

	var out ChatOutput
	err := c.Run(context.Background(), echoFlow, "hi", &out)
	assert.Error(t, err)
}

func TestApplyConfigSwitchesModel(t *testing.T) {
	gen := &fakeGenerator{responses: []*genai.GenerateContentResponse{
		textResponse(`{"response":"x"}`),
	}}
	c := testClient(gen)

	c.ApplyConfig(config.AIConfig{Model: "gemini-2.5-pro", TimeoutSeconds: 10, MaxToolRounds: 2})

	var out ChatOutput
	require.NoError(t, c.Run(context.Background(), echoFlow, "hi", &out))
	assert.Equal(t, "gemini-2.5-pro", gen.lastModel)
}
