package ai

import (
	"career_compass_backend/pkg/logger"
	"career_compass_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var (
	// ErrEmptyOutput 模型无输出或输出未通过Schema校验
	ErrEmptyOutput = errors.New("the AI model did not produce any usable output")
	// ErrBlocked 请求或回答被安全策略拦截
	ErrBlocked = errors.New("the request was blocked by the provider safety filter")
	// ErrToolRounds 工具调用超过往返上限
	ErrToolRounds = errors.New("tool invocation exceeded the configured round limit")
	// ErrProvider 服务商调用本身失败（网络、配额、超时）
	ErrProvider = errors.New("the AI provider request failed")
)

// Tool 模型可调用的子操作，本身也是网关形态：有自己的输入/输出Schema，
// 结果以 FunctionResponse 回灌给模型后才产生最终输出
type Tool struct {
	Declaration *genai.FunctionDeclaration
	Handler     func(ctx context.Context, c *Client, args map[string]any) (map[string]any, error)
}

// Flow 一份命名网关配置
type Flow struct {
	Name        string
	Instruction string // 系统指令；RunConversation 可逐轮覆盖
	Response    *genai.Schema
	Tools       []*Tool

	output *gojsonschema.Schema // 信任模型输出前的结构校验
}

// NewFlow 输出Schema文档在编译期固定，解析失败属于编程错误
func NewFlow(name, instruction string, response *genai.Schema, outputSchemaDoc string, tools ...*Tool) *Flow {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(outputSchemaDoc))
	if err != nil {
		panic(fmt.Sprintf("ai: invalid output schema for flow %s: %v", name, err))
	}
	return &Flow{
		Name:        name,
		Instruction: instruction,
		Response:    response,
		Tools:       tools,
		output:      schema,
	}
}

// Run 单轮调用：插值后的提示词 → 校验后的结构化输出
func (c *Client) Run(ctx context.Context, flow *Flow, prompt string, out interface{}) error {
	return c.RunConversation(ctx, flow, "", nil, prompt, out)
}

// RunConversation 带历史的调用；instruction 非空时覆盖流程默认指令
func (c *Client) RunConversation(ctx context.Context, flow *Flow, instruction string, history []*genai.Content, message string, out interface{}) error {
	start := time.Now()
	err := c.runConversation(ctx, flow, instruction, history, message, out)
	monitoring.ObserveGatewayCall(flow.Name, start, err)
	if err != nil {
		logger.Log.Warn("AI gateway flow failed",
			zap.String("flow", flow.Name),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) runConversation(ctx context.Context, flow *Flow, instruction string, history []*genai.Content, message string, out interface{}) error {
	opts := c.options()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if instruction == "" {
		instruction = flow.Instruction
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   flow.Response,
		SafetySettings:   defaultSafetySettings,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
	}
	if len(flow.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(flow.Tools))
		for _, t := range flow.Tools {
			decls = append(decls, t.Declaration)
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	var resp *genai.GenerateContentResponse
	for round := 0; ; round++ {
		var err error
		resp, err = c.models.GenerateContent(ctx, opts.Model, contents, cfg)
		if err != nil {
			return fmt.Errorf("flow %s: %w: %v", flow.Name, ErrProvider, err)
		}

		if blocked(resp) {
			return fmt.Errorf("flow %s: %w", flow.Name, ErrBlocked)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			break
		}
		if round >= opts.MaxToolRounds {
			return fmt.Errorf("flow %s: %w", flow.Name, ErrToolRounds)
		}

		// 把模型的函数调用回合与工具结果一起拼回上下文
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			result, err := flow.dispatch(ctx, c, call)
			if err != nil {
				return fmt.Errorf("flow %s: tool %s: %w", flow.Name, call.Name, err)
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: result,
				},
			})
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fmt.Errorf("flow %s: %w", flow.Name, ErrEmptyOutput)
	}

	check, err := flow.output.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return fmt.Errorf("flow %s: %w: %v", flow.Name, ErrEmptyOutput, err)
	}
	if !check.Valid() {
		msgs := make([]string, 0, len(check.Errors()))
		for _, e := range check.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("flow %s: %w: %s", flow.Name, ErrEmptyOutput, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("flow %s: %w: %v", flow.Name, ErrEmptyOutput, err)
	}
	return nil
}

func (f *Flow) dispatch(ctx context.Context, c *Client, call *genai.FunctionCall) (map[string]any, error) {
	for _, t := range f.Tools {
		if t.Declaration.Name == call.Name {
			return t.Handler(ctx, c, call.Args)
		}
	}
	return nil, fmt.Errorf("model requested unknown tool %q", call.Name)
}

func blocked(resp *genai.GenerateContentResponse) bool {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return true
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return true
		}
	}
	return false
}
