// Package ai 封装对 Gemini 的请求/响应网关。
// 每个业务流程（Flow）是一份命名的网关配置：固定指令模板、
// 类型化输入、输出JSON Schema；模型可在生成中途调用注册的工具，
// 工具往返次数有上限。
package ai

import (
	"career_compass_backend/internal/config"
	"context"
	"sync"
	"time"

	"google.golang.org/genai"
)

// contentGenerator 对接 genai.Models，便于测试替换
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	Model         string
	Timeout       time.Duration
	MaxToolRounds int
}

type Client struct {
	models contentGenerator

	mu   sync.RWMutex
	opts Options
}

func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return newClient(gc.Models, cfg), nil
}

func newClient(models contentGenerator, cfg config.AIConfig) *Client {
	return &Client{
		models: models,
		opts: Options{
			Model:         cfg.Model,
			Timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
			MaxToolRounds: cfg.MaxToolRounds,
		},
	}
}

// ApplyConfig 配置热加载入口：运行期切换模型/超时
func (c *Client) ApplyConfig(cfg config.AIConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = Options{
		Model:         cfg.Model,
		Timeout:       time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxToolRounds: cfg.MaxToolRounds,
	}
}

func (c *Client) options() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// 安全策略沿用前端版本的配置：危险内容仅拦截高风险
var defaultSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
}
