package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicTokens  = 1024
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewAnthropicService construye el adaptador. Si apiKey está vacío, Generate devuelve ports.ErrNoAPIKey.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		client: resty.New().
			SetBaseURL(anthropicBaseURL).
			SetHeader("x-api-key", apiKey).
			SetHeader("anthropic-version", anthropicVersion).
			SetHeader("content-type", "application/json").
			SetTimeout(25 * time.Second),
	}
}

// WithBaseURL apunta el cliente a otro host (tests o proxy).
func (s *AnthropicService) WithBaseURL(url string) *AnthropicService {
	s.client.SetBaseURL(url)
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate envía el prompt como un mensaje de usuario. Con JSON=true la
// instrucción de sistema pide un objeto JSON sin markdown.
func (s *AnthropicService) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	if s.apiKey == "" {
		return "", ports.ErrNoAPIKey
	}

	blocks := make([]anthropicBlock, 0, 2)
	if p.ImageBase64 != "" {
		blocks = append(blocks, anthropicBlock{
			Type:   "image",
			Source: &anthropicSource{Type: "base64", MediaType: mimeOrDefault(p.MIME), Data: p.ImageBase64},
		})
	}
	blocks = append(blocks, anthropicBlock{Type: "text", Text: p.Text})

	system := p.System
	if p.JSON {
		system = strings.TrimSpace(system + "\nDevuelve ÚNICAMENTE un objeto JSON válido, sin markdown ni texto adicional.")
	}

	var out anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(anthropicRequest{
			Model:     s.model,
			MaxTokens: anthropicTokens,
			System:    system,
			Messages:  []anthropicMessage{{Role: "user", Content: blocks}},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/v1/messages")
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("AI: Anthropic %s: %s", out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode())
	}

	var sb strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("AI: Anthropic devolvió respuesta vacía")
	}
	return text, nil
}
