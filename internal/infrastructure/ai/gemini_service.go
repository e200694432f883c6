// Package ai contiene los adaptadores HTTP de los proveedores de IA generativa.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador que implementa LLMService llamando a la API REST de Google Gemini.
type GeminiService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
// Si apiKey está vacío, las llamadas devuelven ports.ErrNoAPIKey.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		client: resty.New().
			SetBaseURL(geminiBaseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(25 * time.Second), // el caso de uso impone además su propio timeout
	}
}

// WithBaseURL apunta el cliente a otro host (tests o proxy).
func (s *GeminiService) WithBaseURL(url string) *GeminiService {
	s.client.SetBaseURL(url)
	return s
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *geminiInline `json:"inline_data,omitempty"`
}

type geminiInline struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"` // "application/json" → JSON puro
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Generate envía el prompt (con imagen opcional) y devuelve el texto del primer candidato.
func (s *GeminiService) Generate(ctx context.Context, p ports.Prompt) (string, error) {
	if s.apiKey == "" {
		return "", ports.ErrNoAPIKey
	}

	parts := []geminiPart{{Text: p.Text}}
	if p.ImageBase64 != "" {
		parts = append(parts, geminiPart{InlineData: &geminiInline{MIMEType: mimeOrDefault(p.MIME), Data: p.ImageBase64}})
	}
	payload := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: genConfig{Temperature: 0.4, MaxOutputTokens: 1024},
	}
	if p.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: p.System}}}
	}
	if p.JSON {
		payload.GenerationConfig.ResponseMIMEType = "application/json"
		payload.GenerationConfig.Temperature = 0.2
	}

	var out geminiResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", s.model))
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

func mimeOrDefault(m string) string {
	if m == "" {
		return "image/jpeg"
	}
	return m
}
