package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/pkg/config"
)

func TestSinAPIKey(t *testing.T) {
	_, err := NewGeminiService("", "gemini-2.5-flash").Generate(context.Background(), ports.Prompt{Text: "hola"})
	assert.ErrorIs(t, err, ports.ErrNoAPIKey)
	_, err = NewAnthropicService("", "claude").Generate(context.Background(), ports.Prompt{Text: "hola"})
	assert.ErrorIs(t, err, ports.ErrNoAPIKey)
}

func TestGemini_Generate(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" {\"status\":\"PASS\"} "}]}}]}`))
	}))
	defer srv.Close()

	out, err := NewGeminiService("k", "gemini-test").WithBaseURL(srv.URL).Generate(context.Background(), ports.Prompt{
		System: "Inspector", Text: "Analiza", ImageBase64: "AAAA", JSON: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"status":"PASS"}`, out)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "image/jpeg", got.Contents[0].Parts[1].InlineData.MIMEType)
	require.NotNil(t, got.SystemInstruction)
}

func TestGemini_ErrorDelProveedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).Generate(context.Background(), ports.Prompt{Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestAnthropic_Generate(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Copia de venta"}]}`))
	}))
	defer srv.Close()

	out, err := NewAnthropicService("k", "claude-test").WithBaseURL(srv.URL).Generate(context.Background(), ports.Prompt{
		Text: "Describe", ImageBase64: "AAAA", MIME: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Copia de venta", out)
	assert.Equal(t, "claude-test", got.Model)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "image", got.Messages[0].Content[0].Type)
	assert.Equal(t, "image/png", got.Messages[0].Content[0].Source.MediaType)
}

func TestAnthropic_RespuestaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("k", "m").WithBaseURL(srv.URL).Generate(context.Background(), ports.Prompt{Text: "x"})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	_, ok := NewFromConfig(config.AIConfig{Provider: "anthropic"}).(*AnthropicService)
	assert.True(t, ok)
	_, ok = NewFromConfig(config.AIConfig{Provider: "gemini"}).(*GeminiService)
	assert.True(t, ok)
}
