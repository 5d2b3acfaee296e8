package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"voicedraft-be/pkg/llm"
)

const defaultModel = "gemini-2.0-flash"

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []*geminiContent        `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiProvider talks to the Google generative language REST API. It supports
// text parts and inline audio parts in a single request.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiProvider(apiKey, model string, timeout time.Duration) *GeminiProvider {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt llm.Prompt, options ...llm.Option) (string, error) {
	opts := &llm.Options{Model: p.model}
	for _, o := range options {
		o(opts)
	}

	parts := make([]*geminiPart, 0, len(prompt.Parts))
	for _, part := range prompt.Parts {
		if part.IsAudio() {
			parts = append(parts, &geminiPart{
				InlineData: &geminiInlineData{
					MimeType: part.AudioMIME,
					Data:     part.AudioData,
				},
			})
			continue
		}
		parts = append(parts, &geminiPart{Text: part.Text})
	}

	payload := geminiRequest{
		Contents: []*geminiContent{{Parts: parts, Role: "user"}},
	}
	if prompt.System != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []*geminiPart{{Text: prompt.System}},
		}
	}
	if opts.Temperature > 0 || opts.TopP > 0 || opts.TopK > 0 || opts.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			TopK:            opts.TopK,
			MaxOutputTokens: opts.MaxTokens,
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", &llm.BackendError{Op: llm.OpRequest, Cause: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, opts.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", &llm.BackendError{Op: llm.OpRequest, Cause: err}
	}

	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", &llm.BackendError{Op: llm.OpRequest, Cause: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &llm.BackendError{Op: llm.OpDecode, Cause: err}
	}

	if res.StatusCode != http.StatusOK {
		return "", &llm.BackendError{
			Op:    llm.OpStatus,
			Cause: fmt.Errorf("status %d, body %s", res.StatusCode, string(resBody)),
		}
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", &llm.BackendError{Op: llm.OpDecode, Cause: err}
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &llm.BackendError{
			Op:    llm.OpEmpty,
			Cause: fmt.Errorf("response missing candidate text"),
		}
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
