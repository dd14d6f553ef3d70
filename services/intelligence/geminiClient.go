// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxToolTurns bounds the call/response rounds of one tool conversation.
const maxToolTurns = 4

var ErrEmptyResponse = errors.New("gemini returned no candidates")

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return responseText(resp)
}

// GenerateJSON constrains the response to schema and decodes it into out.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, safety []*genai.SafetySetting, out any) error {
	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	if len(safety) > 0 {
		model.SafetySettings = safety
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generate error: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini returned malformed JSON: %w", err)
	}
	return nil
}

// RunWithTool lets the model call tool until it answers in text. Every call is
// executed through tool.Handler and its result sent back to the model.
func (g *GeminiClient) RunWithTool(ctx context.Context, prompt string, tool Tool) (*ToolRun, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
		}},
	}}

	cs := model.StartChat()
	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini chat error: %w", err)
	}

	run := &ToolRun{}
	for turn := 0; turn < maxToolTurns; turn++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			if call.Name != tool.Name {
				replies = append(replies, genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"error": "unknown tool " + call.Name},
				})
				continue
			}
			run.Calls++
			result, err := tool.Handler(ctx, call.Args)
			if err != nil {
				return nil, fmt.Errorf("tool %s failed: %w", call.Name, err)
			}
			replies = append(replies, genai.FunctionResponse{Name: call.Name, Response: result})
		}

		resp, err = cs.SendMessage(ctx, replies...)
		if err != nil {
			return nil, fmt.Errorf("gemini chat error: %w", err)
		}
	}

	run.Text, _ = responseText(resp)
	return run, nil
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if fc, ok := part.(genai.FunctionCall); ok {
			calls = append(calls, fc)
		}
	}
	return calls
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
