// File: services/intelligence/interface.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"apnakam/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// ToolHandler executes one model-issued tool call.
type ToolHandler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool is a single function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  *genai.Schema
	Handler     ToolHandler
}

// ToolRun reports what happened during a tool conversation.
type ToolRun struct {
	Calls int
	Text  string
}

// Model is the generation surface used by the content flows.
type Model interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, safety []*genai.SafetySetting, out any) error
}

// Service implements the platform's content flows on top of a Model.
type Service struct {
	model     Model
	summaries *RedisSummaryStore
	logger    *zap.Logger
}

// NewService builds the flows. summaries may be nil to disable caching.
func NewService(model Model, summaries *RedisSummaryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{model: model, summaries: summaries, logger: logger}
}

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString, Description: "A concise, balanced summary of the worker's reviews."},
	},
	Required: []string{"summary"},
}

var skillSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestedSkills": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Suggested skills based on the worker details.",
		},
		"suggestedCategories": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Suggested categories based on the worker details.",
		},
	},
	Required: []string{"suggestedSkills", "suggestedCategories"},
}

var blogSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"blogPostContent": {Type: genai.TypeString, Description: "The full content of the blog post, formatted in Markdown."},
	},
	Required: []string{"blogPostContent"},
}

// skillSafety relaxes dangerous-content blocking so trade descriptions
// (electrical, welding, gas fitting) are not refused.
var skillSafety = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockOnlyHigh},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
}

// SummarizeReviews returns a 3-4 sentence summary of the comments.
func (s *Service) SummarizeReviews(ctx context.Context, comments []string) (string, error) {
	if len(comments) == 0 {
		return "", errors.New("no comments to summarize")
	}
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(ctx, comments); ok {
			return cached, nil
		}
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := s.model.GenerateJSON(ctx, summarizePrompt(comments), summarySchema, nil, &out); err != nil {
		return "", fmt.Errorf("summarize reviews: %w", err)
	}
	summary := strings.TrimSpace(out.Summary)

	if s.summaries != nil && summary != "" {
		if err := s.summaries.Set(ctx, comments, summary); err != nil {
			s.logger.Warn("Failed to cache review summary", zap.Error(err))
		}
	}
	return summary, nil
}

// SuggestSkills proposes skills and categories from free-text worker details.
func (s *Service) SuggestSkills(ctx context.Context, workerDetails string) (*models.SkillSuggestion, error) {
	workerDetails = strings.TrimSpace(workerDetails)
	if workerDetails == "" {
		return nil, errors.New("worker details are required")
	}

	var out models.SkillSuggestion
	if err := s.model.GenerateJSON(ctx, skillPrompt(workerDetails), skillSchema, skillSafety, &out); err != nil {
		return nil, fmt.Errorf("suggest skills: %w", err)
	}
	out.SuggestedSkills = cleanList(out.SuggestedSkills)
	out.SuggestedCategories = cleanList(out.SuggestedCategories)
	return &out, nil
}

// GenerateBlogPost drafts a markdown article body.
func (s *Service) GenerateBlogPost(ctx context.Context, req models.BlogDraftRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", errors.New("title is required")
	}

	var out struct {
		Content string `json:"blogPostContent"`
	}
	if err := s.model.GenerateJSON(ctx, blogPrompt(req), blogSchema, nil, &out); err != nil {
		return "", fmt.Errorf("generate blog post: %w", err)
	}
	return strings.TrimSpace(out.Content), nil
}

// cleanList trims entries and drops blanks and case-insensitive duplicates.
func cleanList(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
