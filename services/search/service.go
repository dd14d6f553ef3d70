package search

import (
	"context"
	"fmt"
	"strings"

	"apnakam/models"
	"apnakam/services/apperrors"
	ai "apnakam/services/intelligence"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

const searchToolName = "searchWorkers"

// SearchService finds approved workers.
type SearchService interface {
	SearchWorkers(ctx context.Context, input models.SearchWorkersInput) ([]models.WorkerProfile, error)
}

// WorkerFinder runs the structured worker query.
type WorkerFinder interface {
	SearchWorkers(ctx context.Context, criteria models.WorkerSearchCriteria) ([]models.User, error)
}

// ToolRunner drives a model conversation with one callable tool.
type ToolRunner interface {
	RunWithTool(ctx context.Context, prompt string, tool ai.Tool) (*ai.ToolRun, error)
}

// DefaultSearchService implements SearchService. Free-text queries are handed
// to the model, which may only answer through the searchWorkers tool; results
// are always records the tool returned from the store.
type DefaultSearchService struct {
	finder WorkerFinder
	runner ToolRunner
	logger *zap.Logger
}

// NewDefaultSearchService builds the service. runner may be nil, in which case
// every search runs the structured filter.
func NewDefaultSearchService(finder WorkerFinder, runner ToolRunner, logger *zap.Logger) *DefaultSearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSearchService{finder: finder, runner: runner, logger: logger}
}

var toolParameters = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"pincode": {
			Type:        genai.TypeString,
			Description: "A 6-digit Indian pincode to filter workers by location.",
		},
		"categories": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: `Skill categories to filter workers by, e.g. "Plumber", "Electrician".`,
		},
	},
}

func (s *DefaultSearchService) SearchWorkers(ctx context.Context, input models.SearchWorkersInput) ([]models.WorkerProfile, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}
	criteria := models.WorkerSearchCriteria{Pincode: input.Pincode, Categories: input.Categories}

	if input.Query == "" || s.runner == nil {
		return s.structured(ctx, criteria)
	}

	collector := newResultSet()
	tool := ai.Tool{
		Name:        searchToolName,
		Description: "Searches for approved skilled workers in the database by location (pincode) and/or skill category.",
		Parameters:  toolParameters,
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			toolCriteria := mergeToolArgs(args, criteria)
			users, err := s.finder.SearchWorkers(ctx, toolCriteria)
			if err != nil {
				return nil, err
			}
			collector.add(users)
			return toolResult(users), nil
		},
	}

	run, err := s.runner.RunWithTool(ctx, buildPrompt(input), tool)
	if err != nil {
		s.logger.Warn("AI search failed, using structured filter", zap.String("query", input.Query), zap.Error(err))
		return s.structured(ctx, criteria)
	}
	if run.Calls == 0 {
		s.logger.Debug("AI search made no tool call, using structured filter", zap.String("query", input.Query))
		return s.structured(ctx, criteria)
	}
	return collector.profiles(), nil
}

func (s *DefaultSearchService) structured(ctx context.Context, criteria models.WorkerSearchCriteria) ([]models.WorkerProfile, error) {
	users, err := s.finder.SearchWorkers(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("worker search failed: %w", err)
	}
	set := newResultSet()
	set.add(users)
	return set.profiles(), nil
}

// normalize trims inputs, validates the pincode and drops blank or repeated
// categories.
func normalize(in models.SearchWorkersInput) (models.SearchWorkersInput, error) {
	in.Query = strings.TrimSpace(in.Query)
	in.Pincode = strings.TrimSpace(in.Pincode)
	if in.Pincode != "" && !models.ValidPincode(in.Pincode) {
		return in, apperrors.NewValidationError("pincode", "pincode must be exactly 6 digits")
	}
	in.Categories = cleanCategories(in.Categories)
	return in, nil
}

func cleanCategories(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mergeToolArgs reads the model's arguments. Filters the user supplied always
// win; a malformed model pincode is ignored.
func mergeToolArgs(args map[string]any, user models.WorkerSearchCriteria) models.WorkerSearchCriteria {
	var c models.WorkerSearchCriteria

	if p, ok := args["pincode"].(string); ok {
		if p = strings.TrimSpace(p); models.ValidPincode(p) {
			c.Pincode = p
		}
	}
	switch raw := args["categories"].(type) {
	case []any:
		for _, v := range raw {
			if s, ok := v.(string); ok {
				c.Categories = append(c.Categories, s)
			}
		}
	case []string:
		c.Categories = append(c.Categories, raw...)
	}
	c.Categories = cleanCategories(c.Categories)

	if user.Pincode != "" {
		c.Pincode = user.Pincode
	}
	if len(user.Categories) > 0 {
		c.Categories = user.Categories
	}
	return c
}

// toolResult is the compact view sent back to the model.
func toolResult(users []models.User) map[string]any {
	workers := make([]any, 0, len(users))
	for _, u := range users {
		workers = append(workers, map[string]any{
			"id":          u.ID,
			"name":        u.Name,
			"category":    u.Category,
			"location":    u.Location,
			"pincode":     u.Pincode,
			"rating":      u.Rating,
			"reviewCount": u.ReviewCount,
		})
	}
	return map[string]any{"workers": workers, "count": len(users)}
}

func buildPrompt(in models.SearchWorkersInput) string {
	var sb strings.Builder
	sb.WriteString(`You are a search assistant for the "Apna Kam" platform, which helps people in India find skilled local workers.

`)
	fmt.Fprintf(&sb, "User's search query: %q\n", in.Query)
	if in.Pincode != "" {
		fmt.Fprintf(&sb, "The user is searching in pincode %s.\n", in.Pincode)
	}
	if len(in.Categories) > 0 {
		fmt.Fprintf(&sb, "The user has filtered by these skill categories: %s.\n", strings.Join(in.Categories, ", "))
	}
	sb.WriteString(`
Instructions:
1. Infer the skill category the user needs (e.g. "fix my leaky tap" means "Plumber").
2. Call the searchWorkers tool to find approved workers. Use the user's pincode and categories if given.
3. Never invent workers. Only the tool's results are shown to the user.
4. After searching, reply with one short sentence describing what you searched for.`)
	return sb.String()
}

// resultSet accumulates tool results in order, without duplicates.
type resultSet struct {
	seen  map[string]struct{}
	users []models.User
}

func newResultSet() *resultSet {
	return &resultSet{seen: map[string]struct{}{}}
}

func (r *resultSet) add(users []models.User) {
	for _, u := range users {
		if _, dup := r.seen[u.ID]; dup {
			continue
		}
		r.seen[u.ID] = struct{}{}
		r.users = append(r.users, u)
	}
}

func (r *resultSet) profiles() []models.WorkerProfile {
	out := make([]models.WorkerProfile, 0, len(r.users))
	for i := range r.users {
		out = append(out, r.users[i].ToWorkerProfile(false))
	}
	return out
}
