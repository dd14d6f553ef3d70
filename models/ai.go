package models

// SkillSuggestion is the generated skill/category list for a worker profile.
type SkillSuggestion struct {
	SuggestedSkills     []string `json:"suggestedSkills"`
	SuggestedCategories []string `json:"suggestedCategories"`
}
