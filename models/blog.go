package models

// BlogPost is a markdown article. Metadata lives in YAML front matter.
type BlogPost struct {
	Slug        string `yaml:"-" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
	Content     string `yaml:"-" json:"content,omitempty"`
}

// BlogDraftRequest asks the generator for a post body.
type BlogDraftRequest struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
}
