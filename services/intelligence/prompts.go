package ai

import (
	"fmt"
	"strings"

	"apnakam/models"
)

func summarizePrompt(comments []string) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert review analyst for the "Apna Kam" platform. Your task is to provide a fair and balanced summary of a worker based on customer reviews.

Analyze the following review comments:
`)
	for _, c := range comments {
		fmt.Fprintf(&sb, "- %q\n", c)
	}
	sb.WriteString(`
Based on these reviews, generate a short, easy-to-read paragraph (3-4 sentences). The summary should:
- Be written in a neutral and objective tone.
- Mention both strengths and areas for improvement if they exist.
- Focus on recurring themes mentioned by multiple customers.
- Not invent any information. Base the summary strictly on the provided reviews.
- Conclude with an overall impression that helps a new customer decide.`)
	return sb.String()
}

func skillPrompt(workerDetails string) string {
	return fmt.Sprintf(`You are an AI assistant that suggests relevant skills and categories for workers based on their provided details.

Given the following worker details:

%s

Suggest a list of skills and categories that would be relevant to them.`, workerDetails)
}

func blogPrompt(req models.BlogDraftRequest) string {
	return fmt.Sprintf(`You are an expert content writer for "Apna Kam", a platform connecting skilled workers in India with customers. Your tone is helpful, informative and encouraging.

Blog Post Title: %q
Short Description: %q

Write a full, engaging and SEO-friendly blog post in Markdown.
- Start with a compelling introduction.
- Use Markdown headings (###), bullet points (-) and bold text (**text**).
- Include practical tips or numbered lists where relevant.
- End with a conclusion that encourages readers to use the "Apna Kam" platform.
- Keep the language simple for a general audience in India. Some Hindi words are fine where natural.`, req.Title, req.ShortDescription)
}
