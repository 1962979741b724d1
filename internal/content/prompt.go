package content

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// DefinitionPrompt asks for a structured explanation of term
func DefinitionPrompt(term string, native, target language.Language) string {
	return fmt.Sprintf(`Define the %s word or phrase %q for a learner whose native language is %s.
1. Give a clear definition in %s.
2. Give a natural definition in %s.
3. Write a fun, casual usage note in %s. No greetings, get straight to the point and keep it short.
4. Give 2 example sentences in %s, each with a %s translation.`,
		target, term, native, target, native, native, target, native)
}

// ImagePrompt asks for an illustration of term
func ImagePrompt(term string, target language.Language) string {
	return fmt.Sprintf(`A fun, bright, pop-art style illustration representing the concept of %q (Language: %s). Minimalist, colorful, flat vector art style. White or light background.`,
		term, target)
}

// StoryPrompt asks for a short story that uses every term of entries
func StoryPrompt(entries []notebook.WordEntry, target, summary language.Language) string {
	terms := make([]string, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
	}

	return fmt.Sprintf(`Write a short, funny and memorable story in %s for an A2/B1 learner.
Use all of these words or phrases: %s.
Highlight each of them in **bold**.
After the story, add a brief translation or summary in %s.`,
		target, strings.Join(terms, ", "), summary)
}
