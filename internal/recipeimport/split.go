// Package recipeimport turns an uploaded recipe document into a draft recipe
// using plain keyword heuristics.
package recipeimport

import "strings"

// DefaultName is used when the document has no text at all.
const DefaultName = "Nuova Ricetta"

// DefaultCategory is assigned to every imported draft.
const DefaultCategory = "Altro"

var (
	ingredientKeywords  = []string{"ingredienti", "ingredients"}
	instructionKeywords = []string{"preparazione", "instructions", "procedimento"}
)

// Draft is a recipe parsed from a document, not yet saved.
type Draft struct {
	Name         string `json:"name"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Category     string `json:"category"`
}

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
)

// Split reads the first non-blank line as the name, then copies lines into
// ingredients or instructions after a heading containing one of the section
// keywords. Heading lines are dropped, as is text before the first heading.
// Without any heading the whole text becomes the instructions.
func Split(text string) Draft {
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	d := Draft{Name: DefaultName, Category: DefaultCategory}
	if len(lines) == 0 {
		return d
	}
	d.Name = lines[0]

	var ingredients, instructions strings.Builder
	current := sectionNone
	for _, line := range lines[1:] {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, ingredientKeywords):
			current = sectionIngredients
			continue
		case containsAny(lower, instructionKeywords):
			current = sectionInstructions
			continue
		}

		switch current {
		case sectionIngredients:
			ingredients.WriteString(line + "\n")
		case sectionInstructions:
			instructions.WriteString(line + "\n")
		}
	}

	d.Ingredients = strings.TrimSpace(ingredients.String())
	d.Instructions = strings.TrimSpace(instructions.String())
	if d.Ingredients == "" && d.Instructions == "" {
		d.Instructions = strings.TrimSpace(text)
	}
	return d
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
