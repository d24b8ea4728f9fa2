package render

import (
	"strings"

	"github.com/ram55git/recipediary/internal/domain"
)

// Extract is the inverse of Render in editable mode: it walks the
// tagged regions of a tree and reassembles a structured recipe.
// Scalar values are whitespace-trimmed. List items edited to an empty
// or whitespace-only string are dropped from the sequence rather than
// persisted as blank entries — this is the one deliberate point of
// information loss in the edit cycle.
func Extract(doc *Node) *domain.Recipe {
	out := &domain.Recipe{
		ID:        doc.RecipeID,
		CreatedAt: doc.CreatedAt,
	}

	doc.Walk(func(n *Node) {
		if !n.Editable {
			return
		}
		text := strings.TrimSpace(n.Text)
		if n.Index >= 0 {
			if text == "" {
				return
			}
			switch n.Field {
			case FieldIngredients:
				out.Ingredients = append(out.Ingredients, text)
			case FieldInstructions:
				out.Instructions = append(out.Instructions, text)
			case FieldTips:
				out.Tips = append(out.Tips, text)
			}
			return
		}
		switch n.Field {
		case FieldName:
			out.Name = text
		case FieldAuthor:
			out.Author = text
		case FieldDescription:
			out.Description = text
		case FieldPrepTime:
			out.PrepTime = text
		case FieldCookTime:
			out.CookTime = text
		case FieldYield:
			out.Yield = text
		}
	})

	return out
}
