// Package render converts a structured recipe into a presentational
// node tree and back. Render is a pure function: the same (recipe,
// mode) input always produces an equivalent tree, and the engine never
// tracks edit deltas — editable regions are only tagged with stable
// field identifiers so Extract can read them back later.
package render

import "github.com/ram55git/recipediary/internal/domain"

// Stable field identifiers tagged onto editable regions. These match
// the wire names of the recipe fields.
const (
	FieldName         = "recipe_name"
	FieldAuthor       = "author"
	FieldDescription  = "description"
	FieldPrepTime     = "prep_time"
	FieldCookTime     = "cook_time"
	FieldYield        = "yield"
	FieldIngredients  = "ingredients"
	FieldInstructions = "instructions"
	FieldTips         = "tips"
)

// Kind classifies a node in the presentational tree.
type Kind int

const (
	KindDocument Kind = iota
	KindTitle
	KindAuthor
	KindDescription
	KindMeta    // row of meta items
	KindMetaItem
	KindSection // titled section wrapping a list
	KindList
	KindItem
)

// Node is one element of the presentational tree. Editable nodes are
// mutable text regions identified by Field (and Index for list items);
// everything else is structural.
type Node struct {
	Kind     Kind
	Field    string // stable field identifier, "" for structural nodes
	Index    int    // position within an ordered sequence, -1 otherwise
	Label    string // presentational label for meta items and sections
	Text     string
	Editable bool
	Children []*Node

	// Identity metadata carried on the document node only. It is not
	// rendered and not editable, but must survive the render/extract
	// round trip.
	RecipeID  string
	CreatedAt string
}

// Render builds the presentational tree for a recipe.
//
// In read-only mode absent optional fields (description, prep time,
// cook time, yield, tips) are omitted entirely — never shown as empty
// defaults. In editable mode every scalar field becomes an editable
// region (empty when absent) and every existing list item becomes an
// independently editable region. Ordered sequences render in the
// exact order supplied; nothing is sorted or deduplicated.
func Render(r *domain.Recipe, editable bool) *Node {
	doc := &Node{
		Kind:      KindDocument,
		Index:     -1,
		RecipeID:  r.ID,
		CreatedAt: r.CreatedAt,
	}

	doc.add(scalar(KindTitle, FieldName, "", r.Name, editable))
	doc.add(scalar(KindAuthor, FieldAuthor, "by", r.Author, editable))
	doc.add(scalar(KindDescription, FieldDescription, "", r.Description, editable))

	meta := &Node{Kind: KindMeta, Index: -1}
	meta.add(scalar(KindMetaItem, FieldPrepTime, "Prep Time", r.PrepTime, editable))
	meta.add(scalar(KindMetaItem, FieldCookTime, "Cook Time", r.CookTime, editable))
	meta.add(scalar(KindMetaItem, FieldYield, "Servings", r.Yield, editable))
	if len(meta.Children) > 0 {
		doc.add(meta)
	}

	doc.add(section("Ingredients", FieldIngredients, r.Ingredients, editable))
	doc.add(section("Instructions", FieldInstructions, r.Instructions, editable))
	doc.add(section("Tips", FieldTips, r.Tips, editable))

	return doc
}

// scalar builds a single-field node, or nil when the field is absent
// in read-only mode.
func scalar(kind Kind, field, label, value string, editable bool) *Node {
	if value == "" && !editable {
		return nil
	}
	return &Node{
		Kind:     kind,
		Field:    field,
		Index:    -1,
		Label:    label,
		Text:     value,
		Editable: editable,
	}
}

// section builds a titled list section, or nil when the sequence is
// empty. List items keep their supplied order and are tagged with
// their index so edits can be read back positionally.
func section(label, field string, items []string, editable bool) *Node {
	if len(items) == 0 {
		return nil
	}
	list := &Node{Kind: KindList, Field: field, Index: -1}
	for i, item := range items {
		list.add(&Node{
			Kind:     KindItem,
			Field:    field,
			Index:    i,
			Text:     item,
			Editable: editable,
		})
	}
	sec := &Node{Kind: KindSection, Index: -1, Label: label}
	sec.add(list)
	return sec
}

func (n *Node) add(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Walk visits every node in document order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Regions returns all editable regions in document order.
func (n *Node) Regions() []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if node.Editable {
			out = append(out, node)
		}
	})
	return out
}

// Region finds the editable region tagged with field (and index for
// list items; pass -1 for scalars). Returns nil when absent.
func (n *Node) Region(field string, index int) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.Editable && node.Field == field && node.Index == index {
			found = node
		}
	})
	return found
}
