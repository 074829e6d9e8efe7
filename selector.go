package pagetext

// SelectorKind determines how a selector pattern is interpreted by the
// DOM-query collaborator.
type SelectorKind string

const (
	// KindStructural is a class/tag-style query (CSS).
	KindStructural SelectorKind = "css"

	// KindPath is a hierarchical path query (XPath).
	KindPath SelectorKind = "xpath"
)

// Valid reports whether the kind is one the evaluation engine understands.
func (k SelectorKind) Valid() bool {
	return k == KindStructural || k == KindPath
}

// DefaultSeparator joins sibling fragments when a node does not specify
// its own separator.
const DefaultSeparator = "\n"

// Replacement rewrites HTML-style tags in extracted text. The pattern
// matches an opening tag, a self-closing tag, or a closing tag for
// TargetTag, case-insensitively, across multi-line content, and is
// replaced by the literal Replacement string.
type Replacement struct {
	TargetTag   string
	Replacement string
}

// SelectorNode is one rule in the extraction configuration tree. A node is
// either composite (Children non-empty; it recurses into each matched
// element as a new scope and extracts no leaf text directly) or a leaf
// (it extracts the visible text of each matched element).
type SelectorNode struct {
	// Selector is the pattern passed to the DOM-query collaborator.
	// Required; a node with no selector contributes nothing.
	Selector string

	// Kind determines how Selector is interpreted. Zero value means
	// KindStructural.
	Kind SelectorKind

	// Separator joins this node's sibling fragment results. Empty means
	// DefaultSeparator.
	Separator string

	// Exclusions identify descendant elements to strip from each matched
	// element before text is extracted from it. Removal is destructive
	// for the live scope.
	Exclusions []string

	// Children, if non-empty, make this node composite.
	Children []*SelectorNode

	// Replacements are applied to the node's results, in listed order,
	// after extraction.
	Replacements []Replacement
}

// IsComposite reports whether the node recurses into children instead of
// extracting leaf text.
func (n *SelectorNode) IsComposite() bool {
	return len(n.Children) > 0
}

// EffectiveKind returns the node's kind with the structural default applied.
func (n *SelectorNode) EffectiveKind() SelectorKind {
	if n.Kind == "" {
		return KindStructural
	}
	return n.Kind
}

// EffectiveSeparator returns the node's separator with the default applied.
func (n *SelectorNode) EffectiveSeparator() string {
	if n.Separator == "" {
		return DefaultSeparator
	}
	return n.Separator
}

// Validate returns an error if the node cannot contribute to evaluation.
// A failing node is skipped with a diagnostic rather than failing the run.
func (n *SelectorNode) Validate() error {
	if n.Selector == "" {
		return Errorf(EINVALID, "selector required")
	}
	if !n.EffectiveKind().Valid() {
		return Errorf(EINVALID, "unsupported selector kind %q", n.Kind)
	}
	return nil
}
