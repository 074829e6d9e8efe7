package pagetext

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Evaluator resolves selector trees against a document scope and returns
// extracted text fragments. Evaluation drives one scope at a time; failures
// are contained at the smallest level that allows the run to continue.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an Evaluator. A nil logger silences diagnostics.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{logger: logger}
}

// Evaluate resolves node against scope and returns the ordered fragment
// sequence. No matching elements is ([], nil), not an error. A node that
// fails validation contributes nothing; a failure while processing one
// matched element drops that element's contribution and continues with
// the remaining elements.
func (e *Evaluator) Evaluate(ctx context.Context, node *SelectorNode, scope Scope) ([]string, error) {
	if err := node.Validate(); err != nil {
		e.logger.Warn("skipping selector node", "selector", node.Selector, "reason", ErrorMessage(err))
		return nil, nil
	}

	elements, err := scope.Find(ctx, node.Selector, node.EffectiveKind())
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		e.logger.Debug("no elements matched", "selector", node.Selector)
		return nil, nil
	}

	var fragments []string
	for i, el := range elements {
		text, ok, err := e.evaluateElement(ctx, node, el)
		if err != nil {
			e.logger.Warn("failed to process element",
				"selector", node.Selector, "index", i+1, "error", err)
			continue
		}
		if ok {
			fragments = append(fragments, text)
		}
	}

	for i, text := range fragments {
		fragments[i] = applyReplacements(text, node.Replacements)
	}

	return fragments, nil
}

// evaluateElement produces one fragment for a single matched element.
// The boolean result is false when the element contributes nothing.
func (e *Evaluator) evaluateElement(ctx context.Context, node *SelectorNode, el Scope) (string, bool, error) {
	for _, exclusion := range node.Exclusions {
		excluded, err := el.Find(ctx, exclusion, KindStructural)
		if err != nil {
			return "", false, err
		}
		for _, ex := range excluded {
			if err := ex.Remove(ctx); err != nil {
				// Removal failures are local: the excluded element's text
				// leaks into the result, nothing else breaks.
				e.logger.Debug("failed to remove excluded element",
					"selector", node.Selector, "exclusion", exclusion, "error", err)
			}
		}
	}

	if node.IsComposite() {
		var nested []string
		for _, child := range node.Children {
			results, err := e.Evaluate(ctx, child, el)
			if err != nil {
				return "", false, err
			}
			nested = append(nested, results...)
		}
		if len(nested) == 0 {
			return "", false, nil
		}
		return strings.Join(nested, node.EffectiveSeparator()), true, nil
	}

	text, err := el.Text(ctx)
	if err != nil {
		return "", false, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// Run drives Evaluate over a list of top-level selector nodes and joins the
// per-node results into one combined text blob. A node with a non-default
// separator also gets one trailing copy of it appended, so custom
// separators delimit the end of the block, not just the gaps. An empty
// result is a legitimate terminal outcome, not an error.
func (e *Evaluator) Run(ctx context.Context, nodes []*SelectorNode, scope Scope) (string, error) {
	if len(nodes) == 0 {
		return "", nil
	}

	var blocks []string
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fragments, err := e.Evaluate(ctx, node, scope)
		if err != nil {
			e.logger.Error("failed to process selector node",
				"selector", node.Selector, "error", err)
			continue
		}
		if len(fragments) == 0 {
			continue
		}

		sep := node.EffectiveSeparator()
		block := strings.Join(fragments, sep)
		if sep != DefaultSeparator {
			block += sep
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n"), nil
}

// applyReplacements rewrites HTML-style tags in text, applying the rules in
// listed order so later rules compose on already-rewritten text.
func applyReplacements(text string, rules []Replacement) string {
	for _, rule := range rules {
		if rule.TargetTag == "" {
			continue
		}
		tag := regexp.QuoteMeta(rule.TargetTag)
		re, err := regexp.Compile(`(?is)(?:<` + tag + `[^>]*/?>|</` + tag + `>)`)
		if err != nil {
			continue
		}
		text = re.ReplaceAllLiteralString(text, rule.Replacement)
	}
	return text
}
