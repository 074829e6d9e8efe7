package pagetext_test

import (
	"testing"

	"github.com/pagetext/pagetext"
	"github.com/stretchr/testify/assert"
)

func TestSelectorNodeValidate(t *testing.T) {
	t.Parallel()

	t.Run("requires a selector", func(t *testing.T) {
		t.Parallel()

		err := (&pagetext.SelectorNode{}).Validate()

		assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(err))
	})

	t.Run("rejects unsupported kinds", func(t *testing.T) {
		t.Parallel()

		node := &pagetext.SelectorNode{Selector: ".a", Kind: "regex"}

		assert.Equal(t, pagetext.EINVALID, pagetext.ErrorCode(node.Validate()))
	})

	t.Run("accepts css and xpath kinds", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, (&pagetext.SelectorNode{Selector: ".a"}).Validate())
		assert.NoError(t, (&pagetext.SelectorNode{Selector: ".a", Kind: pagetext.KindStructural}).Validate())
		assert.NoError(t, (&pagetext.SelectorNode{Selector: "//div", Kind: pagetext.KindPath}).Validate())
	})
}

func TestSelectorNodeDefaults(t *testing.T) {
	t.Parallel()

	node := &pagetext.SelectorNode{Selector: ".a"}

	assert.Equal(t, pagetext.KindStructural, node.EffectiveKind())
	assert.Equal(t, "\n", node.EffectiveSeparator())
	assert.False(t, node.IsComposite())

	node.Children = []*pagetext.SelectorNode{{Selector: "p"}}
	assert.True(t, node.IsComposite())
}
