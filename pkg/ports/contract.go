package ports

import (
	"testing"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DocumentFactory builds a Document holding text with the given selections.
type DocumentFactory func(t *testing.T, text string, selections []domain.Region) Document

// RunDocumentContract runs a suite of tests to verify that a Document implementation
// adheres to the defined interface contract.
func RunDocumentContract(t *testing.T, factory DocumentFactory) {
	t.Run("Size and Slice", func(t *testing.T) {
		doc := factory(t, "hello world", []domain.Region{{Start: 0, End: 5}})

		assert.Equal(t, 11, doc.Size())
		assert.Equal(t, []byte("hello"), doc.Slice(domain.Region{Start: 0, End: 5}))
		assert.Equal(t, []byte("world"), doc.Slice(domain.Region{Start: 6, End: 11}))
		assert.Empty(t, doc.Slice(domain.Region{Start: 3, End: 3}))
		assert.Nil(t, doc.Slice(domain.NullRegion))
	})

	t.Run("Selections", func(t *testing.T) {
		sel := []domain.Region{{Start: 0, End: 1}, {Start: 4, End: 4}}
		doc := factory(t, "abcdef", sel)
		assert.Equal(t, sel, doc.Selections())

		empty := factory(t, "abcdef", nil)
		assert.Empty(t, empty.Selections())
	})

	t.Run("Replace", func(t *testing.T) {
		doc := factory(t, "abc def", nil)

		require.NoError(t, doc.Replace(domain.Region{Start: 4, End: 7}, "DEFG"))
		assert.Equal(t, 8, doc.Size())
		assert.Equal(t, []byte("abc DEFG"), doc.Slice(domain.Region{Start: 0, End: 8}))

		require.NoError(t, doc.Replace(domain.Region{Start: 3, End: 3}, "!"))
		assert.Equal(t, []byte("abc! DEFG"), doc.Slice(domain.Region{Start: 0, End: 9}))
	})

	t.Run("Replace Out Of Bounds", func(t *testing.T) {
		doc := factory(t, "abc", nil)
		assert.Error(t, doc.Replace(domain.Region{Start: 2, End: 10}, "x"))
		assert.Error(t, doc.Replace(domain.NullRegion, "x"))
	})

	t.Run("NewDocument", func(t *testing.T) {
		doc := factory(t, "", nil)
		assert.NoError(t, doc.NewDocument("echo hi", "hi\n"))
	})
}
