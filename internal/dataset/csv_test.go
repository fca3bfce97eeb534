package dataset_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"schoolscan_backend/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentEscapesEmbeddedCommas(t *testing.T) {
	doc := dataset.Document(
		[]string{"name", "score"},
		[][]string{{"Jan, de Boer", "7.5"}},
	)

	// A comma inside a name must not change the column count.
	records, err := csv.NewReader(strings.NewReader(doc)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"name", "score"}, records[0])
	assert.Equal(t, []string{"Jan, de Boer", "7.5"}, records[1])
}

func TestDocumentEscapesQuotesAndNewlines(t *testing.T) {
	doc := dataset.Document(
		[]string{"name", "feedback"},
		[][]string{{"Fatima", "zei \"goed gedaan\"\nen ging door"}},
	)

	records, err := csv.NewReader(strings.NewReader(doc)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "zei \"goed gedaan\"\nen ging door", records[1][1])
}

func TestDocumentUsesCRLF(t *testing.T) {
	doc := dataset.Document([]string{"a"}, [][]string{{"b"}})
	assert.Equal(t, "a\r\nb\r\n", doc)
}
