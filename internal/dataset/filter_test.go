package dataset_test

import (
	"testing"
	"time"

	"schoolscan_backend/internal/dataset"

	"github.com/stretchr/testify/assert"
)

type row struct {
	name     string
	status   string
	category string
	date     time.Time
}

func (r row) SearchText() string     { return r.name }
func (r row) FilterStatus() string   { return r.status }
func (r row) FilterCategory() string { return r.category }
func (r row) FilterDate() time.Time  { return r.date }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func sample() []row {
	return []row{
		{name: "Ontwerp presentatie", status: "active", category: "design", date: day("2026-03-02")},
		{name: "Peer review sprint 1", status: "completed", category: "review", date: day("2026-03-10")},
		{name: "Klantgesprek opdrachtgever", status: "active", category: "review", date: day("2026-03-15")},
		{name: "Eindpresentatie", status: "draft", category: "design", date: day("2026-04-01")},
	}
}

func TestApplyEmptyFilterReturnsAll(t *testing.T) {
	items := sample()
	got := dataset.Apply(items, dataset.Filter{})
	assert.Equal(t, items, got)
}

func TestApplyIsSubsetAndOrderPreserving(t *testing.T) {
	items := sample()
	got := dataset.Apply(items, dataset.Filter{Status: "active"})
	assert.Len(t, got, 2)
	assert.Equal(t, "Ontwerp presentatie", got[0].name)
	assert.Equal(t, "Klantgesprek opdrachtgever", got[1].name)
}

func TestApplyTextIsCaseInsensitiveSubstring(t *testing.T) {
	got := dataset.Apply(sample(), dataset.Filter{Text: "PRESENTATIE"})
	assert.Len(t, got, 2)
}

func TestApplyConjunctiveComposition(t *testing.T) {
	items := sample()
	f1 := dataset.Filter{Category: "review"}
	f2 := dataset.Filter{Status: "active"}
	combined := dataset.Filter{Category: "review", Status: "active"}

	chained := dataset.Apply(dataset.Apply(items, f1), f2)
	direct := dataset.Apply(items, combined)
	assert.Equal(t, direct, chained)
	assert.Len(t, direct, 1)
}

func TestApplyDateBoundsInclusive(t *testing.T) {
	cases := []struct {
		name   string
		filter dataset.Filter
		want   int
	}{
		{"from inclusive", dataset.Filter{DateFrom: "2026-03-10"}, 3},
		{"to inclusive", dataset.Filter{DateTo: "2026-03-10"}, 2},
		{"range", dataset.Filter{DateFrom: "2026-03-03", DateTo: "2026-03-31"}, 2},
		{"malformed from matches nothing", dataset.Filter{DateFrom: "10-03-2026"}, 0},
		{"malformed to matches nothing", dataset.Filter{DateTo: "gisteren"}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, dataset.Apply(sample(), tc.filter), tc.want)
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	f := dataset.Filter{Category: "design", Text: "presentatie"}
	once := dataset.Apply(sample(), f)
	twice := dataset.Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := sample()
	dataset.Apply(items, dataset.Filter{Status: "draft"})
	assert.Equal(t, sample(), items)
}
