package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	seen := time.Now().UTC()
	return []Item{
		{ID: "i1", CitizenID: "c1", Category: CategoryPrayer, Relevance: 0.6},
		{ID: "i2", CitizenID: "c2", Category: CategoryCrisisCall, Relevance: 0.5},
		{ID: "i3", CitizenID: "c1", Category: CategoryPraise, Relevance: 0.9, SeenAt: &seen},
		{ID: "i4", CitizenID: "c3", Category: CategoryDoubt, Relevance: 0.7},
		{ID: "i5", CitizenID: "c2", Category: CategoryPrayer, Relevance: 0.8},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilterApplyOrdersByRelevance(t *testing.T) {
	out := Filter{}.Apply(sampleItems())
	assert.Equal(t, []string{"i3", "i5", "i4", "i1", "i2"}, ids(out))
}

func TestFilterApplyConstraints(t *testing.T) {
	items := sampleItems()

	assert.Equal(t, []string{"i5", "i1"}, ids(Filter{Category: CategoryPrayer}.Apply(items)))
	assert.Equal(t, []string{"i3", "i1"}, ids(Filter{CitizenID: "c1"}.Apply(items)))
	assert.Equal(t, []string{"i5", "i4", "i1", "i2"}, ids(Filter{UnreadOnly: true}.Apply(items)))
	assert.Equal(t, []string{"i3", "i5", "i4"}, ids(Filter{MinRelevance: 0.7}.Apply(items)))
	assert.Equal(t, []string{"i3", "i5"}, ids(Filter{Limit: 2}.Apply(items)))
}

func TestFilterApplyDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	_ = Filter{}.Apply(items)
	assert.Equal(t, "i1", items[0].ID)
}

func TestPriorityItemsCrisisFirst(t *testing.T) {
	out := PriorityItems(sampleItems(), 0)
	require.Len(t, out, 5)
	assert.Equal(t, "i2", out[0].ID, "crisis outranks higher relevance")
	assert.Equal(t, []string{"i2", "i3", "i5", "i4", "i1"}, ids(out))
}

func TestPriorityItemsLimit(t *testing.T) {
	out := PriorityItems(sampleItems(), 2)
	assert.Equal(t, []string{"i2", "i3"}, ids(out))
}

func TestCalculateSummary(t *testing.T) {
	s := CalculateSummary(sampleItems())
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Unread)
	assert.Equal(t, 2, s.ByCategory[CategoryPrayer])
	assert.Equal(t, 1, s.ByCategory[CategoryCrisisCall])
	assert.InDelta(t, 0.7, s.AvgRelevance, 1e-9)
}

func TestCalculateSummaryEmpty(t *testing.T) {
	s := CalculateSummary(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AvgRelevance)
	assert.NotNil(t, s.ByCategory)
}
