package news

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  Importance
	}{
		{"Fed signals a pause on interest rate hikes", ImportanceHigh},
		{"New tariff round hits semiconductor exports", ImportanceHigh},
		{"Won weakens as exchange rate tops 1,450", ImportanceHigh},
		{"Quarterly earnings beat expectations", ImportanceMedium},
		{"Company announces new product line", ImportanceMedium},
		{"Celebrity launches lifestyle brand", ImportanceLow},
		{"", ImportanceLow},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, Classify(tt.title), tt.want)
		})
	}
}

func TestImportance_String(t *testing.T) {
	assert.Equal(t, ImportanceHigh.String(), "high")
	assert.Equal(t, ImportanceMedium.String(), "medium")
	assert.Equal(t, ImportanceLow.String(), "low")
}

func TestSortByImportance(t *testing.T) {
	items := []Item{
		{Title: "low one", Importance: ImportanceLow},
		{Title: "high one", Importance: ImportanceHigh},
		{Title: "medium one", Importance: ImportanceMedium},
		{Title: "high two", Importance: ImportanceHigh},
	}

	SortByImportance(items)

	assert.Equal(t, items[0].Title, "high one")
	assert.Equal(t, items[1].Title, "high two")
	assert.Equal(t, items[2].Title, "medium one")
	assert.Equal(t, items[3].Title, "low one")
}

func TestTopN(t *testing.T) {
	items := []Item{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	assert.Equal(t, len(TopN(items, 2)), 2)
	assert.Equal(t, len(TopN(items, 3)), 3)
	assert.Equal(t, len(TopN(items, 10)), 3)
	assert.Equal(t, len(TopN(nil, 5)), 0)
	assert.Equal(t, TopN(items, 2)[0].Title, "a")
}
