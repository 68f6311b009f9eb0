package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	r, err := render.New(render.Config{Width: 320, Height: 200}, zap.NewNop())
	require.NoError(t, err)
	return New(r, zap.NewNop())
}

func dataset(name string, columns ...string) *models.Dataset {
	row := models.Row{}
	for i, c := range columns {
		row[c] = int64(i + 1)
	}
	return &models.Dataset{BookName: name, Columns: columns, Rows: []models.Row{row}}
}

func TestEmptySessionRendersPlaceholder(t *testing.T) {
	s := newTestSession(t)

	_, ok := s.Series()
	assert.False(t, ok)

	surface, err := s.Surface()
	require.NoError(t, err)
	assert.True(t, surface.Placeholder)

	summary := s.Summary()
	assert.Equal(t, 0, summary.Rows)
	assert.Equal(t, "None", summary.XColumn)
}

func TestReplaceResetsSelection(t *testing.T) {
	s := newTestSession(t)
	s.Selection().SetChartKind(models.KindPie)

	s.Replace(dataset("a.xlsx", "A", "B", "C"))
	assert.Equal(t, models.Selection{X: "A", Y: "B", Kind: models.KindBar}, s.Selection().Committed())

	series, ok := s.Series()
	require.True(t, ok)
	assert.Equal(t, []float64{2}, series.Values)

	surface, err := s.Surface()
	require.NoError(t, err)
	assert.False(t, surface.Placeholder)
}

func TestSingleColumnDatasetHasNoSeries(t *testing.T) {
	s := newTestSession(t)
	s.Replace(dataset("one.xlsx", "A"))

	_, ok := s.Series()
	assert.False(t, ok)
}

func TestLastLoadWins(t *testing.T) {
	s := newTestSession(t)

	first := s.BeginLoad()
	second := s.BeginLoad()

	assert.True(t, second.Complete(dataset("second.xlsx", "X", "Y")))
	assert.False(t, first.Complete(dataset("first.xlsx", "A", "B")), "a superseded load must be discarded")

	assert.Equal(t, "second.xlsx", s.Dataset().BookName)
	assert.Equal(t, "X", s.Selection().Committed().X)
}

func TestAbandonedLoadGivesWayToEarlierLoad(t *testing.T) {
	s := newTestSession(t)

	first := s.BeginLoad()
	second := s.BeginLoad()
	second.Abandon()

	assert.True(t, first.Complete(dataset("first.xlsx", "A", "B")), "an abandoned load must not supersede earlier ones")
	assert.Equal(t, "first.xlsx", s.Dataset().BookName)
	assert.False(t, second.Complete(dataset("second.xlsx", "X", "Y")))
}

func TestAbandonKeepsInstalledDataset(t *testing.T) {
	s := newTestSession(t)

	stale := s.BeginLoad()
	current := s.BeginLoad()
	require.True(t, current.Complete(dataset("current.xlsx", "A", "B")))

	failed := s.BeginLoad()
	failed.Abandon()
	failed.Abandon()

	assert.False(t, stale.Complete(dataset("stale.xlsx", "X", "Y")), "a load older than the installed one must stay discarded")
	assert.Equal(t, "current.xlsx", s.Dataset().BookName)

	next := s.BeginLoad()
	assert.True(t, next.Complete(dataset("next.xlsx", "C", "D")))
	assert.Equal(t, "next.xlsx", s.Dataset().BookName)
}

func TestCompleteCopiesDataset(t *testing.T) {
	s := newTestSession(t)
	ds := dataset("a.xlsx", "A", "B")

	require.True(t, s.BeginLoad().Complete(ds))
	ds.Rows[0]["B"] = int64(99)
	ds.Rows = append(ds.Rows, models.Row{"A": int64(5)})
	ds.Columns[0] = "Z"

	got := s.Dataset()
	require.NotSame(t, ds, got)
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, int64(2), got.Rows[0]["B"])
	assert.Equal(t, []string{"A", "B"}, got.Columns)

	series, ok := s.Series()
	require.True(t, ok)
	assert.Equal(t, []float64{2}, series.Values)
}

func TestSeriesUsesEffectiveSelection(t *testing.T) {
	s := newTestSession(t)
	s.Replace(dataset("a.xlsx", "A", "B", "C"))

	s.Selection().PreviewY("C")
	series, ok := s.Series()
	require.True(t, ok)
	assert.Equal(t, "C", series.Name)
	assert.Equal(t, []float64{3}, series.Values)

	s.Selection().ClearPreview()
	series, _ = s.Series()
	assert.Equal(t, "B", series.Name)
}
