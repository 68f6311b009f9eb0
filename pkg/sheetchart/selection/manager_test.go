package selection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

func TestNewManager(t *testing.T) {
	m := NewManager()
	assert.Equal(t, models.Selection{Kind: models.KindBar}, m.Committed())
	assert.True(t, m.Preview().IsZero())
}

func TestReset(t *testing.T) {
	t.Run("two or more columns", func(t *testing.T) {
		m := NewManager()
		m.SetChartKind(models.KindPie)
		m.PreviewX("C")
		m.Reset([]string{"A", "B", "C"})

		assert.Equal(t, models.Selection{X: "A", Y: "B", Kind: models.KindBar}, m.Committed())
		assert.True(t, m.Preview().IsZero(), "reset should drop the preview")
	})

	t.Run("fewer than two columns", func(t *testing.T) {
		m := NewManager()
		m.Reset([]string{"A"})
		assert.Equal(t, models.Selection{Kind: models.KindBar}, m.Committed())

		m.Reset(nil)
		assert.Equal(t, models.Selection{Kind: models.KindBar}, m.Committed())
	})
}

func TestPreviewShadowsSingleField(t *testing.T) {
	fields := []struct {
		name    string
		preview func(*Manager)
		want    models.Selection
	}{
		{"x", func(m *Manager) { m.PreviewX("C") }, models.Selection{X: "C", Y: "B", Kind: models.KindBar}},
		{"y", func(m *Manager) { m.PreviewY("C") }, models.Selection{X: "A", Y: "C", Kind: models.KindBar}},
		{"kind", func(m *Manager) { m.PreviewChartKind(models.KindRadar) }, models.Selection{X: "A", Y: "B", Kind: models.KindRadar}},
	}

	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			m := NewManager()
			m.Reset([]string{"A", "B", "C"})
			committed := m.Committed()

			f.preview(m)
			assert.Equal(t, f.want, m.EffectiveSelection())
			assert.Equal(t, committed, m.Committed(), "preview must not touch the committed selection")

			m.ClearPreview()
			assert.Equal(t, committed, m.EffectiveSelection())
		})
	}
}

func TestHoverScenario(t *testing.T) {
	m := NewManager()
	m.SetXColumn("A")
	m.SetYColumn("B")

	m.PreviewX("C")
	assert.Equal(t, "C", m.EffectiveSelection().X)

	m.ClearPreview()
	assert.Equal(t, "A", m.EffectiveSelection().X)
}

func TestEmptyPreviewFallsBack(t *testing.T) {
	m := NewManager()
	m.Reset([]string{"A", "B"})
	m.PreviewX("")
	m.PreviewChartKind("")

	assert.Equal(t, m.Committed(), m.EffectiveSelection())
}

func TestClearPreviewIdempotent(t *testing.T) {
	m := NewManager()
	m.Reset([]string{"A", "B"})

	m.ClearPreview()
	m.ClearPreview()
	assert.Equal(t, m.Committed(), m.EffectiveSelection())
	assert.True(t, m.Preview().IsZero())
}

func TestSetters(t *testing.T) {
	m := NewManager()
	m.SetXColumn("not-a-column")
	m.SetYColumn("Y")
	m.SetChartKind(models.KindHistogram)

	assert.Equal(t, models.Selection{X: "not-a-column", Y: "Y", Kind: models.KindHistogram}, m.Committed())
}

func TestSnapshotConsistent(t *testing.T) {
	m := NewManager()
	m.Reset([]string{"A", "B"})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.PreviewX("C")
			m.PreviewY("D")
			m.ClearPreview()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := m.Snapshot()
			assert.Equal(t, snap.Preview.Apply(snap.Committed), snap.Effective)
		}
	}()
	wg.Wait()
}
