// Package selection tracks the user's committed chart selection and the
// transient preview values produced by hovering over the controls.
package selection

import (
	"sync"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// DefaultKind is the chart kind selected after a dataset loads.
const DefaultKind = models.KindBar

// Snapshot is a consistent view of the manager's state.
type Snapshot struct {
	Committed models.Selection `json:"committed" yaml:"committed"`
	Preview   models.Overlay   `json:"preview" yaml:"preview"`
	Effective models.Selection `json:"effective" yaml:"effective"`
}

// Manager owns the committed selection and the preview overlay.
// Column names are not validated; unknown names project to empty series.
type Manager struct {
	mu        sync.RWMutex
	committed models.Selection
	preview   models.Overlay
}

// NewManager returns a manager with no columns selected and the default kind.
func NewManager() *Manager {
	return &Manager{committed: models.Selection{Kind: DefaultKind}}
}

// Reset applies the initial selection for a freshly loaded column set:
// the first two columns become X and Y when there are at least two.
func (m *Manager) Reset(columns []string) {
	sel := models.Selection{Kind: DefaultKind}
	if len(columns) >= 2 {
		sel.X = columns[0]
		sel.Y = columns[1]
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = sel
	m.preview = models.Overlay{}
}

func (m *Manager) SetXColumn(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed.X = name
}

func (m *Manager) SetYColumn(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed.Y = name
}

func (m *Manager) SetChartKind(kind models.ChartKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed.Kind = kind
}

// PreviewX shadows the X column until ClearPreview. An empty name unsets it.
func (m *Manager) PreviewX(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preview.X = name
}

// PreviewY shadows the Y column until ClearPreview. An empty name unsets it.
func (m *Manager) PreviewY(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preview.Y = name
}

// PreviewChartKind shadows the chart kind until ClearPreview.
func (m *Manager) PreviewChartKind(kind models.ChartKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preview.Kind = kind
}

// ClearPreview unsets all three preview fields at once.
func (m *Manager) ClearPreview() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preview = models.Overlay{}
}

// Committed returns the committed selection.
func (m *Manager) Committed() models.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.committed
}

// Preview returns the current overlay.
func (m *Manager) Preview() models.Overlay {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.preview
}

// EffectiveSelection resolves the overlay against the committed selection.
func (m *Manager) EffectiveSelection() models.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.preview.Apply(m.committed)
}

// Snapshot returns committed, preview and effective values read together.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Committed: m.committed,
		Preview:   m.preview,
		Effective: m.preview.Apply(m.committed),
	}
}
