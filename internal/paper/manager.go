package paper

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"InkBoard/internal/store"
)

const (
	// HistoryCapacity bounds the undo stack. Once full the effective undo
	// depth is HistoryCapacity-1, see history.push.
	HistoryCapacity = 50

	// SaveDelay is the autosave debounce window. Bursts of mutations within
	// the window coalesce into a single store write.
	SaveDelay = 500 * time.Millisecond

	keyPrefix = "paper_"
)

var ErrNotFound = errors.New("paper not found")

func storeKey(id string) string { return keyPrefix + id }

// Scheduler runs a function once after a delay. The returned cancel func
// stops the run if it has not fired yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Manager owns the live paper and its undo history. All mutating operations
// stamp UpdatedAt, push a history snapshot (grid changes excepted), fire
// OnChange and schedule a debounced autosave into the injected store.
type Manager struct {
	mu         sync.Mutex
	paper      *Paper
	hist       *history
	store      store.Store
	now        func() time.Time
	sched      Scheduler
	saveDelay  time.Duration
	cancelSave func()

	// OnChange is called after every committed change to the live paper.
	// Set it once during wiring, before the first mutation.
	OnChange func()
}

func NewManager(st store.Store) *Manager {
	m := &Manager{
		store:     st,
		now:       func() time.Time { return time.Now().Round(0) },
		sched:     timerScheduler{},
		saveDelay: SaveDelay,
	}
	m.paper = newPaper("Untitled", m.now())
	m.hist = newHistory(HistoryCapacity, m.paper.Elements)
	return m
}

func (m *Manager) notify() {
	if m.OnChange != nil {
		m.OnChange()
	}
}

// commitLocked finalizes a mutation of the element list.
func (m *Manager) commitLocked() {
	m.paper.UpdatedAt = m.now()
	m.hist.push(m.paper.Elements)
	m.scheduleSaveLocked()
}

func (m *Manager) scheduleSaveLocked() {
	if m.cancelSave != nil {
		m.cancelSave()
	}
	m.cancelSave = m.sched.Schedule(m.saveDelay, m.autosave)
}

func (m *Manager) autosave() {
	m.mu.Lock()
	m.cancelSave = nil
	key := storeKey(m.paper.ID)
	data, err := json.Marshal(m.paper)
	m.mu.Unlock()
	if err != nil {
		log.Printf("paper: autosave marshal: %v", err)
		return
	}
	if err := m.store.Set(key, string(data)); err != nil {
		log.Printf("paper: autosave write: %v", err)
	}
}

// FlushSave runs a pending debounced save immediately, if any.
func (m *Manager) FlushSave() {
	m.mu.Lock()
	pending := m.cancelSave != nil
	if pending {
		m.cancelSave()
		m.cancelSave = nil
	}
	m.mu.Unlock()
	if pending {
		m.autosave()
	}
}

// AddElement appends e to the paper. The manager stores its own copy.
func (m *Manager) AddElement(e Element) {
	m.mu.Lock()
	m.paper.Elements = append(m.paper.Elements, e.Clone())
	m.commitLocked()
	m.mu.Unlock()
	m.notify()
}

// RemoveElement removes the element with the given id. It reports whether
// anything was removed; a miss leaves history untouched.
func (m *Manager) RemoveElement(id string) bool {
	m.mu.Lock()
	removed := false
	kept := m.paper.Elements[:0]
	for _, el := range m.paper.Elements {
		if !removed && el.ElementID() == id {
			removed = true
			continue
		}
		kept = append(kept, el)
	}
	if removed {
		m.paper.Elements = kept
		m.commitLocked()
	}
	m.mu.Unlock()
	if removed {
		m.notify()
	}
	return removed
}

func (m *Manager) ClearElements() {
	m.mu.Lock()
	m.paper.Elements = []Element{}
	m.commitLocked()
	m.mu.Unlock()
	m.notify()
}

// EraseInRect applies the erase area to every element: strokes are split
// into runs of points outside r, rectangles and texts are removed only when
// fully contained. A no-op erase leaves history untouched. Reports whether
// anything changed.
func (m *Manager) EraseInRect(r Rect) bool {
	m.mu.Lock()
	changed := false
	out := make([]Element, 0, len(m.paper.Elements))
	for _, el := range m.paper.Elements {
		switch e := el.(type) {
		case *Stroke:
			runs := splitOutside(e.Points, r)
			if len(runs) == 1 && len(runs[0]) == len(e.Points) {
				out = append(out, e) // untouched, keep identity
				continue
			}
			changed = true
			for _, run := range runs {
				if len(run) < 2 {
					continue
				}
				out = append(out, &Stroke{
					ID:     uuid.NewString(),
					Points: run,
					Color:  e.Color,
					Width:  e.Width,
				})
			}
		default:
			if r.ContainsRect(el.Bounds()) {
				changed = true
				continue
			}
			out = append(out, el)
		}
	}
	if changed {
		m.paper.Elements = out
		m.commitLocked()
	}
	m.mu.Unlock()
	if changed {
		m.notify()
	}
	return changed
}

// splitOutside cuts points into maximal contiguous runs that fall outside r.
// Edge contact counts as inside r, so edge points are erased.
func splitOutside(points []Point, r Rect) [][]Point {
	var runs [][]Point
	var run []Point
	for _, p := range points {
		if r.ContainsPoint(p) {
			if len(run) > 0 {
				runs = append(runs, run)
				run = nil
			}
			continue
		}
		run = append(run, p)
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// SetGrid merges the patch into the grid settings. Grid changes are saved
// and notified but never enter undo history.
func (m *Manager) SetGrid(p GridPatch) {
	m.mu.Lock()
	m.paper.Grid.apply(p)
	m.paper.UpdatedAt = m.now()
	m.scheduleSaveLocked()
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) Undo() bool {
	m.mu.Lock()
	els, ok := m.hist.undo()
	if ok {
		m.paper.Elements = els
		m.paper.UpdatedAt = m.now()
	}
	m.mu.Unlock()
	if ok {
		m.notify()
	}
	return ok
}

func (m *Manager) Redo() bool {
	m.mu.Lock()
	els, ok := m.hist.redo()
	if ok {
		m.paper.Elements = els
		m.paper.UpdatedAt = m.now()
	}
	m.mu.Unlock()
	if ok {
		m.notify()
	}
	return ok
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hist.canUndo()
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hist.canRedo()
}

// Save writes the live paper to the store right away and returns the
// serialized form. Any pending debounced save is superseded.
func (m *Manager) Save() (string, error) {
	m.mu.Lock()
	if m.cancelSave != nil {
		m.cancelSave()
		m.cancelSave = nil
	}
	key := storeKey(m.paper.ID)
	data, err := json.Marshal(m.paper)
	m.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("serialize paper: %w", err)
	}
	if err := m.store.Set(key, string(data)); err != nil {
		return "", fmt.Errorf("write paper: %w", err)
	}
	return string(data), nil
}

// Load replaces the live paper with the stored one. On failure the live
// paper is left untouched.
func (m *Manager) Load(id string) error {
	data, ok := m.store.Get(storeKey(id))
	if !ok {
		return fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	var p Paper
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}
	m.replacePaper(&p)
	return nil
}

// ExportJSON serializes the live paper as indented, human-readable JSON.
func (m *Manager) ExportJSON() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.MarshalIndent(m.paper, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportJSON parses text and replaces the live paper. A parse failure leaves
// the live paper untouched.
func (m *Manager) ImportJSON(text string) error {
	var p Paper
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return fmt.Errorf("import paper: %w", err)
	}
	m.replacePaper(&p)
	return nil
}

// NewPaper replaces the live paper with a fresh empty one.
func (m *Manager) NewPaper(name string) {
	m.replacePaper(newPaper(name, m.now()))
}

// replacePaper supersedes the live paper and resets history to a single
// snapshot of the new element list. A pending autosave of the old paper is
// dropped with it.
func (m *Manager) replacePaper(p *Paper) {
	m.mu.Lock()
	if m.cancelSave != nil {
		m.cancelSave()
		m.cancelSave = nil
	}
	m.paper = p
	m.hist.reset(p.Elements)
	m.mu.Unlock()
	m.notify()
}

// Summary describes one stored paper for listing purposes.
type Summary struct {
	ID           string
	Name         string
	ElementCount int
	UpdatedAt    time.Time
}

// ListSaved scans the store for papers, most recently updated first.
// Entries that fail to parse are skipped.
func (m *Manager) ListSaved() []Summary {
	var out []Summary
	for _, key := range m.store.Keys() {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		data, ok := m.store.Get(key)
		if !ok {
			continue
		}
		var p Paper
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			log.Printf("paper: skipping unreadable entry %s: %v", key, err)
			continue
		}
		out = append(out, Summary{
			ID:           p.ID,
			Name:         p.Name,
			ElementCount: len(p.Elements),
			UpdatedAt:    p.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// DeletePaper removes a stored paper. The live paper is unaffected even if
// it has the same id.
func (m *Manager) DeletePaper(id string) error {
	return m.store.Delete(storeKey(id))
}

// RenamePaper renames a stored paper in place. Renaming the live paper also
// updates its in-memory name.
func (m *Manager) RenamePaper(id, newName string) error {
	data, ok := m.store.Get(storeKey(id))
	if !ok {
		return fmt.Errorf("rename %s: %w", id, ErrNotFound)
	}
	var p Paper
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return fmt.Errorf("rename %s: %w", id, err)
	}
	p.Name = newName
	p.UpdatedAt = m.now()
	out, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("rename %s: %w", id, err)
	}
	if err := m.store.Set(storeKey(id), string(out)); err != nil {
		return fmt.Errorf("rename %s: %w", id, err)
	}

	m.mu.Lock()
	live := m.paper.ID == id
	if live {
		m.paper.Name = newName
		m.paper.UpdatedAt = p.UpdatedAt
	}
	m.mu.Unlock()
	if live {
		m.notify()
	}
	return nil
}

// Elements returns a deep copy of the element list in paint order.
func (m *Manager) Elements() []Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneElements(m.paper.Elements)
}

// Snapshot returns a deep copy of the live paper.
func (m *Manager) Snapshot() *Paper {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paper.Clone()
}

func (m *Manager) Grid() GridSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paper.Grid
}

func (m *Manager) PaperID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paper.ID
}

func (m *Manager) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paper.Name
}
