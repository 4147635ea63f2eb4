package selection

import (
	"sync"

	"github.com/storelocator/storelocator/internal/catalog"
)

// MapController is the boundary to the live map surface. The selection
// machinery pushes marker styling and route geometry into it; it never reads
// back.
type MapController interface {
	// SetMarkerSelected restyles the marker for the given catalog index.
	SetMarkerSelected(index int, selected bool)

	// DrawRoute replaces the currently drawn route preview with the given
	// precision-6 encoded polyline.
	DrawRoute(geometry string)

	// ClearRoute removes the drawn route preview.
	ClearRoute()

	// MoveCamera centers the viewport on the given coordinate.
	MoveCamera(c catalog.Coordinate)
}

// CardListController is the boundary to the scrollable card list.
type CardListController interface {
	// ScrollTo brings the card at the given index into view.
	ScrollTo(index int)

	// SetDistance updates the distance label on the card at the given index
	// and re-renders it.
	SetDistance(index int, label string)

	// Notify surfaces a transient user-visible message.
	Notify(message string)
}

// RecordingMap is a MapController that records the pushed state. It backs
// session snapshots and tests.
type RecordingMap struct {
	mu       sync.Mutex
	selected map[int]bool
	route    string
	camera   *catalog.Coordinate
}

// NewRecordingMap creates an empty RecordingMap.
func NewRecordingMap() *RecordingMap {
	return &RecordingMap{selected: make(map[int]bool)}
}

func (m *RecordingMap) SetMarkerSelected(index int, selected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if selected {
		m.selected[index] = true
	} else {
		delete(m.selected, index)
	}
}

func (m *RecordingMap) DrawRoute(geometry string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = geometry
}

func (m *RecordingMap) ClearRoute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.route = ""
}

func (m *RecordingMap) MoveCamera(c catalog.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.camera = &c
}

// MarkerSelected reports whether the marker at index is styled selected.
func (m *RecordingMap) MarkerSelected(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected[index]
}

// SelectedCount returns the number of markers styled selected.
func (m *RecordingMap) SelectedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selected)
}

// Route returns the currently drawn route geometry, empty when none.
func (m *RecordingMap) Route() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.route
}

// Camera returns the last camera target, or nil when the camera never moved.
func (m *RecordingMap) Camera() *catalog.Coordinate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.camera == nil {
		return nil
	}
	c := *m.camera
	return &c
}

// RecordingCardList is a CardListController that records the pushed state.
type RecordingCardList struct {
	mu        sync.Mutex
	scrollPos int
	scrolled  bool
	distances map[int]string
	notices   []string
}

// NewRecordingCardList creates an empty RecordingCardList.
func NewRecordingCardList() *RecordingCardList {
	return &RecordingCardList{
		scrollPos: -1,
		distances: make(map[int]string),
	}
}

func (c *RecordingCardList) ScrollTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollPos = index
	c.scrolled = true
}

func (c *RecordingCardList) SetDistance(index int, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distances[index] = label
}

func (c *RecordingCardList) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, message)
}

// ScrollPosition returns the last requested scroll index and whether a
// scroll was ever requested.
func (c *RecordingCardList) ScrollPosition() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollPos, c.scrolled
}

// Distance returns the recorded distance label for an index.
func (c *RecordingCardList) Distance(index int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distances[index]
}

// Notices returns all recorded transient messages.
func (c *RecordingCardList) Notices() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.notices))
	copy(out, c.notices)
	return out
}
