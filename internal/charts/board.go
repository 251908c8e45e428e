package charts

import (
	"errors"
	"fmt"

	"github.com/yildizm/textlens/internal/logger"
)

// Slot holds at most one live rendering for a named chart
type Slot struct {
	name   string
	handle Handle
}

// Name returns the chart name this slot renders
func (s *Slot) Name() string {
	return s.name
}

// View returns the current rendering, or "" when the slot is empty
func (s *Slot) View() string {
	if s.handle == nil {
		return ""
	}
	return s.handle.View()
}

// Path returns the file behind the current rendering, or "" when the
// rendering is not file-backed
func (s *Slot) Path() string {
	if fh, ok := s.handle.(interface{ Path() string }); ok {
		return fh.Path()
	}
	return ""
}

// Replace disposes the current handle and then renders split in its place.
// An empty split leaves the slot empty.
func (s *Slot) Replace(r Renderer, split Split) error {
	if err := s.Clear(); err != nil {
		return err
	}
	if split.Empty() {
		return nil
	}
	handle, err := r.Render(split)
	if err != nil {
		return err
	}
	s.handle = handle
	return nil
}

// Clear disposes the current handle, if any
func (s *Slot) Clear() error {
	if s.handle == nil {
		return nil
	}
	h := s.handle
	s.handle = nil
	if err := h.Dispose(); err != nil {
		return fmt.Errorf("failed to dispose chart %s: %w", s.name, err)
	}
	return nil
}

// Board owns the slots of the three dashboard charts for one renderer
type Board struct {
	renderer Renderer
	slots    []*Slot
	log      *logger.Logger
}

// NewBoard creates a board with one empty slot per chart
func NewBoard(renderer Renderer, log *logger.Logger) *Board {
	if log == nil {
		log = logger.Discard()
	}
	return &Board{
		renderer: renderer,
		slots: []*Slot{
			{name: NameCharacters},
			{name: NameWords},
			{name: NameWater},
		},
		log: log,
	}
}

// Show replaces every chart with a rendering of p. Each slot is disposed
// before its new rendering is created.
func (b *Board) Show(p Projection) error {
	var errs []error
	for i, split := range p.Splits() {
		slot := b.slots[i]
		if err := slot.Replace(b.renderer, split); err != nil {
			b.log.WarnWithFields("chart render failed", []logger.Field{logger.F("chart", slot.name), logger.Error(err)})
			errs = append(errs, err)
			continue
		}
		b.log.DebugWithFields("chart rendered", []logger.Field{logger.F("chart", slot.name), logger.F("empty", split.Empty())})
	}
	return errors.Join(errs...)
}

// Slots returns the slots in display order
func (b *Board) Slots() []*Slot {
	return b.slots
}

// Views returns the non-empty renderings in display order
func (b *Board) Views() []string {
	views := make([]string, 0, len(b.slots))
	for _, slot := range b.slots {
		if v := slot.View(); v != "" {
			views = append(views, v)
		}
	}
	return views
}

// Close disposes every rendering
func (b *Board) Close() error {
	var errs []error
	for _, slot := range b.slots {
		if err := slot.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
