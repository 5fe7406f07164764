package artwork

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

// Slot names one of the two artwork positions.
type Slot int

const (
	SlotPortrait Slot = iota
	SlotLandscape
)

func (s Slot) String() string {
	if s == SlotLandscape {
		return "landscape"
	}
	return "portrait"
}

// ParseSlot accepts "portrait" or "landscape".
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "portrait":
		return SlotPortrait, nil
	case "landscape":
		return SlotLandscape, nil
	default:
		return 0, fmt.Errorf("unknown artwork slot %q", s)
	}
}

// SlotFor returns the slot shown for a size of orientation o.
func SlotFor(o sizing.Orientation) Slot {
	if o == sizing.Landscape {
		return SlotLandscape
	}
	return SlotPortrait
}

// Asset is one uploaded artwork. It is replaced wholesale, never mutated.
type Asset struct {
	ID     uuid.UUID
	Slot   Slot
	Image  image.Image
	Source string
	Bytes  int64
}

// Filled reports whether the asset carries an image.
func (a Asset) Filled() bool { return a.Image != nil }

// Store holds the two slots.
type Store struct {
	mu    sync.RWMutex
	slots [2]Asset
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Set replaces the asset in a.Slot.
func (s *Store) Set(a Asset) {
	if a.Slot != SlotPortrait && a.Slot != SlotLandscape {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[a.Slot] = a
}

// Get returns the asset in slot and whether it is filled.
func (s *Store) Get(slot Slot) (Asset, bool) {
	if slot != SlotPortrait && slot != SlotLandscape {
		return Asset{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.slots[slot]
	return a, a.Filled()
}

// Complete reports whether both slots are filled.
func (s *Store) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[SlotPortrait].Filled() && s.slots[SlotLandscape].Filled()
}

// Clear empties both slots.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = [2]Asset{}
}
