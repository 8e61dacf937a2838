package negotiation

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-virtio/internal/interfaces"
	"github.com/deploymenttheory/go-virtio/internal/types"
)

var (
	// ErrWordOutOfRange reports a select of a word index beyond the bitmap
	// width. This is a caller error, not a device fault.
	ErrWordOutOfRange = errors.New("feature word index out of range")

	// ErrNoSelection reports a value access with no preceding select.
	ErrNoSelection = errors.New("no feature word selected")
)

// featureWindow implements the FeatureWindow interface over an in-memory
// word slice. It mirrors the semantics of the hardware select/value
// register pair: a value access is only defined immediately after a select,
// and concurrent unsynchronized use is a caller bug.
type featureWindow struct {
	words    []uint32
	selected uint32
	valid    bool
}

// NewFeatureWindow creates a FeatureWindow over an ordered word slice, low
// word first. The specification defines feature bitmaps of at least 64
// bits, so fewer than two words is a construction error.
func NewFeatureWindow(words []uint32) (interfaces.FeatureWindow, error) {
	if len(words) < 2 {
		return nil, fmt.Errorf("feature bitmap narrower than 64 bits: %d words", len(words))
	}
	return &featureWindow{words: words}, nil
}

// NewFeatureWindowFor creates a FeatureWindow over the two words of a
// 64-bit feature set.
func NewFeatureWindowFor(f types.Feature) interfaces.FeatureWindow {
	return &featureWindow{words: f.Words()}
}

// Select chooses which 32-bit word of the bitmap the value register exposes
func (fw *featureWindow) Select(wordIndex uint32) error {
	if wordIndex >= uint32(len(fw.words)) {
		fw.valid = false
		return fmt.Errorf("%w: %d (bitmap has %d words)", ErrWordOutOfRange, wordIndex, len(fw.words))
	}
	fw.selected = wordIndex
	fw.valid = true
	return nil
}

// Word reads the currently selected word
func (fw *featureWindow) Word() (uint32, error) {
	if !fw.valid {
		return 0, ErrNoSelection
	}
	return fw.words[fw.selected], nil
}

// SetWord writes the currently selected word
func (fw *featureWindow) SetWord(value uint32) error {
	if !fw.valid {
		return ErrNoSelection
	}
	fw.words[fw.selected] = value
	return nil
}

// Words returns the number of addressable words
func (fw *featureWindow) Words() uint32 {
	return uint32(len(fw.words))
}

// WordForBit computes the (select, mask) pair addressing a single feature
// bit through a 32-bit window: the word index to write to the select
// register and the mask to apply to the value register.
func WordForBit(bit uint32) (wordIndex uint32, mask uint32) {
	return bit / types.FeatureWordSize, 1 << (bit % types.FeatureWordSize)
}

// WordBits is the inverse of WordForBit: the inclusive range of feature
// bit numbers a selected word exposes.
func WordBits(wordIndex uint32) (first, last uint32) {
	first = wordIndex * types.FeatureWordSize
	return first, first + types.FeatureWordSize - 1
}
