package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/runcmd/pkg/domain"
)

// Output is a scratch document created by a command.
type Output struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Document implements ports.Document in memory.
// Safe for concurrent use.
type Document struct {
	mu         sync.RWMutex
	text       []byte
	selections []domain.Region
	outputs    []Output
}

// NewDocument creates a document holding text with the given selections.
// Selections are kept in document order.
func NewDocument(text string, selections ...domain.Region) *Document {
	sel := make([]domain.Region, len(selections))
	copy(sel, selections)
	sort.SliceStable(sel, func(i, j int) bool { return sel[i].Start < sel[j].Start })
	return &Document{
		text:       []byte(text),
		selections: sel,
	}
}

// Size returns the length of the document in bytes.
func (d *Document) Size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text)
}

// Selections returns a copy of the selected regions.
func (d *Document) Selections() []domain.Region {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.selections) == 0 {
		return nil
	}
	out := make([]domain.Region, len(d.selections))
	copy(out, d.selections)
	return out
}

// Slice returns a copy of the bytes covered by r.
func (d *Document) Slice(r domain.Region) []byte {
	if r.Null {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.inBounds(r) {
		return nil
	}
	out := make([]byte, r.Len())
	copy(out, d.text[r.Start:r.End])
	return out
}

// Replace swaps the content of r for text.
func (d *Document) Replace(r domain.Region, text string) error {
	if r.Null {
		return fmt.Errorf("cannot replace the null region")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.inBounds(r) {
		return fmt.Errorf("region [%d,%d) out of bounds (size %d)", r.Start, r.End, len(d.text))
	}

	next := make([]byte, 0, len(d.text)-r.Len()+len(text))
	next = append(next, d.text[:r.Start]...)
	next = append(next, text...)
	next = append(next, d.text[r.End:]...)
	d.text = next
	return nil
}

// NewDocument records a new output document.
func (d *Document) NewDocument(name, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.outputs = append(d.outputs, Output{Name: name, Text: text})
	return nil
}

// Text returns the current content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.text)
}

// Outputs returns the documents created so far.
func (d *Document) Outputs() []Output {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Output, len(d.outputs))
	copy(out, d.outputs)
	return out
}

func (d *Document) inBounds(r domain.Region) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End <= len(d.text)
}
