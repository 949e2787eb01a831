package ui

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// Badge displays the number of items in the cart
type Badge interface {
	SetCount(n int)
}

// StateBadge keeps the badge text and visibility; it is hidden at zero
type StateBadge struct {
	mu      sync.Mutex
	text    string
	visible bool
}

func (b *StateBadge) SetCount(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = strconv.Itoa(n)
	b.visible = n > 0
}

// State returns the badge text and whether it is shown
func (b *StateBadge) State() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, b.visible
}

// WriterBadge prints the count when it is non-zero
type WriterBadge struct {
	w io.Writer
}

func NewWriterBadge(w io.Writer) *WriterBadge {
	return &WriterBadge{w: w}
}

func (b *WriterBadge) SetCount(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(b.w, "cart: %d\n", n)
}
