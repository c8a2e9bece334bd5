package ui

import (
	"fmt"
	"io"
	"sync"
)

// Prompt is the interactive submit control: the "> " prompt is only shown
// while a new selection can be submitted.
type Prompt struct {
	mu       sync.Mutex
	out      io.Writer
	disabled bool
}

func NewPrompt(out io.Writer) *Prompt {
	return &Prompt{out: out}
}

func (p *Prompt) SetDisabled(disabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disabled = disabled
	if !disabled {
		fmt.Fprint(p.out, "> ")
	}
}

func (p *Prompt) Disabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disabled
}
