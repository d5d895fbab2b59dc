package ui

import (
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// PromptKind identifies which destructive operation needs confirmation.
type PromptKind int

const (
	// PromptEmpty asks before deleting every image inside a vault.
	PromptEmpty PromptKind = iota
	// PromptDelete asks before deleting the vault itself.
	PromptDelete
)

// Prompt is a confirmation the user still has to answer.
type Prompt struct {
	Kind  PromptKind
	Vault vlib.Vault
}

// DeferredConfirmer bridges the service's synchronous confirmation calls
// into the event-driven UI. The first call captures the prompt and answers
// "not accepted"; the UI shows its confirm view, queues the user's
// decision, and re-runs the operation, which then consumes the queued
// decision. The confirmer is only touched from the UI event loop.
type DeferredConfirmer struct {
	queued *vlib.Decision
	prompt *Prompt
}

// NewDeferredConfirmer creates an empty DeferredConfirmer.
func NewDeferredConfirmer() *DeferredConfirmer {
	return &DeferredConfirmer{}
}

// ConfirmEmpty implements vlib.Confirmer.
func (c *DeferredConfirmer) ConfirmEmpty(v *vlib.Vault) vlib.Decision {
	return c.answer(PromptEmpty, v)
}

// ConfirmDelete implements vlib.Confirmer.
func (c *DeferredConfirmer) ConfirmDelete(v *vlib.Vault) vlib.Decision {
	return c.answer(PromptDelete, v)
}

func (c *DeferredConfirmer) answer(kind PromptKind, v *vlib.Vault) vlib.Decision {
	if c.queued != nil {
		d := *c.queued
		c.queued = nil
		return d
	}
	c.prompt = &Prompt{Kind: kind, Vault: *v}
	return vlib.Decision{}
}

// Queue stores the user's decision for the operation about to be re-run.
func (c *DeferredConfirmer) Queue(d vlib.Decision) {
	c.queued = &d
}

// TakePrompt returns the captured prompt, if any, and clears it.
func (c *DeferredConfirmer) TakePrompt() *Prompt {
	p := c.prompt
	c.prompt = nil
	return p
}

var _ vlib.Confirmer = (*DeferredConfirmer)(nil)
