package testutil

import (
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// StubConfirmer answers every confirmation with a fixed decision and
// counts how often it was consulted.
type StubConfirmer struct {
	Decision    vlib.Decision
	EmptyCalls  int
	DeleteCalls int
}

// AcceptAll returns a StubConfirmer that accepts every prompt.
func AcceptAll() *StubConfirmer {
	return &StubConfirmer{Decision: vlib.Decision{Accepted: true}}
}

// DeclineAll returns a StubConfirmer that declines every prompt.
func DeclineAll() *StubConfirmer {
	return &StubConfirmer{}
}

func (c *StubConfirmer) ConfirmEmpty(v *vlib.Vault) vlib.Decision {
	c.EmptyCalls++
	return c.Decision
}

func (c *StubConfirmer) ConfirmDelete(v *vlib.Vault) vlib.Decision {
	c.DeleteCalls++
	return c.Decision
}

var _ vlib.Confirmer = (*StubConfirmer)(nil)
