package ui

import (
	"testing"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

func TestDeferredConfirmer(t *testing.T) {
	vault := &vlib.Vault{ID: "v1", Name: "Moodboard", ImageCount: 3}

	t.Run("first call captures the prompt and declines", func(t *testing.T) {
		c := NewDeferredConfirmer()

		d := c.ConfirmDelete(vault)
		if d.Accepted {
			t.Error("unanswered prompt must not be accepted")
		}

		p := c.TakePrompt()
		if p == nil {
			t.Fatal("TakePrompt() = nil")
		}
		if p.Kind != PromptDelete {
			t.Errorf("Kind = %v, want PromptDelete", p.Kind)
		}
		if p.Vault.Name != "Moodboard" {
			t.Errorf("Vault.Name = %q", p.Vault.Name)
		}
		if c.TakePrompt() != nil {
			t.Error("TakePrompt() must clear the prompt")
		}
	})

	t.Run("queued decision answers the re-run", func(t *testing.T) {
		c := NewDeferredConfirmer()
		c.ConfirmEmpty(vault)
		c.TakePrompt()

		c.Queue(vlib.Decision{Accepted: true, DontAskAgain: true})
		d := c.ConfirmEmpty(vault)
		if !d.Accepted || !d.DontAskAgain {
			t.Errorf("decision = %+v, want accepted with dont-ask-again", d)
		}
		if c.TakePrompt() != nil {
			t.Error("answered call must not capture a new prompt")
		}

		// The queue is one-shot.
		d = c.ConfirmEmpty(vault)
		if d.Accepted {
			t.Error("stale decision reused")
		}
	})
}
