package ui

import (
	"fmt"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/thumbs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// vaultItem adapts a vault for the bubbles list.
type vaultItem struct {
	vault vlib.Vault
}

func (i vaultItem) Title() string { return i.vault.Name }

func (i vaultItem) Description() string {
	noun := "images"
	if i.vault.ImageCount == 1 {
		noun = "image"
	}
	return fmt.Sprintf("%d %s · created %s", i.vault.ImageCount, noun, i.vault.CreatedAt.Format("02 Jan 2006"))
}

func (i vaultItem) FilterValue() string { return i.vault.Name }

// assetItem adapts an asset for the bubbles list. desc starts empty and is
// filled in once the thumbnail decode reports the media details.
type assetItem struct {
	asset vlib.Asset
	desc  string
}

func (i assetItem) Title() string { return i.asset.Filename }

func (i assetItem) Description() string {
	if i.desc == "" {
		return "loading preview..."
	}
	return i.desc
}

func (i assetItem) FilterValue() string { return i.asset.Filename }

// describeThumb renders the decoded preview as a one-line description.
func describeThumb(t *thumbs.Thumbnail) string {
	switch t.Kind {
	case thumbs.KindStatic:
		b := t.Image.Bounds()
		return fmt.Sprintf("image · preview %dx%d", b.Dx(), b.Dy())
	case thumbs.KindAnimated:
		return fmt.Sprintf("animated · %d frames", len(t.Animation.Image))
	case thumbs.KindVideo:
		return "video"
	default:
		return "no preview"
	}
}
