package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

func (m Model) View() string {
	switch m.state {
	case stateAssets:
		return m.viewList(
			m.assetHeader(),
			"enter/arrows: browse | x: delete | u/U: undo | i: import | d: download | e: empty | n: new vault | tab: vaults | q: quit",
		)
	case stateVaults:
		return m.viewList(
			headerStyle.Render("Vaults"),
			"enter: open | n: new | r: rename | x: delete | e: empty | U: undo delete | tab/esc: back | q: quit",
		)
	case stateCreateVault:
		return m.viewPrompt("Create vault", "Enter a name and press Enter. Esc to cancel.")
	case stateRenameVault:
		return m.viewPrompt("Rename vault", "Edit the name and press Enter. Esc to cancel.")
	case stateImportPath:
		return m.viewPrompt("Import image", "Full path of the file to copy into this vault. Esc to cancel.")
	case stateDownloadDir:
		return m.viewPrompt("Download all images", "Destination directory. Existing files are skipped. Esc to cancel.")
	case stateConfirm:
		return m.viewConfirm()
	default:
		return ""
	}
}

func (m Model) assetHeader() string {
	cur, err := m.svc.CurrentVault()
	if err != nil {
		return headerStyle.Render("Visual Library")
	}
	return headerStyle.Render(fmt.Sprintf("%s · %d images", cur.Name, len(m.svc.Assets())))
}

func (m Model) viewList(header, hints string) string {
	out := header + "\n" + m.list.View() + "\n\n"
	if m.status != "" {
		out += statusStyle.Render(m.status) + "\n"
	}
	return out + hintStyle.Render(hints)
}

func (m Model) viewPrompt(title, help string) string {
	out := headerStyle.Render(title) + "\n" + help + "\n\n" + m.input.View()
	if m.status != "" {
		out += "\n\n" + statusStyle.Render(m.status)
	}
	return out
}

func (m Model) viewConfirm() string {
	if m.prompt == nil {
		return "Nothing to confirm. Press Esc."
	}

	var question string
	switch m.prompt.Kind {
	case PromptEmpty:
		question = fmt.Sprintf("Delete all %d images in \"%s\"?", m.prompt.Vault.ImageCount, m.prompt.Vault.Name)
	case PromptDelete:
		question = fmt.Sprintf("Delete the vault \"%s\" and its %d images?", m.prompt.Vault.Name, m.prompt.Vault.ImageCount)
	}

	check := "[ ]"
	if m.dontAsk {
		check = checkedStyle.Render("[x]")
	}

	body := question + "\n\nEverything stays undoable for a few minutes.\n\n" +
		check + " don't ask again (a to toggle)\n\n" +
		"y/enter: yes | n/esc: no"
	return confirmStyle.Render(body)
}
