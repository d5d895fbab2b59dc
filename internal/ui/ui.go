// Package ui is the terminal front end: a bubbletea program driving the
// vault service from a single event loop. All service calls happen inside
// Update, so the service never sees overlapping operations.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/app"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/thumbs"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

type viewState int

const (
	stateAssets viewState = iota
	stateVaults
	stateCreateVault
	stateRenameVault
	stateImportPath
	stateDownloadDir
	stateConfirm
)

// externalChangeMsg signals that the watched vault directory changed
// outside the app.
type externalChangeMsg struct{}

// thumbMsg carries one finished thumbnail decode back to the event loop.
type thumbMsg struct {
	path  string
	thumb *thumbs.Thumbnail
}

// Model is the bubbletea model for the whole application.
type Model struct {
	app     *app.App
	svc     *vlib.Service
	cache   *thumbs.Cache
	confirm *DeferredConfirmer
	maxDim  int

	state    viewState
	lastList viewState
	list     list.Model
	input    textinput.Model

	prompt    *Prompt
	dontAsk   bool
	pendingOp func() error

	renameID string
	status   string
	descs    map[string]string
}

// New creates the initial model. The app must already be started.
func New(application *app.App, confirm *DeferredConfirmer, thumbDim int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200
	in.Width = 60

	m := Model{
		app:     application,
		svc:     application.Service(),
		cache:   application.Thumbnails(),
		confirm: confirm,
		maxDim:  thumbDim,
		state:   stateAssets,
		list:    l,
		input:   in,
		descs:   make(map[string]string),
	}
	m = m.showAssets()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitExternal(), m.loadThumbs())
}

// waitExternal blocks on the watcher's debounced event channel. Re-armed
// after every delivery. A nil channel (watcher unavailable) blocks forever.
func (m Model) waitExternal() tea.Cmd {
	events := m.app.RefreshEvents()
	return func() tea.Msg {
		<-events
		return externalChangeMsg{}
	}
}

// loadThumbs schedules a background decode for every asset without a
// cached description yet. Decodes go through the cache's shared-decode
// path, so a burst of reloads never duplicates work for the same file.
func (m Model) loadThumbs() tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range m.svc.Assets() {
		if _, ok := m.descs[a.FilePath]; ok {
			continue
		}
		cmds = append(cmds, requestThumb(m.cache, a.FilePath, m.maxDim))
	}
	return tea.Batch(cmds...)
}

// requestThumb resolves one thumbnail and delivers it back to the event
// loop as a message.
func requestThumb(cache *thumbs.Cache, path string, maxDim int) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan *thumbs.Thumbnail, 1)
		cache.Request(path, maxDim, func(t *thumbs.Thumbnail) { ch <- t })
		return thumbMsg{path: path, thumb: <-ch}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 6
		if h < 1 {
			h = 1
		}
		m.list.SetSize(msg.Width, h)
		m.input.Width = inputWidth(msg.Width)
	case externalChangeMsg:
		if err := m.svc.Reload(); err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = "Folder changed on disk, reloaded"
		}
		if m.state == stateAssets {
			m = m.showAssets()
		}
		return m, tea.Batch(m.waitExternal(), m.loadThumbs())
	case thumbMsg:
		m.descs[msg.path] = describeThumb(msg.thumb)
		if m.state == stateAssets {
			sel := m.list.Index()
			m.list.SetItems(m.assetItems())
			m.list.Select(sel)
		}
		return m, nil
	case tea.KeyMsg:
		if handled, nm, c := m.handleKey(msg); handled {
			return nm, c
		}
	}

	switch m.state {
	case stateAssets, stateVaults:
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case stateCreateVault, stateRenameVault, stateImportPath, stateDownloadDir:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes key presses. Returns handled=false for keys the focused
// component should consume instead.
func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return true, m, tea.Quit
	}

	if m.state == stateConfirm {
		return m.handleConfirmKey(key)
	}

	switch m.state {
	case stateCreateVault, stateRenameVault, stateImportPath, stateDownloadDir:
		switch key {
		case "esc":
			m.state = m.lastList
			m.input.Blur()
			return true, m, nil
		case "enter":
			nm, cmd := m.handleSubmit()
			return true, nm, cmd
		}
		return false, m, nil
	}

	// List views from here on. Let the list's filter input eat keys.
	if m.list.FilterState() == list.Filtering {
		return false, m, nil
	}

	switch key {
	case "q":
		return true, m, tea.Quit
	case "tab":
		if m.state == stateAssets {
			m = m.showVaults()
		} else {
			m = m.showAssets()
		}
		return true, m, m.loadThumbs()
	case "esc":
		if m.state == stateVaults {
			m = m.showAssets()
			return true, m, nil
		}
	case "n":
		m = m.enterPrompt(stateCreateVault, "New vault name", "")
		return true, m, textinput.Blink
	case "r":
		if m.state == stateVaults {
			if v, ok := m.selectedVault(); ok {
				m.renameID = v.ID
				m = m.enterPrompt(stateRenameVault, "New name for "+v.Name, v.Name)
				return true, m, textinput.Blink
			}
		}
	case "enter":
		if m.state == stateVaults {
			nm, cmd := m.openSelectedVault()
			return true, nm, cmd
		}
	case "x":
		if m.state == stateAssets {
			nm := m.deleteSelectedAsset()
			return true, nm, nil
		}
		if v, ok := m.selectedVault(); ok {
			id := v.ID
			nm := m.runDestructive(func() error { return m.svc.DeleteVault(id) })
			return true, nm, nil
		}
	case "e":
		id, ok := m.targetVaultID()
		if ok {
			nm := m.runDestructive(func() error { return m.svc.EmptyVault(id) })
			return true, nm, nil
		}
	case "u":
		nm := m.undoAsset()
		return true, nm, nil
	case "U":
		nm := m.undoVault()
		return true, nm, nil
	case "i":
		if m.state == stateAssets {
			m = m.enterPrompt(stateImportPath, "Path of image to import", "")
			return true, m, textinput.Blink
		}
	case "d":
		if m.state == stateAssets {
			m = m.enterPrompt(stateDownloadDir, "Download destination directory", m.svc.DownloadDir())
			return true, m, textinput.Blink
		}
	case "R":
		if err := m.svc.Reload(); err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = "Reloaded"
		}
		if m.state == stateAssets {
			m = m.showAssets()
		} else {
			m = m.showVaults()
		}
		return true, m, m.loadThumbs()
	}
	return false, m, nil
}

func (m Model) handleConfirmKey(key string) (bool, Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		m.confirm.Queue(vlib.Decision{Accepted: true, DontAskAgain: m.dontAsk})
		err := m.pendingOp()
		m = m.leaveConfirm()
		if err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = "Done"
		}
		// Deleting the current vault switches away; follow it.
		m.app.WatchCurrentVault()
		m = m.refreshCurrentList()
		return true, m, m.loadThumbs()
	case "n", "esc":
		if m.dontAsk {
			m.confirm.Queue(vlib.Decision{Accepted: false, DontAskAgain: true})
			_ = m.pendingOp() // records the sticky flag, then cancels
		}
		m = m.leaveConfirm()
		m.status = "Cancelled"
		return true, m, nil
	case "a":
		m.dontAsk = !m.dontAsk
		return true, m, nil
	}
	return true, m, nil
}

func (m Model) leaveConfirm() Model {
	m.state = m.lastList
	m.prompt = nil
	m.pendingOp = nil
	m.dontAsk = false
	return m
}

// runDestructive executes a confirmable operation. When the service asks
// for confirmation the first run returns cancelled and the captured prompt
// switches the UI into the confirm view; answering re-runs op with the
// decision queued.
func (m Model) runDestructive(op func() error) Model {
	err := op()
	if p := m.confirm.TakePrompt(); p != nil {
		m.prompt = p
		m.pendingOp = op
		m.dontAsk = false
		m.lastList = m.state
		m.state = stateConfirm
		return m
	}
	if err != nil && !errors.Is(err, vlib.ErrCancelled) {
		m.status = "Error: " + err.Error()
	} else if err == nil {
		m.status = "Done"
	}
	m.app.WatchCurrentVault()
	return m.refreshCurrentList()
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	state := m.state
	m.state = m.lastList
	m.input.Blur()

	switch state {
	case stateCreateVault:
		if value == "" {
			m.status = "Vault name cannot be empty"
			return m, nil
		}
		v, err := m.svc.CreateVault(value)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		if err := m.svc.SwitchTo(v.ID); err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.app.WatchCurrentVault()
		m.status = "Vault created: " + v.Name
		m = m.showAssets()
		return m, m.loadThumbs()
	case stateRenameVault:
		if value == "" {
			m.status = "Vault name cannot be empty"
			return m, nil
		}
		if err := m.svc.RenameVault(m.renameID, value); err != nil {
			m.status = "Error: " + err.Error()
		} else {
			m.status = "Renamed to " + value
		}
		m = m.refreshCurrentList()
		return m, nil
	case stateImportPath:
		if value == "" {
			m.status = "Path cannot be empty"
			return m, nil
		}
		a, err := m.svc.ImportFile(strings.Trim(value, "\"'"))
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.status = "Imported " + a.Filename
		m = m.showAssets()
		return m, m.loadThumbs()
	case stateDownloadDir:
		if value == "" {
			m.status = "Destination cannot be empty"
			return m, nil
		}
		cur, err := m.svc.CurrentVault()
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		sum, err := m.svc.DownloadAll(cur.ID, value)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Downloaded %d, skipped %d, failed %d", sum.Copied, sum.Skipped, sum.Failed)
		return m, nil
	}
	return m, nil
}

func (m Model) openSelectedVault() (Model, tea.Cmd) {
	v, ok := m.selectedVault()
	if !ok {
		return m, nil
	}
	if err := m.svc.SwitchTo(v.ID); err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}
	m.app.WatchCurrentVault()
	m.status = "Opened " + v.Name
	m = m.showAssets()
	return m, m.loadThumbs()
}

func (m Model) deleteSelectedAsset() Model {
	sel := m.list.SelectedItem()
	if sel == nil {
		return m
	}
	it, ok := sel.(assetItem)
	if !ok {
		return m
	}
	if err := m.svc.DeleteAsset(it.asset); err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.status = "Deleted " + it.asset.Filename + " (u to undo)"
	return m.showAssets()
}

func (m Model) undoAsset() Model {
	a, err := m.svc.UndoAssetDelete()
	switch {
	case errors.Is(err, vlib.ErrNothingToUndo):
		m.status = "Nothing to undo"
	case errors.Is(err, vlib.ErrUndoExpired):
		m.status = "Undo window elapsed"
	case err != nil:
		m.status = "Error: " + err.Error()
	default:
		m.status = "Restored " + a.Filename
	}
	return m.refreshCurrentList()
}

func (m Model) undoVault() Model {
	v, err := m.svc.UndoVaultDelete()
	switch {
	case errors.Is(err, vlib.ErrNothingToUndo):
		m.status = "No vault deletion to undo"
	case errors.Is(err, vlib.ErrUndoExpired):
		m.status = "Undo window elapsed"
	case err != nil:
		m.status = "Error: " + err.Error()
	default:
		m.status = "Vault restored: " + v.Name + " (u restores its images one by one)"
	}
	return m.refreshCurrentList()
}

// targetVaultID resolves which vault a vault-level key targets: the
// selection in the vault list, or the open vault in the asset view.
func (m Model) targetVaultID() (string, bool) {
	if m.state == stateVaults {
		if v, ok := m.selectedVault(); ok {
			return v.ID, true
		}
		return "", false
	}
	cur, err := m.svc.CurrentVault()
	if err != nil {
		return "", false
	}
	return cur.ID, true
}

func (m Model) selectedVault() (vlib.Vault, bool) {
	if m.state != stateVaults {
		return vlib.Vault{}, false
	}
	sel := m.list.SelectedItem()
	if sel == nil {
		return vlib.Vault{}, false
	}
	it, ok := sel.(vaultItem)
	if !ok {
		return vlib.Vault{}, false
	}
	return it.vault, true
}

func (m Model) showAssets() Model {
	m.state = stateAssets
	m.list.SetItems(m.assetItems())
	m.list.Title = "Images"
	return m
}

func (m Model) showVaults() Model {
	m.state = stateVaults
	m.list.SetItems(m.vaultItems())
	m.list.Title = "Vaults"
	return m
}

func (m Model) refreshCurrentList() Model {
	if m.state == stateVaults {
		return m.showVaults()
	}
	return m.showAssets()
}

func (m Model) assetItems() []list.Item {
	assets := m.svc.Assets()
	items := make([]list.Item, 0, len(assets))
	for _, a := range assets {
		items = append(items, assetItem{asset: a, desc: m.descs[a.FilePath]})
	}
	return items
}

func (m Model) vaultItems() []list.Item {
	vaults := m.svc.Vaults()
	items := make([]list.Item, 0, len(vaults))
	for _, v := range vaults {
		items = append(items, vaultItem{vault: *v})
	}
	return items
}

func (m Model) enterPrompt(state viewState, placeholder, initial string) Model {
	m.lastList = m.state
	m.state = state
	m.input.SetValue(initial)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func inputWidth(window int) int {
	if window <= 20 {
		return 16
	}
	if window-4 < 60 {
		return window - 4
	}
	return 60
}
