package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/treescopelabs/treescope/internal/config"
	"github.com/treescopelabs/treescope/internal/dataset"
	"github.com/treescopelabs/treescope/internal/export"
	"github.com/treescopelabs/treescope/internal/logging"
	"github.com/treescopelabs/treescope/internal/model"
	"github.com/treescopelabs/treescope/internal/stats"
)

// Panel identifies which panel is active
type Panel int

const (
	PanelOutline Panel = iota
	PanelTreemap
)

// loadCompleteMsg is sent when the dataset loader finishes
type loadCompleteMsg struct {
	root *model.Node
	err  error
}

// spinnerTickMsg triggers spinner animation
type spinnerTickMsg struct{}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerTickInterval = 80 * time.Millisecond
	resizeStep          = 0.01 // weight change per grow/shrink press
)

// App is the main application model
type App struct {
	// Components
	header  Header
	outline OutlinePanel
	treemap TreemapPanel
	help    HelpOverlay

	// State
	keys   KeyMap
	loader dataset.Loader
	cfg    config.Config

	statsManager   *stats.Manager
	prunedSession  int64
	prunedLifetime int64

	// Data
	root *model.Node

	// UI state
	activePanel  Panel
	loading      bool
	err          error
	spinnerFrame int
	status       string

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance. The weight formatter depends on
// the dataset: file trees show bytes, paper trees show citation counts.
func NewApp(title string, loader dataset.Loader, cfg config.Config, statsMgr *stats.Manager, bytes bool) App {
	app := App{
		header:         NewHeader(title),
		outline:        NewOutlinePanel(),
		treemap:        NewTreemapPanel(),
		help:           NewHelpOverlay(),
		keys:           DefaultKeyMap(),
		loader:         loader,
		cfg:            cfg,
		statsManager:   statsMgr,
		prunedLifetime: statsMgr.PrunedLifetime(),
		activePanel:    PanelOutline,
		loading:        true,
	}

	format := FormatCount
	if bytes {
		format = FormatSize
	}
	app.header.SetFormat(format)
	app.outline.SetFormat(format)
	app.treemap.SetFormat(format)

	app.outline.SetFocused(true)
	app.treemap.SetFocused(false)
	app.header.SetLoading(true, "")
	app.header.SetPruned(0, app.prunedLifetime)

	return app
}

// SetVolume forwards volume usage to the header gauge.
func (a *App) SetVolume(total, free int64) {
	a.header.SetVolume(total, free)
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	titleCmd := tea.SetWindowTitle("TREESCOPE")
	loadCmd := func() tea.Msg {
		root, err := a.loader.Load(context.Background())
		return loadCompleteMsg{root: root, err: err}
	}
	spinnerCmd := tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
	return tea.Batch(titleCmd, loadCmd, spinnerCmd)
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case loadCompleteMsg:
		a.loading = false
		a.header.SetLoading(false, "")
		if msg.err != nil {
			a.err = msg.err
			logging.Debug.Error("dataset load failed", "err", msg.err)
			return a, nil
		}
		a.root = msg.root
		a.err = nil
		a.outline.SetRoot(msg.root)
		a.treemap.SetRoot(msg.root)
		a.header.SetTotal(msg.root.Size)
		a.updateLayout()
		logging.Debug.Info("dataset loaded", "total", msg.root.Size)
		return a, nil

	case spinnerTickMsg:
		if a.loading {
			a.spinnerFrame = (a.spinnerFrame + 1) % len(spinnerFrames)
			a.header.SetLoading(true, spinnerFrames[a.spinnerFrame]+" loading")
			return a, tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
				return spinnerTickMsg{}
			})
		}
		return a, nil
	}

	return a, nil
}

// refreshPanels recomputes the treemap layout and the outline listing after
// any tree mutation.
func (a *App) refreshPanels() {
	a.treemap.Refresh()
	a.outline.Refresh()
	if a.root != nil {
		a.header.SetTotal(a.root.Size)
	}
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Quit) {
			a.help.Toggle()
		}
		return a, nil
	}

	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		if a.statsManager != nil {
			_ = a.statsManager.Close()
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Tab):
		if a.activePanel == PanelOutline {
			a.activePanel = PanelTreemap
		} else {
			a.activePanel = PanelOutline
		}
		a.outline.SetFocused(a.activePanel == PanelOutline)
		a.treemap.SetFocused(a.activePanel == PanelTreemap)
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.outline.MoveUp()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.outline.MoveDown()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.Top):
		a.outline.GoToTop()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.Bottom):
		a.outline.GoToBottom()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.PageUp):
		a.outline.PageUp()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.PageDown):
		a.outline.PageDown()
		a.treemap.SetSelected(a.outline.Selected())
		return a, nil

	case key.Matches(msg, a.keys.Expand):
		if sel := a.outline.Selected(); sel != nil {
			if sel.Expand() {
				a.refreshPanels()
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.Collapse):
		if sel := a.outline.Selected(); sel != nil {
			if sel.Collapse() {
				a.refreshPanels()
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.ExpandAll):
		if sel := a.outline.Selected(); sel != nil {
			sel.ExpandAll()
			a.refreshPanels()
		}
		return a, nil

	case key.Matches(msg, a.keys.CollapseAll):
		if sel := a.outline.Selected(); sel != nil {
			sel.CollapseAll()
			a.refreshPanels()
		}
		return a, nil

	case key.Matches(msg, a.keys.Grow):
		if sel := a.outline.Selected(); sel != nil {
			if sel.Resize(resizeStep) {
				a.refreshPanels()
			} else {
				a.status = "only leaf weights can be changed"
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.Shrink):
		if sel := a.outline.Selected(); sel != nil {
			if sel.Resize(-resizeStep) {
				a.refreshPanels()
			} else {
				a.status = "only leaf weights can be changed"
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		return a.deleteSelected()

	case key.Matches(msg, a.keys.Mode):
		a.treemap.ToggleMode()
		a.status = "layout: " + a.treemap.Mode().String()
		return a, nil

	case key.Matches(msg, a.keys.Export):
		return a.exportSVG()
	}

	return a, nil
}

// deleteSelected removes the selected node from the tree and records its
// weight in the lifetime pruned counter.
func (a App) deleteSelected() (tea.Model, tea.Cmd) {
	sel := a.outline.Selected()
	if sel == nil {
		return a, nil
	}

	parent := sel.Parent
	weight := sel.Size
	if !sel.Delete() {
		a.status = "cannot delete the root"
		return a, nil
	}

	a.prunedSession += weight
	a.prunedLifetime += weight
	if a.statsManager != nil {
		a.statsManager.AddPruned(weight)
	}
	a.header.SetPruned(a.prunedSession, a.prunedLifetime)
	logging.Debug.Info("deleted node", "name", sel.Name, "weight", weight)

	a.outline.Select(parent)
	a.treemap.SetSelected(parent)
	a.refreshPanels()
	return a, nil
}

// exportSVG writes an SVG snapshot next to the working directory. The export
// lays the tree out at canvas size, so the screen layout is recomputed after.
func (a App) exportSVG() (tea.Model, tea.Cmd) {
	if a.root == nil {
		return a, nil
	}

	path := fmt.Sprintf("treescope-%s.svg", time.Now().Format("20060102-150405"))
	err := export.Save(path, a.root, a.cfg.Export.Width, a.cfg.Export.Height)
	a.treemap.Refresh()
	if err != nil {
		a.status = "export failed: " + err.Error()
		logging.Debug.Error("svg export failed", "err", err)
	} else {
		a.status = "exported " + path
		logging.Debug.Info("svg exported", "path", path)
	}
	return a, nil
}

// handleMouse selects the block under a left click.
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}

	node := a.treemap.NodeAt(msg.X, msg.Y)
	if node == nil {
		return a, nil
	}

	a.status = ""
	a.activePanel = PanelTreemap
	a.outline.SetFocused(false)
	a.treemap.SetFocused(true)
	a.treemap.SetSelected(node)
	a.outline.Select(node)
	a.refreshPanels()
	return a, nil
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	headerHeight := 1
	statusHeight := 1
	helpBarHeight := 1

	panelHeight := a.height - headerHeight - statusHeight - helpBarHeight
	if panelHeight < 1 {
		panelHeight = 1
	}

	// Outline takes only what it needs, max 40% of screen
	outlineWidth := a.outline.RequiredWidth()
	maxOutlineWidth := a.width * 2 / 5
	if outlineWidth > maxOutlineWidth {
		outlineWidth = maxOutlineWidth
	}
	if outlineWidth < 24 {
		outlineWidth = 24
	}

	a.header.SetWidth(a.width)
	a.outline.SetSize(outlineWidth, panelHeight)
	a.treemap.SetSize(a.width-outlineWidth, panelHeight)
	a.treemap.SetOrigin(outlineWidth, headerHeight)
	a.help.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, a.header.View())

	switch {
	case a.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(ColorDanger).Padding(0, 1)
		box := errStyle.Render(fmt.Sprintf("Error: %v", a.err))
		sections = append(sections, lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, box))

	case a.loading || a.root == nil:
		spinner := spinnerFrames[a.spinnerFrame]
		box := StatusStyle.Render(spinner + " loading dataset")
		sections = append(sections, lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, box))

	default:
		panels := lipgloss.JoinHorizontal(lipgloss.Top, a.outline.View(), a.treemap.View())
		sections = append(sections, panels)
		sections = append(sections, a.statusLine())
	}

	sections = append(sections, HelpBar(a.width))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if a.help.IsVisible() {
		return a.help.View()
	}

	return content
}

// statusLine shows the selected node's path and descriptor, or a transient
// message after an operation.
func (a App) statusLine() string {
	text := a.status
	if text == "" {
		if sel := a.outline.Selected(); sel != nil {
			text = sel.Describe()
		}
	}
	maxW := a.width - 2
	if maxW > 0 && lipgloss.Width(text) > maxW {
		// trim on rune boundaries, names are arbitrary text
		runes := []rune(text)
		if len(runes) > maxW {
			text = string(runes[:maxW])
		}
	}
	return StatusStyle.MaxWidth(a.width).Render(text)
}
