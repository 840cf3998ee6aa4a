// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/launchpad/internal/config"
	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/infrastructure/jsonstore"
	"github.com/zjrosen/launchpad/internal/keys"
	"github.com/zjrosen/launchpad/internal/launch"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/registry"
	"github.com/zjrosen/launchpad/internal/statcache"
	"github.com/zjrosen/launchpad/internal/ui/confirm"
	"github.com/zjrosen/launchpad/internal/ui/entryform"
	"github.com/zjrosen/launchpad/internal/ui/entrylist"
	"github.com/zjrosen/launchpad/internal/ui/logoverlay"
	"github.com/zjrosen/launchpad/internal/ui/restorepicker"
	"github.com/zjrosen/launchpad/internal/ui/styles"
	"github.com/zjrosen/launchpad/internal/watcher"
)

// uiMode tracks which surface owns keyboard input.
type uiMode int

const (
	modeList uiMode = iota
	modeForm
	modeConfirm
	modeRestore
	modeLogs
)

// fileChangedMsg signals that the data file changed on disk.
type fileChangedMsg struct{}

// statusLevel controls status bar styling.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// Model is the root application state.
type Model struct {
	cfg    config.Config
	keyMap keys.KeyMap

	store  *jsonstore.Store
	reg    *registry.Registry
	launch *launch.Resolver
	runner *launch.Runner
	stat   *statcache.Cache

	mode   uiMode
	list   entrylist.Model
	form   entryform.Model
	dialog confirm.Model
	picker restorepicker.Model
	logs   logoverlay.Model
	help   help.Model

	width  int
	height int

	status      string
	statusLevel statusLevel

	pendingDeleteID string
	debugMode       bool

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	logListener  *log.LogListener
	listenerStop context.CancelFunc
}

// New creates the application model over an already-loaded registry.
func New(cfg config.Config, store *jsonstore.Store, reg *registry.Registry, debugMode bool) Model {
	stat := statcache.New(statcache.DefaultTTL)

	resolverOpts := make([]launch.ResolverOption, 0, len(cfg.Launch.Interpreters))
	for ext, program := range cfg.Launch.Interpreters {
		resolverOpts = append(resolverOpts, launch.WithInterpreter(ext, program))
	}

	var runnerOpts []launch.RunnerOption
	if cfg.Launch.Terminal != "" {
		runnerOpts = append(runnerOpts, launch.WithTerminal(cfg.Launch.Terminal))
	}

	list := entrylist.New(reg.List()).
		WithDescriptions(cfg.UI.ShowDescriptions).
		WithMissingBadge(cfg.UI.MissingBadge).
		WithChecker(stat.Exists)

	var (
		watcherHandle *watcher.Watcher
		watcherCh     <-chan struct{}
	)
	if cfg.AutoReload {
		w, err := watcher.New(watcher.DefaultConfig(store.Path()))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle = w
				watcherCh = ch
			} else {
				_ = w.Stop()
				log.Warn(log.CatWatcher, "watcher start failed, auto-reload disabled", "error", err)
			}
		} else {
			log.Warn(log.CatWatcher, "watcher init failed, auto-reload disabled", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	var listener *log.LogListener
	if debugMode {
		listener = log.NewListener(ctx)
	}

	return Model{
		cfg:           cfg,
		keyMap:        keys.DefaultKeyMap(),
		store:         store,
		reg:           reg,
		launch:        launch.NewResolver(resolverOpts...),
		runner:        launch.NewRunner(runnerOpts...),
		stat:          stat,
		list:          list,
		logs:          logoverlay.New(),
		help:          help.New(),
		debugMode:     debugMode,
		watcherHandle: watcherHandle,
		watcherCh:     watcherCh,
		logListener:   listener,
		listenerStop:  cancel,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherCh != nil {
		cmds = append(cmds, waitForChange(m.watcherCh))
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// waitForChange blocks until the watcher signals a data file change.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list = m.list.SetSize(msg.Width, msg.Height-3)
		m.form = m.form.SetSize(msg.Width, msg.Height)
		m.dialog = m.dialog.SetSize(msg.Width, msg.Height)
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case fileChangedMsg:
		return m.reloadFromDisk()

	case log.LogEvent:
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case entryform.SubmitMsg:
		return m.handleFormSubmit(msg)

	case entryform.CancelMsg:
		m.mode = modeList
		return m, nil

	case confirm.ConfirmMsg:
		return m.handleDeleteConfirmed()

	case confirm.CancelMsg:
		m.mode = modeList
		m.pendingDeleteID = ""
		return m, nil

	case restorepicker.RestoreMsg:
		return m.handleRestore(msg.Generation)

	case restorepicker.CancelMsg:
		m.mode = modeList
		return m, nil

	case logoverlay.CloseMsg:
		m.mode = modeList
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from anywhere. Plain q only quits from the list so
	// overlays can use it to close.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.mode == modeList && key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case modeConfirm:
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd

	case modeRestore:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case modeLogs:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Launch):
		return m.launchSelected()

	case key.Matches(msg, m.keyMap.Add):
		m.mode = modeForm
		m.form = entryform.New(entry.KindApplication).SetSize(m.width, m.height)
		return m, m.form.Init()

	case key.Matches(msg, m.keyMap.AddCategory):
		m.mode = modeForm
		m.form = entryform.New(entry.KindCategory).SetSize(m.width, m.height)
		return m, m.form.Init()

	case key.Matches(msg, m.keyMap.Edit):
		e, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		m.form = entryform.NewEdit(e).SetSize(m.width, m.height)
		return m, m.form.Init()

	case key.Matches(msg, m.keyMap.Delete):
		e, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.pendingDeleteID = e.ID()
		m.mode = modeConfirm
		m.dialog = confirm.New("Delete Entry", fmt.Sprintf("Delete '%s'?", e.Name())).
			SetSize(m.width, m.height)
		return m, nil

	case key.Matches(msg, m.keyMap.MoveUp):
		return m.moveSelected(-1)

	case key.Matches(msg, m.keyMap.MoveDown):
		return m.moveSelected(1)

	case key.Matches(msg, m.keyMap.Restore):
		return m.openRestorePicker()

	case key.Matches(msg, m.keyMap.Logs):
		if !m.debugMode {
			return m.withStatus("Run with --debug to capture logs", statusInfo), nil
		}
		m.mode = modeLogs
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) launchSelected() (tea.Model, tea.Cmd) {
	e, ok := m.list.Selected()
	if !ok {
		return m, nil
	}

	plan, err := m.launch.Resolve(e)
	switch {
	case errors.Is(err, launch.ErrNotLaunchable):
		return m.withStatus("Categories cannot be launched", statusWarn), nil
	case err != nil:
		log.ErrorErr(log.CatLaunch, "resolve failed", err, "entry", e.Name())
		return m.withStatus("Cannot launch: "+err.Error(), statusError), nil
	}

	if err := m.runner.Run(plan); err != nil {
		log.ErrorErr(log.CatLaunch, "spawn failed", err, "entry", e.Name(), "program", plan.Program)
		return m.withStatus("Launch failed: "+err.Error(), statusError), nil
	}

	log.Info(log.CatLaunch, "launched entry", "entry", e.Name(), "mode", plan.Mode.String())
	return m.withStatus("Launched "+e.Name(), statusInfo), nil
}

func (m Model) handleFormSubmit(msg entryform.SubmitMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList

	if msg.EditID != "" {
		updated, err := m.reg.Edit(msg.EditID, entry.Fields{
			Name:        msg.Name,
			Path:        msg.Path,
			Description: msg.Description,
			Kind:        msg.Kind,
		})
		if err != nil {
			return m.withStatus("Edit failed: "+err.Error(), statusError), nil
		}
		m.stat.Invalidate(updated.Path())
		m.list = m.list.SetEntries(m.reg.List()).SelectByID(updated.ID())
		return m.withStatus("Updated "+updated.Name(), statusInfo), nil
	}

	e, err := entry.New("", msg.Name, msg.Path, msg.Description, msg.Kind)
	if err != nil {
		return m.withStatus("Invalid entry: "+err.Error(), statusError), nil
	}

	added, warning, err := m.reg.Add(e)
	if err != nil {
		return m.withStatus("Add failed: "+err.Error(), statusError), nil
	}
	m.list = m.list.SetEntries(m.reg.List()).SelectByID(added.ID())

	if warning == registry.WarnTargetMissing {
		return m.withStatus("Added "+added.Name()+" (target missing)", statusWarn), nil
	}
	return m.withStatus("Added "+added.Name(), statusInfo), nil
}

func (m Model) handleDeleteConfirmed() (tea.Model, tea.Cmd) {
	m.mode = modeList
	id := m.pendingDeleteID
	m.pendingDeleteID = ""
	if id == "" {
		return m, nil
	}

	if err := m.reg.Delete(id); err != nil {
		return m.withStatus("Delete failed: "+err.Error(), statusError), nil
	}
	m.list = m.list.SetEntries(m.reg.List())
	return m.withStatus("Deleted entry", statusInfo), nil
}

// moveSelected swaps the selected entry with its neighbor and persists the
// resulting order.
func (m Model) moveSelected(delta int) (tea.Model, tea.Cmd) {
	e, ok := m.list.Selected()
	if !ok {
		return m, nil
	}

	entries := m.reg.List()
	idx := m.list.SelectedIndex()
	target := idx + delta
	if target < 0 || target >= len(entries) {
		return m, nil
	}

	order := make([]string, len(entries))
	for i, it := range entries {
		order[i] = it.ID()
	}
	order[idx], order[target] = order[target], order[idx]

	if err := m.reg.Reorder(order); err != nil {
		return m.withStatus("Reorder failed: "+err.Error(), statusError), nil
	}
	m.list = m.list.SetEntries(m.reg.List()).SelectByID(e.ID())
	return m, nil
}

func (m Model) openRestorePicker() (tea.Model, tea.Cmd) {
	backups, err := m.store.ListBackups()
	if err != nil {
		return m.withStatus("Cannot list backups: "+err.Error(), statusError), nil
	}

	current, err := os.ReadFile(m.store.Path())
	if err != nil {
		current = nil // preview diffs against an empty document
	}

	m.mode = modeRestore
	m.picker = restorepicker.New(backups, string(current)).SetSize(m.width, m.height)
	return m, nil
}

func (m Model) handleRestore(generation int) (tea.Model, tea.Cmd) {
	m.mode = modeList

	backups, err := m.store.ListBackups()
	if err != nil {
		return m.withStatus("Restore failed: "+err.Error(), statusError), nil
	}

	for _, b := range backups {
		if b.Generation != generation {
			continue
		}
		if err := m.store.Restore(b); err != nil {
			return m.withStatus("Restore failed: "+err.Error(), statusError), nil
		}
		log.Info(log.CatStore, "restored backup", "generation", generation)

		// The watcher would also pick this up, but reload immediately so the
		// list reflects the restored state without waiting on the debounce.
		model, cmd := m.reloadFromDisk()
		if mm, ok := model.(Model); ok {
			return mm.withStatus(fmt.Sprintf("Restored backup #%d", generation), statusInfo), cmd
		}
		return model, cmd
	}
	return m.withStatus(fmt.Sprintf("Backup #%d not found", generation), statusError), nil
}

// reloadFromDisk reloads the document and replaces the in-memory registry,
// keeping the selection on the same entry where possible.
func (m Model) reloadFromDisk() (tea.Model, tea.Cmd) {
	var rearm tea.Cmd
	if m.watcherCh != nil {
		rearm = waitForChange(m.watcherCh)
	}

	result, err := m.store.Load()
	if err != nil {
		log.ErrorErr(log.CatStore, "reload after change failed", err)
		return m.withStatus("Reload failed: "+err.Error(), statusError), rearm
	}

	selectedID := ""
	if e, ok := m.list.Selected(); ok {
		selectedID = e.ID()
	}

	m.stat.Flush()
	m.reg.Replace(result.Entries)
	m.list = m.list.SetEntries(m.reg.List())
	if selectedID != "" {
		m.list = m.list.SelectByID(selectedID)
	}

	log.Info(log.CatStore, "reloaded data file",
		"entries", len(result.Entries), "provenance", result.Provenance.String())

	if result.Provenance == jsonstore.CorruptDocument {
		return m.withStatus("Reloaded: data file was unreadable, starting empty", statusWarn), rearm
	}
	if result.Dropped > 0 {
		return m.withStatus(fmt.Sprintf("Reloaded (%d invalid entries dropped)", result.Dropped), statusWarn), rearm
	}
	return m.withStatus("Reloaded from disk", statusInfo), rearm
}

func (m Model) withStatus(msg string, level statusLevel) Model {
	m.status = msg
	m.statusLevel = level
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	base := m.list.View()
	if m.cfg.UI.ShowStatusBar {
		base = lipgloss.JoinVertical(lipgloss.Left, base, m.statusBar())
	}
	base = lipgloss.JoinVertical(lipgloss.Left, base, m.help.View(m.keyMap))

	switch m.mode {
	case modeForm:
		return m.form.Overlay(base)
	case modeConfirm:
		return m.dialog.Overlay(base)
	case modeRestore:
		return m.picker.Overlay(base)
	case modeLogs:
		return m.logs.View()
	}
	return base
}

func (m Model) statusBar() string {
	if m.status == "" {
		return styles.StatusInfoStyle.Render(fmt.Sprintf("%d entries", m.list.Len()))
	}
	switch m.statusLevel {
	case statusWarn:
		return styles.StatusWarnStyle.Render(m.status)
	case statusError:
		return styles.StatusErrorStyle.Render(m.status)
	default:
		return styles.StatusInfoStyle.Render(m.status)
	}
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.listenerStop != nil {
		m.listenerStop()
	}
	m.reg.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
