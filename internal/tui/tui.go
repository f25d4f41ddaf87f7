package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/Joseda-hg/dailytodo/internal/codec"
	"github.com/Joseda-hg/dailytodo/internal/model"
	"github.com/Joseda-hg/dailytodo/internal/progress"
	"github.com/Joseda-hg/dailytodo/internal/tracker"
)

const (
	viewHeader  = "header"
	viewFooter  = "footer"
	viewTasks   = "tasks"
	viewDetail  = "detail"
	viewForm    = "form"
	viewCustom  = "custom"
	viewExport  = "export"
	viewImport  = "import"
	viewConfirm = "confirm"
	viewHelp    = "help"
)

type UI struct {
	tracker *tracker.Tracker
	gui     *gocui.Gui

	state    tracker.State
	settings model.Settings
	selected int

	form        *formState
	formEditor  *formEditor
	confirm     *confirmState
	exportToken string
	importOpen  bool
	helpActive  bool
	status      string
}

type formState struct {
	taskID string
	fields []formField
	index  int
}

type formEditor struct {
	ui *UI
}

type confirmState struct {
	prompt string
	onYes  func() error
}

func Run(t *tracker.Tracker) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := &UI{tracker: t, gui: gui}
	ui.formEditor = &formEditor{ui: ui}

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.loadTasks(); err != nil {
		return err
	}

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []struct {
		view    string
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quit},
		{"", 'r', u.reload},
		{"", 'a', u.addTask},
		{"", 'e', u.editTask},
		{"", 'd', u.deleteTask},
		{"", 'x', u.exportTasks},
		{"", 'i', u.openImport},
		{"", '?', u.toggleHelp},
		{viewTasks, gocui.KeyArrowDown, u.moveDown},
		{viewTasks, 'j', u.moveDown},
		{viewTasks, gocui.KeyArrowUp, u.moveUp},
		{viewTasks, 'k', u.moveUp},
		{viewTasks, gocui.KeyEnter, u.completeTask},
		{viewTasks, gocui.KeySpace, u.completeTask},
		{viewTasks, '+', u.toggleCustom},
		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyTab, u.nextFormField},
		{viewForm, gocui.KeyBacktab, u.prevFormField},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewForm, gocui.KeyEsc, u.cancelForm},
		{viewCustom, gocui.KeyEnter, u.submitCustom},
		{viewCustom, gocui.KeyEsc, u.cancelCustom},
		{viewImport, gocui.KeyEnter, u.submitImport},
		{viewImport, gocui.KeyEsc, u.cancelImport},
		{viewExport, gocui.KeyEsc, u.closeExport},
		{viewExport, gocui.KeyEnter, u.closeExport},
		{viewConfirm, 'y', u.confirmYes},
		{viewConfirm, 'n', u.confirmNo},
		{viewConfirm, gocui.KeyEsc, u.confirmNo},
		{viewHelp, gocui.KeyEsc, u.closeHelp},
		{viewHelp, '?', u.closeHelp},
	}
	for _, binding := range bindings {
		if err := gui.SetKeybinding(binding.view, binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 2, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	u.renderHeader(headerView)

	footerY1 := max(maxY-1, 4)
	footerY0 := max(footerY1-3, 3)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 3
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}

	leftWidth := max(maxX*3/5, 30)
	if leftWidth > maxX-20 {
		leftWidth = maxX - 1
	}

	tasksView, err := gui.SetView(viewTasks, 0, bodyTop, leftWidth-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		tasksView.Title = "Tasks"
		tasksView.TitleColor = gocui.ColorGreen
	}
	applyViewStyle(tasksView, true)
	u.renderTasks(tasksView)

	if leftWidth < maxX-1 {
		detailView, err := gui.SetView(viewDetail, leftWidth, bodyTop, maxX-1, bodyBottom, 0)
		if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		if goerrors.Is(err, gocui.ErrUnknownView) {
			detailView.Title = "Details"
			detailView.Wrap = true
		}
		applyViewStyle(detailView, false)
		u.renderDetail(detailView)
	}

	if err := u.layoutOverlays(gui); err != nil {
		return err
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(viewTasks)
	}
	gui.Cursor = u.form != nil || u.importOpen || u.customOpen()
	return nil
}

func (u *UI) layoutOverlays(gui *gocui.Gui) error {
	overlays := []struct {
		name   string
		active bool
		show   func(*gocui.Gui) error
	}{
		{viewForm, u.form != nil, u.showForm},
		{viewCustom, u.customOpen(), u.showCustom},
		{viewExport, u.exportToken != "", u.showExport},
		{viewImport, u.importOpen, u.showImport},
		{viewConfirm, u.confirm != nil, u.showConfirm},
		{viewHelp, u.helpActive, u.showHelp},
	}
	for _, overlay := range overlays {
		if !overlay.active {
			_ = gui.DeleteView(overlay.name)
			continue
		}
		if err := overlay.show(gui); err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) loadTasks() error {
	state, err := u.tracker.Load(context.Background())
	if err != nil {
		return err
	}
	settings, err := u.tracker.LoadSettings(context.Background())
	if err != nil {
		return err
	}
	u.state = state
	u.settings = settings
	u.clampSelection()
	return nil
}

func (u *UI) clampSelection() {
	if u.selected >= len(u.state.Tasks) {
		u.selected = max(len(u.state.Tasks)-1, 0)
	}
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	today := u.tracker.Today()
	totals := u.state.Totals()
	stats := u.state.Stats(today)
	fmt.Fprintf(view, "Daily To-Do | %s | Total %s %d%% (%d/%d)\n", today, formatBar(totals.Percentage), totals.Percentage, totals.Current, totals.Total)
	fmt.Fprintf(view, "Tasks %d | Done today %d | In progress %d | Not started %d", stats.Total, stats.CompletedToday, stats.InProgress, stats.NotStarted)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "enter/space complete | + custom amount | a add | e edit | d delete | j/k move")
	fmt.Fprintln(view, "x export | i import | r reload | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTasks(view *gocui.View) {
	view.Clear()
	if len(u.state.Tasks) == 0 {
		fmt.Fprintln(view, "  No tasks yet. Press a to add one.")
		return
	}
	today := u.tracker.Today()
	for i, task := range u.state.Tasks {
		prefix := " "
		if i == u.selected {
			prefix = ">"
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskSummary(task, today))
	}
	view.SetCursor(0, u.selected)
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	task := u.selectedTask()
	if task == nil {
		return
	}
	for _, line := range formatTaskDetail(*task, u.tracker.Today()) {
		fmt.Fprintln(view, line)
	}
	if pending, ok := u.state.Pending[task.ID]; ok {
		fmt.Fprintf(view, "Custom amount: %d\n", pending.Value)
	}
}

func (u *UI) selectedTask() *model.Task {
	if u.selected < 0 || u.selected >= len(u.state.Tasks) {
		return nil
	}
	task := u.state.Tasks[u.selected]
	return &task
}

func (u *UI) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected < len(u.state.Tasks)-1 {
		u.selected++
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected > 0 {
		u.selected--
	}
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	return u.loadTasks()
}

func (u *UI) completeTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	next, err := u.tracker.Complete(context.Background(), u.state, selected.ID)
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.commitIncrement(next, *selected)
	return nil
}

func (u *UI) commitIncrement(next tracker.State, before model.Task) {
	u.state = next
	after, _, err := progress.Find(next.Tasks, before.ID)
	if err != nil {
		u.status = err.Error()
		return
	}
	u.status = formatCelebration(after, after.Current-before.Current, u.settings)
}

func (u *UI) toggleCustom(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	u.state = tracker.ToggleCustom(u.state, selected.ID)
	return nil
}

func (u *UI) customOpen() bool {
	selected := u.selectedTask()
	if selected == nil {
		return false
	}
	return u.state.Pending[selected.ID].Visible
}

func (u *UI) showCustom(gui *gocui.Gui) error {
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	view, err := u.centeredView(gui, viewCustom, 40, 2)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Add amount to " + selected.Name
		view.Clear()
		fmt.Fprint(view, strconv.Itoa(u.state.Pending[selected.ID].Value))
		view.SetCursor(len(view.Buffer()), 0)
	}
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	_, _ = gui.SetCurrentView(viewCustom)
	return nil
}

func (u *UI) submitCustom(gui *gocui.Gui, view *gocui.View) error {
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	state := u.state
	if view != nil {
		amount, err := strconv.Atoi(strings.TrimSpace(view.Buffer()))
		if err != nil {
			u.status = "invalid amount"
			return nil
		}
		state = tracker.SetCustomValue(state, selected.ID, amount)
	}
	next, err := u.tracker.ApplyPending(context.Background(), state, selected.ID)
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.commitIncrement(next, *selected)
	u.closeOverlay(gui, viewCustom)
	return nil
}

func (u *UI) cancelCustom(gui *gocui.Gui, _ *gocui.View) error {
	selected := u.selectedTask()
	if selected != nil && u.state.Pending[selected.ID].Visible {
		u.state = tracker.ToggleCustom(u.state, selected.ID)
	}
	u.closeOverlay(gui, viewCustom)
	return nil
}

func (u *UI) addTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.form = &formState{fields: buildFormFields(nil)}
	return nil
}

func (u *UI) editTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	u.form = &formState{taskID: selected.ID, fields: buildFormFields(selected)}
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	view, err := u.centeredView(gui, viewForm, 60, len(u.form.fields)+1)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = "New Task"
	if u.form.taskID != "" {
		view.Title = "Edit Task"
	}
	view.Wrap = true
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}

	ctx := context.Background()
	if u.form.taskID == "" {
		input, err := parseNewTask(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		next, _, err := u.tracker.AddTask(ctx, u.state, input)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		u.state = next
		u.selected = len(next.Tasks) - 1
	} else {
		edit, err := parseTaskEdit(u.form.fields)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		next, _, err := u.tracker.EditTask(ctx, u.state, u.form.taskID, edit)
		if err != nil {
			u.status = err.Error()
			return nil
		}
		u.state = next
	}

	u.form = nil
	u.status = ""
	u.closeOverlay(gui, viewForm)
	return nil
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.form = nil
	u.closeOverlay(gui, viewForm)
	return nil
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	label := u.form.fields[u.form.index].Label + ": "
	cursorX := len([]rune(label)) + len([]rune(u.form.fields[u.form.index].Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	if isIncludeField(ui.form.index) {
		switch key {
		case gocui.KeySpace, gocui.KeyArrowLeft, gocui.KeyArrowRight:
			field.Value = toggleInclude(field.Value)
		}
		ui.renderForm(view)
		return true
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}

func (u *UI) deleteTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	id := selected.ID
	u.confirm = &confirmState{
		prompt: fmt.Sprintf("Delete %q? (y/n)", selected.Name),
		onYes: func() error {
			next, err := u.tracker.DeleteTask(context.Background(), u.state, id)
			if err != nil {
				u.status = err.Error()
				return nil
			}
			u.state = next
			u.clampSelection()
			u.status = "deleted"
			return nil
		},
	}
	return nil
}

func (u *UI) exportTasks(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	token, err := u.tracker.Export(u.state)
	if err != nil {
		u.status = err.Error()
		return nil
	}
	u.exportToken = token
	u.status = fmt.Sprintf("exported %d task(s)", len(u.state.Tasks))
	return nil
}

func (u *UI) showExport(gui *gocui.Gui) error {
	view, err := u.centeredView(gui, viewExport, 70, 8)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Export token (copy, then esc)"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, u.exportToken)
	_, _ = gui.SetCurrentView(viewExport)
	return nil
}

func (u *UI) closeExport(gui *gocui.Gui, _ *gocui.View) error {
	u.exportToken = ""
	u.closeOverlay(gui, viewExport)
	return nil
}

func (u *UI) openImport(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.importOpen = true
	return nil
}

func (u *UI) showImport(gui *gocui.Gui) error {
	view, err := u.centeredView(gui, viewImport, 70, 6)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Paste import token, enter to continue"
		view.Wrap = true
	}
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	_, _ = gui.SetCurrentView(viewImport)
	return nil
}

func (u *UI) submitImport(gui *gocui.Gui, view *gocui.View) error {
	if view == nil {
		return nil
	}
	return u.prepareImport(gui, view.Buffer())
}

// prepareImport validates the token and asks before overwriting anything.
func (u *UI) prepareImport(gui *gocui.Gui, token string) error {
	token = strings.Join(strings.Fields(token), "")
	tasks, err := codec.Decode(token)
	if err != nil {
		u.status = importMessage(err)
		return nil
	}

	u.importOpen = false
	u.closeOverlay(gui, viewImport)
	u.confirm = &confirmState{
		prompt: fmt.Sprintf("Import %d task(s) and overwrite current data? (y/n)", len(tasks)),
		onYes: func() error {
			next, replaced, err := u.tracker.Import(context.Background(), u.state, token, nil)
			if err != nil {
				u.status = importMessage(err)
				return nil
			}
			if replaced {
				u.state = next
				u.selected = 0
				u.status = fmt.Sprintf("imported %d task(s)", len(next.Tasks))
			}
			return nil
		},
	}
	return nil
}

func (u *UI) cancelImport(gui *gocui.Gui, _ *gocui.View) error {
	u.importOpen = false
	u.closeOverlay(gui, viewImport)
	return nil
}

func importMessage(err error) string {
	var importErr *codec.ImportError
	if !goerrors.As(err, &importErr) {
		return "import failed: " + err.Error()
	}
	switch importErr.Kind {
	case codec.MalformedToken, codec.MalformedPayload:
		return "import failed: data is malformed or damaged"
	case codec.InvalidShape:
		return "import failed: data has the wrong format"
	case codec.NoValidTasks:
		return "import failed: no valid tasks found"
	default:
		return "import failed: " + err.Error()
	}
}

func (u *UI) showConfirm(gui *gocui.Gui) error {
	view, err := u.centeredView(gui, viewConfirm, max(40, len(u.confirm.prompt)+4), 2)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = "Confirm"
	view.Clear()
	fmt.Fprint(view, u.confirm.prompt)
	_, _ = gui.SetCurrentView(viewConfirm)
	return nil
}

func (u *UI) confirmYes(gui *gocui.Gui, _ *gocui.View) error {
	if u.confirm == nil {
		return nil
	}
	action := u.confirm.onYes
	u.confirm = nil
	u.closeOverlay(gui, viewConfirm)
	return action()
}

func (u *UI) confirmNo(gui *gocui.Gui, _ *gocui.View) error {
	u.confirm = nil
	u.status = "cancelled"
	u.closeOverlay(gui, viewConfirm)
	return nil
}

func (u *UI) toggleHelp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	if !u.helpActive {
		u.closeOverlay(gui, viewHelp)
	}
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	u.closeOverlay(gui, viewHelp)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	view, err := u.centeredView(gui, viewHelp, 60, 14)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) centeredView(gui *gocui.Gui, name string, width, height int) (*gocui.View, error) {
	maxX, maxY := gui.Size()
	width = min(width, maxX-2)
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	return gui.SetView(name, x0, y0, x0+width, y0+height+1, 0)
}

func (u *UI) closeOverlay(gui *gocui.Gui, name string) {
	if gui == nil {
		return
	}
	_ = gui.DeleteView(name)
	_, _ = gui.SetCurrentView(viewTasks)
}

func (u *UI) inputActive() bool {
	return u.form != nil || u.confirm != nil || u.importOpen || u.exportToken != "" || u.helpActive || u.customOpen()
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	if u.form != nil || u.importOpen || u.customOpen() {
		return nil
	}
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Progress:",
		"  enter/space add the task's default increment",
		"  + open custom amount (negative values subtract)",
		"",
		"Tasks:",
		"  a add | e edit | d delete | j/k or arrows move",
		"  tab/arrows next field | space toggles 'count in total' (form)",
		"",
		"Transfer:",
		"  x export token | i import token (replaces all tasks)",
		"",
		"Other:",
		"  r reload | ? help | esc close | q/ctrl+c quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, highlight bool) {
	view.Frame = true
	view.Highlight = highlight
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if highlight {
		view.FrameColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}
