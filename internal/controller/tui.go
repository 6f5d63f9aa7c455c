package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	m "gooze.dev/pkg/gomutest/internal/model"
)

const maxBarWidth = 60

// TUI shows a live progress view while a run is in flight. Everything else,
// and the whole run when live output is off, is printed by the embedded SimpleUI.
type TUI struct {
	*SimpleUI
	live    bool
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a TUI. On a terminal both color and the live view are on.
func NewTUI(cmd *cobra.Command, tty bool) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd, tty), live: tty}
}

// SetLive switches the progress view on or off. It takes effect at the next StartRun.
func (t *TUI) SetLive(live bool) {
	t.live = live
}

// StartRun starts the progress view for total trials.
func (t *TUI) StartRun(ctx context.Context, total int) {
	if !t.live {
		t.SimpleUI.StartRun(ctx, total)
		return
	}

	t.program = tea.NewProgram(
		newRunModel(total, t.styles),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Warn("Progress view stopped", "error", err)
		}
	}()
}

// DisplayTrial advances the progress view.
func (t *TUI) DisplayTrial(ctx context.Context, result m.TrialResult) {
	if t.program == nil {
		t.SimpleUI.DisplayTrial(ctx, result)
		return
	}

	t.program.Send(trialMsg{result: result, line: t.trialLine(result)})
}

// FinishRun stops the progress view and waits until its last frame is drawn.
func (t *TUI) FinishRun(ctx context.Context) {
	if t.program == nil {
		t.SimpleUI.FinishRun(ctx)
		return
	}

	t.program.Send(finishMsg{})
	<-t.done

	t.program, t.done = nil, nil
}

type trialMsg struct {
	result m.TrialResult
	line   string
}

type finishMsg struct{}

// runModel is the Bubble Tea model of a mutation run.
type runModel struct {
	total    int
	tally    m.Tally
	bar      progress.Model
	spinner  spinner.Model
	styles   verdictStyles
	finished bool
}

func newRunModel(total int, styles verdictStyles) runModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return runModel{
		total:   total,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
		spinner: s,
		styles:  styles,
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trialMsg:
		rm.tally.Add(msg.result.Verdict)
		return rm, tea.Println(msg.line)

	case finishMsg:
		rm.finished = true
		return rm, tea.Quit

	case tea.WindowSizeMsg:
		rm.bar.Width = min(maxBarWidth, max(msg.Width-20, 10))
		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 1
	}

	return float64(rm.tally.Total()) / float64(rm.total)
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.finished {
		fmt.Fprintf(&b, "%d/%d mutants tried\n", rm.tally.Total(), rm.total)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %d/%d\n", rm.spinner.View(), rm.bar.ViewAs(rm.percent()), rm.tally.Total(), rm.total)
	fmt.Fprintf(&b, "  %s %d  %s %d  %s %d  %s %d\n",
		rm.styles.render(m.Detected), rm.tally.Detected,
		rm.styles.render(m.Survived), rm.tally.Survived,
		rm.styles.render(m.Errored), rm.tally.Errored,
		rm.styles.render(m.Unknown), rm.tally.Unknown,
	)

	return b.String()
}
