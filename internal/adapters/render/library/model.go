package library

import (
	"errors"
	"io"

	"github.com/bnema/audiolib/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	views  []application.LibraryView
	opts   RenderOptions
	styles styles
	output string
}

func newModel(views []application.LibraryView, opts RenderOptions) model {
	return model{
		views:  views,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		if m.opts.Summary {
			m.output = renderSummary(m.views, m.styles)
		} else {
			m.output = renderViews(m.views, m.opts, m.styles)
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the resolved keys of each library.
func Render(views []application.LibraryView, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(views, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
