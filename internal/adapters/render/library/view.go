package library

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/audiolib/internal/application"
	"github.com/bnema/audiolib/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const volumeBarWidth = 10

type RenderOptions struct {
	// Summary renders one line per library instead of its keys.
	Summary bool
	// LocalOnly hides inherited keys.
	LocalOnly bool
}

func renderViews(views []application.LibraryView, opts RenderOptions, s styles) string {
	if len(views) == 0 {
		return s.empty.Render("No libraries configured.")
	}

	sections := make([]string, 0, len(views))
	for i, view := range views {
		section := renderLibrary(view, opts, s)
		if i > 0 {
			section = s.section.Render(section)
		}
		sections = append(sections, section)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderLibrary(view application.LibraryView, opts RenderOptions, s styles) string {
	lines := []string{
		s.library.Render(libraryTitle(view)),
		s.header.Render("chain: " + chainLabel(view.Chain)),
	}

	keys := make([]application.KeyView, 0, len(view.Keys))
	for _, key := range view.Keys {
		if opts.LocalOnly && key.Origin == application.KeyInherited {
			continue
		}
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		lines = append(lines, s.empty.Render("No keys."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := 0
	for _, key := range keys {
		width = max(width, lipgloss.Width(key.Key))
	}
	for _, key := range keys {
		lines = append(lines, keyLine(key, width, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummary(views []application.LibraryView, s styles) string {
	lines := []string{
		s.title.Render("Audio Libraries"),
		s.header.Render(fmt.Sprintf("libraries: %d", len(views))),
	}

	if len(views) == 0 {
		lines = append(lines, s.empty.Render("No libraries configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, view := range views {
		overrides := 0
		for _, key := range view.Keys {
			if key.Origin == application.KeyOverride {
				overrides++
			}
		}

		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.library.Render(libraryTitle(view)),
			" ",
			s.meta.Render(fmt.Sprintf("keys: %d, overrides: %d, inherited: %d",
				len(view.Keys)-len(view.Inherited), overrides, len(view.Inherited))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func libraryTitle(view application.LibraryView) string {
	title := string(view.ID)
	if view.Name != "" && view.Name != title {
		title = fmt.Sprintf("%s (%s)", view.Name, view.ID)
	}
	if view.Master {
		title += " [master]"
	}
	return title
}

func chainLabel(chain []domain.LibraryID) string {
	parts := make([]string, 0, len(chain))
	for _, id := range chain {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, " -> ")
}

func keyLine(key application.KeyView, width int, s styles) string {
	marker, markerStyle := originMarker(key.Origin, s)

	details := []string{clipsLabel(key)}
	if key.Route != "" {
		details = append(details, "route "+string(key.Route))
	}
	if key.Delay > 0 {
		details = append(details, "delay "+key.Delay.String())
	}
	if key.Origin == application.KeyInherited {
		details = append(details, "from "+string(key.Source))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		markerStyle.Render(marker),
		" ",
		s.key.Render(fmt.Sprintf("%-*s", width, key.Key)),
		" ",
		renderVolumeBar(key.Volume, volumeBarWidth, s),
		" ",
		s.meta.Render(strings.Join(details, ", ")),
	)
}

func originMarker(origin application.KeyOrigin, s styles) (string, lipgloss.Style) {
	switch origin {
	case application.KeyOverride:
		return "*", s.override
	case application.KeyInherited:
		return "^", s.inherited
	default:
		return "+", s.local
	}
}

func clipsLabel(key application.KeyView) string {
	if len(key.Clips) == 0 {
		return "no clips"
	}

	names := make([]string, 0, len(key.Clips))
	for _, clip := range key.Clips {
		names = append(names, string(clip))
	}
	label := strings.Join(names, " ")
	if len(key.Clips) > 1 {
		label += fmt.Sprintf(" (%s)", key.Mode)
	}
	return label
}

func renderVolumeBar(volume float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * math.Max(0, math.Min(1, volume))))
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}
