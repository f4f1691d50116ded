package library

import (
	"testing"
	"time"

	"github.com/bnema/audiolib/internal/application"
	"github.com/bnema/audiolib/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelView() application.LibraryView {
	return application.LibraryView{
		ID:     "level1",
		Name:   "Level one",
		Parent: "base",
		Chain:  []domain.LibraryID{"level1", "base"},
		Keys: []application.KeyView{
			{Key: "win", Origin: application.KeyOverride, Source: "level1", Clips: []domain.ClipID{"jingle"}, Mode: domain.SelectionSequential, Volume: 0.5},
			{Key: "door", Origin: application.KeyLocal, Source: "level1", Clips: []domain.ClipID{"creak", "squeak"}, Mode: domain.SelectionRandom, Volume: 1, Route: "sfx"},
			{Key: "lose", Origin: application.KeyInherited, Source: "base", Clips: []domain.ClipID{"sad"}, Mode: domain.SelectionSequential, Volume: 0.7, Delay: 250 * time.Millisecond},
		},
		Inherited: []string{"lose"},
	}
}

func TestRenderLibraryKeys(t *testing.T) {
	output, err := Render([]application.LibraryView{levelView()}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Level one (level1)")
	assert.Contains(t, output, "chain: level1 -> base")
	assert.Contains(t, output, "* win")
	assert.Contains(t, output, "[=====-----]")
	assert.Contains(t, output, "+ door")
	assert.Contains(t, output, "creak squeak (random)")
	assert.Contains(t, output, "route sfx")
	assert.Contains(t, output, "^ lose")
	assert.Contains(t, output, "delay 250ms")
	assert.Contains(t, output, "from base")
	assert.NotContains(t, output, "[master]")
}

func TestRenderLibraryLocalOnly(t *testing.T) {
	output, err := Render([]application.LibraryView{levelView()}, RenderOptions{LocalOnly: true})

	require.NoError(t, err)
	assert.Contains(t, output, "win")
	assert.Contains(t, output, "door")
	assert.NotContains(t, output, "lose")
}

func TestRenderLibraryWithoutKeys(t *testing.T) {
	output, err := Render([]application.LibraryView{{ID: "base", Master: true, Chain: []domain.LibraryID{"base"}}}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "base [master]")
	assert.Contains(t, output, "No keys.")
}

func TestRenderSummary(t *testing.T) {
	base := application.LibraryView{ID: "base", Name: "base", Master: true, Chain: []domain.LibraryID{"base"}, Keys: []application.KeyView{
		{Key: "win", Origin: application.KeyLocal},
		{Key: "lose", Origin: application.KeyLocal},
	}}

	output, err := Render([]application.LibraryView{base, levelView()}, RenderOptions{Summary: true})

	require.NoError(t, err)
	assert.Contains(t, output, "libraries: 2")
	assert.Contains(t, output, "base [master] keys: 2, overrides: 0, inherited: 0")
	assert.Contains(t, output, "Level one (level1) keys: 2, overrides: 1, inherited: 1")
}

func TestRenderNoLibraries(t *testing.T) {
	output, err := Render(nil, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "No libraries configured.")

	output, err = Render(nil, RenderOptions{Summary: true})
	require.NoError(t, err)
	assert.Contains(t, output, "libraries: 0")
}
