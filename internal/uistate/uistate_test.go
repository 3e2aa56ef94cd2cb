package uistate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classSet map[string]bool

func (c classSet) Add(class string)    { c[class] = true }
func (c classSet) Remove(class string) { delete(c, class) }

func TestThemeDefaultsToDark(t *testing.T) {
	s := New()
	assert.Equal(t, ThemeDark, s.Theme.Current())
	assert.Equal(t, DarkClass, s.Theme.BodyClass())
}

func TestThemeToggle(t *testing.T) {
	theme := NewThemeState()
	assert.Equal(t, ThemeLight, theme.Toggle())
	assert.Equal(t, "", theme.BodyClass())
	assert.Equal(t, ThemeDark, theme.Toggle())
}

func TestThemeReflectsOnBoundClassList(t *testing.T) {
	theme := NewThemeState()
	body := classSet{"layout": true}

	theme.Bind(body)
	assert.True(t, body[DarkClass])

	theme.Toggle()
	assert.False(t, body[DarkClass])
	assert.True(t, body["layout"])

	theme.Set(ThemeDark)
	assert.True(t, body[DarkClass])
}

func TestThemeWithoutClassList(t *testing.T) {
	theme := NewThemeState()
	assert.NotPanics(t, func() {
		theme.Toggle()
		theme.Set(ThemeDark)
	})
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("light")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestPopoverCloseKeepsPayload(t *testing.T) {
	p := NewPopoverState()
	initial := p.Snapshot()
	assert.False(t, initial.IsOpen)
	assert.Equal(t, "", initial.ContentComponent)
	assert.Empty(t, initial.Props)

	p.Open("A", map[string]any{"x": 1})
	opened := p.Snapshot()
	assert.True(t, opened.IsOpen)

	p.Close()
	closed := p.Snapshot()
	assert.False(t, closed.IsOpen)
	assert.Equal(t, "A", closed.ContentComponent)
	assert.Equal(t, map[string]any{"x": 1}, closed.Props)
}

func TestPopoverOpenReplacesPayload(t *testing.T) {
	p := NewPopoverState()
	p.Open("A", map[string]any{"x": 1})
	p.Open("B", nil)

	s := p.Snapshot()
	assert.Equal(t, "B", s.ContentComponent)
	assert.NotNil(t, s.Props)
	assert.Empty(t, s.Props)
}

func TestPopoverSnapshotIsACopy(t *testing.T) {
	p := NewPopoverState()
	props := map[string]any{"x": 1}
	p.Open("A", props)
	props["x"] = 2

	s := p.Snapshot()
	s.Props["y"] = 3
	assert.Equal(t, map[string]any{"x": 1}, p.Snapshot().Props)
}

func TestConveyor(t *testing.T) {
	c := &ConveyorState{}
	assert.False(t, c.IsWorking())
	c.Start()
	assert.True(t, c.IsWorking())
	c.Stop()
	assert.False(t, c.IsWorking())
}

func TestCenterPosition(t *testing.T) {
	style := CenterPosition(1000, 800, 200, 100)
	assert.Equal(t, "fixed", style.Position)
	assert.Equal(t, "400px", style.Left)
	assert.Equal(t, "350px", style.Top)

	style = CenterPosition(101, 50, 0, 100)
	assert.Equal(t, "50.5px", style.Left)
	assert.Equal(t, "-25px", style.Top)
}

func TestStateIsSafeForConcurrentUse(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Theme.Toggle()
			s.Popover.Open("A", map[string]any{"i": 1})
			s.Popover.Close()
			s.Conveyor.Start()
			_ = s.Popover.Snapshot()
		}()
	}
	wg.Wait()
	assert.True(t, s.Conveyor.IsWorking())
	assert.Equal(t, ThemeDark, s.Theme.Current())
}
