package ui

import (
	"image"
	"math"
	"strconv"
	"strings"

	"planetsynth/internal/core"
)

// Source is what the HUD reads from: a titled parameter snapshot. Sources
// that also implement the core setter and control interfaces get +/- buttons.
type Source interface {
	core.Named
	Parameters() core.ParameterSnapshot
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 22
	buttonSize     = 16
	buttonGap      = 4
	headerBaseline = 18
	labelBaseline  = 15
	infoSpacing    = 18
	controlsTop    = panelPadding + headerBaseline + infoSpacing + 10
	scrollStep     = lineHeight * 2
)

func buildTitle(src core.Named) string {
	if src == nil {
		return "Controls"
	}
	name := src.Name()
	if name == "" {
		return "Controls"
	}
	return titleCase(name) + " Controls"
}

// titleCase upper-cases the first letter and splits camelCase words.
func titleCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func newControlStates(controls []core.ParameterControl) []hudControlState {
	out := make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		out[i] = hudControlState{control: ctrl, value: "--"}
	}
	return out
}

// layoutControls positions every row and its buttons for a panel of the
// given width. Rows start at controlsTop before scrolling.
func layoutControls(controls []hudControlState, width int) {
	for i := range controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		controls[i].top = top
		controls[i].minusRect = minusRect
		controls[i].plusRect = plusRect
	}
}

// contentHeight is the panel height needed to show every row.
func contentHeight(n int) int {
	return controlsTop + n*lineHeight + panelPadding
}

// clampScroll keeps the scroll offset within the overflow of the list.
func clampScroll(scroll, rows, height int) int {
	maxScroll := contentHeight(rows) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func refreshControlValues(controls []hudControlState, snapshot core.ParameterSnapshot) {
	for i := range controls {
		state := &controls[i]
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		default:
			state.hasValue = false
			state.value = "--"
		}
	}
}

// intTarget is the clamped value one step in direction from the current
// integer value.
func intTarget(state *hudControlState, direction int) int {
	step := int(math.Round(state.control.Step))
	if step <= 0 {
		step = 1
	}
	target := state.intValue + direction*step
	if state.control.HasMin {
		target = max(target, int(math.Round(state.control.Min)))
	}
	if state.control.HasMax {
		target = min(target, int(math.Round(state.control.Max)))
	}
	return target
}

func floatTarget(state *hudControlState, direction int) float64 {
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.floatValue + float64(direction)*step
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	return target
}

// applyAdjustment steps the control and pushes the value through the
// matching setter. It reports whether the value changed.
func applyAdjustment(state *hudControlState, direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if ints == nil {
			return false
		}
		target := intTarget(state, direction)
		if target == state.intValue || !ints.SetIntParameter(state.control.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if floats == nil {
			return false
		}
		target := floatTarget(state, direction)
		if math.Abs(target-state.floatValue) < 1e-9 || !floats.SetFloatParameter(state.control.Key, target) {
			return false
		}
		state.floatValue = target
		state.value = formatFloat(state.control, target)
		return true
	}
	return false
}

// canAdjust reports whether a step in direction would move the value.
func canAdjust(state *hudControlState, direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	if state == nil || direction == 0 || !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		return ints != nil && intTarget(state, direction) != state.intValue
	case core.ParamTypeFloat:
		return floats != nil && math.Abs(floatTarget(state, direction)-state.floatValue) >= 1e-9
	}
	return false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
