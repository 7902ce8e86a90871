package surface

import (
	"strconv"
	"strings"

	"planetsynth/internal/core"
	"planetsynth/pkg/params"
)

// Parameters renders the current vector grouped the way the schema is.
func (e *Editor) Parameters() core.ParameterSnapshot {
	v := e.Vector()
	var groups []core.ParameterGroup
	for _, name := range params.Groups() {
		g := core.ParameterGroup{Name: groupTitle(name)}
		for _, s := range params.Schema() {
			if s.Group != name {
				continue
			}
			switch {
			case s.Kind == params.KindString:
				g.Params = append(g.Params, colorParam(s.Key, s.Label, v.Color(s.Key).Hex(), s.Description))
			case s.Integer:
				g.Params = append(g.Params, intParam(s.Key, s.Label, int(v.Float(s.Key)), s.Description))
			default:
				g.Params = append(g.Params, floatParam(s.Key, s.Label, v.Float(s.Key), s.Description))
			}
		}
		groups = append(groups, g)
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls exposes every bounded numeric field to the HUD.
func (e *Editor) ParameterControls() []core.ParameterControl {
	var out []core.ParameterControl
	for _, s := range params.Schema() {
		if s.Kind != params.KindNumber || !s.Bounded() {
			continue
		}
		c := core.ParameterControl{
			Key:    s.Key,
			Label:  s.Label,
			Type:   core.ParamTypeFloat,
			Step:   s.Step,
			Min:    s.Min,
			Max:    s.Max,
			HasMin: true,
			HasMax: true,
		}
		if s.Integer {
			c.Type = core.ParamTypeInt
		}
		out = append(out, c)
	}
	return out
}

func groupTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func intParam(key, label string, value int, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeInt,
		Value:       strconv.Itoa(value),
		Description: desc,
	}
}

func floatParam(key, label string, value float64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeFloat,
		Value:       strconv.FormatFloat(value, 'f', -1, 64),
		Description: desc,
	}
}

func colorParam(key, label, hex, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeColor,
		Value:       hex,
		Description: desc,
	}
}
