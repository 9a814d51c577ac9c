package formatter

import (
	"fmt"
	"slices"
)

// DefaultPreset is used when no status format is configured.
const DefaultPreset = "compact"

// Preset is a named status template.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry looks up presets by name.
type PresetRegistry interface {
	Get(name string) (*Preset, error)
	List() []Preset
	Register(preset Preset) error
}

// presetList keeps presets in registration order.
type presetList struct {
	presets []Preset
	engine  TemplateEngine
}

var builtinPresets = []Preset{
	{"compact", "${server}/${channel} [${nick}]", "Current buffer and nick"},
	{"detailed", "${server}/${channel} as ${nick} | ${line-count} lines | ${server-count} servers, ${buffer-count} channels", "Current buffer with line and buffer counts"},
	{"latest", "${channel} <${latest-nick}> ${latest-message}", "Newest line of the current buffer"},
	{"count-only", "${total-lines}", "Lines across all buffers"},
}

// NewPresetRegistry returns a registry holding the built-in presets.
func NewPresetRegistry() PresetRegistry {
	return &presetList{
		presets: slices.Clone(builtinPresets),
		engine:  NewTemplateEngine(),
	}
}

func (l *presetList) index(name string) int {
	return slices.IndexFunc(l.presets, func(p Preset) bool { return p.Name == name })
}

func (l *presetList) Get(name string) (*Preset, error) {
	i := l.index(name)
	if i < 0 {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	p := l.presets[i]
	return &p, nil
}

func (l *presetList) List() []Preset {
	return slices.Clone(l.presets)
}

// Register adds preset, replacing a preset with the same name in place.
// The template must parse and only use known variables.
func (l *presetList) Register(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset %s: template cannot be empty", preset.Name)
	}
	names, err := l.engine.Parse(preset.Template)
	if err != nil {
		return fmt.Errorf("preset %s: %w", preset.Name, err)
	}
	for _, n := range names {
		if !slices.Contains(Variables, n) {
			return fmt.Errorf("preset %s: unknown variable %q", preset.Name, n)
		}
	}

	if i := l.index(preset.Name); i >= 0 {
		l.presets[i] = preset
	} else {
		l.presets = append(l.presets, preset)
	}
	return nil
}

// Render formats ctx with format, which is either a preset name or a
// template. An empty format uses DefaultPreset.
func Render(registry PresetRegistry, engine TemplateEngine, format string, ctx VariableContext) (string, error) {
	if format == "" {
		format = DefaultPreset
	}
	if preset, err := registry.Get(format); err == nil {
		format = preset.Template
	}
	return engine.Substitute(format, ctx)
}
