package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// KeybindRegistry resolves pressed keys to named actions using the
// user's keybinding configuration.
type KeybindRegistry struct {
	keyToAction map[string]string
}

// NewKeybindRegistry builds a registry from user config. Later sections do
// not override earlier ones, so duplicate keys keep their first action.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	r := &KeybindRegistry{keyToAction: make(map[string]string)}
	r.addSection(cfg.Keybindings.Windows)
	r.addSection(cfg.Keybindings.Pages)
	r.addSection(cfg.Keybindings.System)
	return r
}

func (r *KeybindRegistry) addSection(section map[string][]string) {
	for action, keys := range section {
		for _, key := range keys {
			if _, exists := r.keyToAction[key]; !exists {
				r.keyToAction[key] = action
			}
		}
	}
}

// GetAction returns the action bound to a key, or "" if unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	return r.keyToAction[key]
}

// Keys returns the keys bound to an action, for help display.
func (r *KeybindRegistry) Keys(action string) []string {
	var keys []string
	for key, a := range r.keyToAction {
		if a == action {
			keys = append(keys, key)
		}
	}
	return keys
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil, defaults are used.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	sections := []KeybindingSection{}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, "close_window", "Close window")
	addBinding(&windows, registry, "minimize_window", "Minimize window")
	addBinding(&windows, registry, "maximize_window", "Maximize window")
	addBinding(&windows, registry, "restore_all", "Restore all minimized")
	addBinding(&windows, registry, "next_window", "Next window")
	addBinding(&windows, registry, "prev_window", "Previous window")
	if len(windows.Bindings) > 0 {
		sections = append(sections, windows)
	}

	pages := KeybindingSection{Title: "PAGES"}
	addBinding(&pages, registry, "open_monitor", "Open system monitor")
	addBinding(&pages, registry, "open_logs", "Open log viewer")
	addBinding(&pages, registry, "open_notes", "Open notes")
	addBinding(&pages, registry, "open_about", "Open about")
	if len(pages.Bindings) > 0 {
		sections = append(sections, pages)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "toggle_help", "Toggle help")
	addBinding(&system, registry, "quit", "Quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	return sections
}

func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.Keys(action)
	if len(keys) == 0 {
		return
	}
	display := keys[0]
	for _, k := range keys[1:] {
		display += "/" + k
	}
	section.Bindings = append(section.Bindings, Keybinding{Key: display, Description: description})
}
