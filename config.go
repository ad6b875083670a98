package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"lightbox/internal/preview"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // file1, file2, file10
	SortSimple     = 1 // lexicographical
	SortEntryOrder = 2 // order given on the command line / in the archive
)

const (
	defaultThumbnailSize     = 160
	defaultTransitionSeconds = 0.3
	defaultFontSize          = 18.0
)

// Config status values reported in ConfigLoadResult.Status.
const (
	ConfigStatusOK      = "OK"
	ConfigStatusDefault = "Default"
	ConfigStatusWarning = "Warning"
	ConfigStatusError   = "Error"
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string
}

type Config struct {
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	// Preview behaviour
	MinScale     float64 `json:"min_scale"`
	MaxScale     float64 `json:"max_scale"`
	ScaleStep    float64 `json:"scale_step"`
	Movable      bool    `json:"movable"`
	MaskClosable bool    `json:"mask_closable"`

	// Gallery and loading
	SortMethod        int     `json:"sort_method"`
	CacheSize         int     `json:"cache_size"`
	PreloadEnabled    bool    `json:"preload_enabled"`
	PreloadCount      int     `json:"preload_count"`
	ThumbnailSize     int     `json:"thumbnail_size"`
	TransitionSeconds float64 `json:"transition_seconds"`
	FontSize          float64 `json:"font_size"`

	Keybindings   map[string][]string `json:"keybindings"`
	Mousebindings map[string][]string `json:"mousebindings"`
	Mouse         MouseSettings       `json:"mouse"`
}

// PreviewOptions returns the preview session options this config selects.
func (c Config) PreviewOptions() preview.Options {
	return preview.Options{
		MinScale:  c.MinScale,
		MaxScale:  c.MaxScale,
		ScaleStep: c.ScaleStep,
		Movable:   c.Movable,
	}
}

func defaultConfig() Config {
	return Config{
		WindowWidth:       defaultWidth,
		WindowHeight:      defaultHeight,
		MinScale:          preview.DefaultMinScale,
		MaxScale:          preview.DefaultMaxScale,
		ScaleStep:         preview.DefaultScaleStep,
		Movable:           true,
		MaskClosable:      true,
		SortMethod:        SortNatural,
		CacheSize:         16,
		PreloadEnabled:    true,
		PreloadCount:      4,
		ThumbnailSize:     defaultThumbnailSize,
		TransitionSeconds: defaultTransitionSeconds,
		FontSize:          defaultFontSize,
		Keybindings:       GetDefaultKeybindings(),
		Mousebindings:     GetDefaultMousebindings(),
		Mouse:             GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lightbox.json"
	}
	return filepath.Join(homeDir, ".lightbox.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()
	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   ConfigStatusOK,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// A missing config file is not an error
		result.Status = ConfigStatusDefault
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = ConfigStatusError
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	config.clamp()

	if w := fillAndValidateBindings(&config.Keybindings, GetDefaultKeybindings(), validateKeybindings); w != "" {
		log.Printf("Warning: Invalid keybindings detected, using defaults: %s", w)
		result.Status = ConfigStatusWarning
		result.Warnings = append(result.Warnings, "Keybinding errors: "+w)
	}
	if w := fillAndValidateBindings(&config.Mousebindings, GetDefaultMousebindings(), validateMousebindings); w != "" {
		log.Printf("Warning: Invalid mouse bindings detected, using defaults: %s", w)
		result.Status = ConfigStatusWarning
		result.Warnings = append(result.Warnings, "Mouse binding errors: "+w)
	}

	result.Config = config
	return result
}

// clamp replaces out-of-range values with defaults or the nearest bound.
func (c *Config) clamp() {
	if c.WindowWidth < minWidth {
		c.WindowWidth = defaultWidth
	}
	if c.WindowHeight < minHeight {
		c.WindowHeight = defaultHeight
	}

	if c.MinScale <= 0 {
		c.MinScale = preview.DefaultMinScale
	}
	if c.MaxScale < c.MinScale {
		c.MaxScale = max(preview.DefaultMaxScale, c.MinScale)
	}
	if c.ScaleStep <= 0 {
		c.ScaleStep = preview.DefaultScaleStep
	} else if c.ScaleStep > 4 {
		c.ScaleStep = 4
	}

	if c.SortMethod < SortNatural || c.SortMethod > SortEntryOrder {
		c.SortMethod = SortNatural
	}

	// cache size 1..64
	if c.CacheSize < 1 {
		c.CacheSize = 16
	} else if c.CacheSize > 64 {
		c.CacheSize = 64
	}

	// preload count 1..16
	if c.PreloadCount < 1 {
		c.PreloadCount = 4
	} else if c.PreloadCount > 16 {
		c.PreloadCount = 16
	}

	if c.ThumbnailSize < 48 || c.ThumbnailSize > 512 {
		c.ThumbnailSize = defaultThumbnailSize
	}

	if c.TransitionSeconds < 0 {
		c.TransitionSeconds = 0
	} else if c.TransitionSeconds > 2 {
		c.TransitionSeconds = 2
	}

	// below 12px the overlay text is unreadable
	if c.FontSize <= 12 {
		c.FontSize = defaultFontSize
	}

	if c.Mouse.DoubleClickTime <= 0 {
		c.Mouse.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}
	if c.Mouse.WheelSensitivity <= 0 {
		c.Mouse.WheelSensitivity = GetDefaultMouseSettings().WheelSensitivity
	}
}

// fillAndValidateBindings adds defaults for actions missing from *bindings
// and falls back to the defaults entirely when validation fails. It returns
// the validation error text, or "" when the bindings were accepted.
func fillAndValidateBindings(bindings *map[string][]string, defaults map[string][]string, validate func(map[string][]string) error) string {
	if *bindings == nil {
		*bindings = defaults
		return ""
	}
	for action, keys := range defaults {
		if _, exists := (*bindings)[action]; !exists {
			(*bindings)[action] = keys
		}
	}
	if err := validate(*bindings); err != nil {
		*bindings = defaults
		return err.Error()
	}
	return ""
}

// validateKeybindings checks key names, modifiers and conflicts.
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	for action, keys := range keybindings {
		if _, known := findAction(action); !known {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if _, err := parseKeyString(keyStr); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existing, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existing, action)
			}
			keyToAction[keyStr] = action
		}
	}
	return nil
}

// validateMousebindings checks button names, modifiers and conflicts.
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, buttons := range mousebindings {
		if _, known := findAction(action); !known {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, s := range buttons {
			if _, err := parseMouseString(s); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", s, action, err)
			}
			if existing, exists := seen[s]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", s, existing, action)
			}
			seen[s] = action
		}
	}
	return nil
}

// parseModifiers splits "Shift+Ctrl+X" into its modifiers and the final name.
func parseModifiers(s string) (shift, ctrl, alt bool, name string, err error) {
	parts := strings.Split(s, "+")
	name = parts[len(parts)-1]
	if name == "" {
		return false, false, false, "", fmt.Errorf("empty binding")
	}
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(m) {
		case "shift":
			shift = true
		case "ctrl":
			ctrl = true
		case "alt":
			alt = true
		default:
			return false, false, false, "", fmt.Errorf("unknown modifier: %s", m)
		}
	}
	return shift, ctrl, alt, name, nil
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

func saveConfigToPath(config Config, configPath string) error {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("invalid window size %dx%d", config.WindowWidth, config.WindowHeight)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	return nil
}
