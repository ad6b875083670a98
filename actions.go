package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
	// PreviewOnly actions do nothing while the gallery is shown.
	PreviewOnly bool
}

// actionDefinitions lists every bindable action. Order is the help screen order.
var actionDefinitions = []ActionDefinition{
	{"close", []string{"Escape"}, []string{}, "Close preview (quit from gallery)", false},
	{"exit", []string{"KeyQ"}, []string{}, "Quit application", false},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help", false},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display", false},
	{"fullscreen", []string{"Enter"}, []string{}, "Toggle fullscreen", false},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{}, "Cycle sort method (Natural/Simple/Entry)", false},

	{"previous", []string{"ArrowLeft", "KeyP"}, []string{"Back"}, "Previous image in group", true},
	{"next", []string{"ArrowRight", "KeyN"}, []string{"Forward"}, "Next image in group", true},

	{"zoom_in", []string{"Equal", "Shift+Equal"}, []string{}, "Zoom in", true},
	{"zoom_out", []string{"Minus"}, []string{}, "Zoom out", true},
	{"rotate_left", []string{"KeyL"}, []string{}, "Rotate left 90 degrees", true},
	{"rotate_right", []string{"KeyR"}, []string{}, "Rotate right 90 degrees", true},
	{"flip_x", []string{"KeyH"}, []string{}, "Flip horizontally", true},
	{"flip_y", []string{"KeyV"}, []string{}, "Flip vertically", true},
	{"reset", []string{"Key0"}, []string{"MiddleClick"}, "Reset zoom, rotation and flips", true},
}

func findAction(name string) (ActionDefinition, bool) {
	for _, a := range actionDefinitions {
		if a.Name == name {
			return a, true
		}
	}
	return ActionDefinition{}, false
}

// ActionExecutor maps action names onto InputActions. Keyboard, mouse and
// toolbar input all go through it.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction runs action and reports whether it was handled.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	def, known := findAction(action)
	if !known {
		return false
	}
	if def.PreviewOnly && !inputState.IsPreviewOpen() {
		return false
	}

	switch action {
	case "close":
		if !inputActions.ClosePreview() {
			inputActions.Exit()
		}
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "previous":
		return inputActions.NavigatePrevious()
	case "next":
		return inputActions.NavigateNext()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "rotate_left":
		inputActions.RotateLeft()
	case "rotate_right":
		inputActions.RotateRight()
	case "flip_x":
		inputActions.FlipHorizontal()
	case "flip_y":
		inputActions.FlipVertical()
	case "reset":
		inputActions.ResetTransform()
	default:
		return false
	}
	return true
}

// globalActionExecutor is shared by the keyboard, mouse and toolbar paths.
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
