package telegram

import "strings"

// Callback action constants.
const (
	actionPlay     = "play"
	actionMenu     = "menu"
	actionAnswer   = "answer"
	actionLifeline = "lifeline"
	actionReveal   = "reveal"
	actionSettings = "settings"
	actionDev      = "dev"
)

// Lifeline sub-actions.
const (
	lifelineFifty  = "fifty"
	lifelinePhone  = "phone"
	lifelineSwitch = "switch"
)

// Settings sub-actions.
const (
	settingsTimer        = "timer"
	settingsDevMode      = "dev_mode"
	settingsReset        = "reset"
	settingsResetConfirm = "reset_confirm"
	settingsClose        = "close"
)

// Developer sub-actions.
const (
	devForceCorrect = "force"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}
