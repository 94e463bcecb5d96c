package session

import (
	"net/http"
)

const (
	// Default Flash Class
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"

	// Default Flash Msg
	ContactUsErr   = "Uh oh! We've run into an issue. Please email %s for help."
	BadCredsMsg    = "Hmm... check those credentials."
	BadInputMsg    = "Hmm... check your form, something isn't correct."
	DefaultErrMsg  = "Uh oh! We've run into an issue."
	EmailTakenMsg  = "An account with that email already exists."
	ExpiredMsg     = "Your session has expired. Please log in again."
	LinkSentMsg    = "Email sent! Please open the link in your email to reset your password."
	NoAccessMsg    = "Oops, sending you back somewhere safe."
	WeakPassMsg    = "Please choose a stronger password."
	TradeDoneMsg   = "Trade submitted."
	TradeFailedMsg = "The trade could not be completed: %s"
)

type FlashSessionable interface {
	Flashes(w http.ResponseWriter, r *http.Request) []Flash
	SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error
}

// A Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}
