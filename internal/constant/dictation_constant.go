package constant

// Outbound websocket frame types.
const (
	WsTypeContent = "content"
	WsTypeError   = "error"
)

// Reserved inbound values that end a dictation session (matched
// case-insensitively).
var ExitWords = []string{"exit", "quit"}

// Fixed user-visible texts. Recovered failures always show the same generic
// notice; the user never sees a partially-applied edit.
const (
	FarewellMessage  = "Conversation ended."
	SoftErrorMessage = "An error occurred processing your message. It has been logged."
)
