package cli

import "github.com/easyflowhq/easyflow/internal/client/session"

// terminalNotifier surfaces session events in the REPL output stream. The
// prompt is redrawn on the next loop iteration, so a plain line suffices.
type terminalNotifier struct{}

func (terminalNotifier) Notify(notice session.Notice, message string) {
	printlnFn(message)
}
