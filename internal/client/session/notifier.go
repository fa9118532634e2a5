package session

// Notice distinguishes the forced-logout variants so the UI can show
// different copy for an expired session vs an outright rejection.
type Notice string

const (
	NoticeSessionExpired Notice = "session_expired"
	NoticeUnauthorized   Notice = "unauthorized"
)

// Notifier receives user-visible session events.
type Notifier interface {
	Notify(notice Notice, message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(notice Notice, message string) {}
