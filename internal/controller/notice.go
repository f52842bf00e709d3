package controller

import "fmt"

// NoticeKind identifies what a Notice reports.
type NoticeKind int

const (
	NoticePlaced NoticeKind = iota
	NoticeRejected
	NoticeMoved
	NoticeDeleted
	NoticeCleared
	NoticeUndone
	NoticeRedone
	NoticeHistoryBoundary
)

func (k NoticeKind) String() string {
	switch k {
	case NoticePlaced:
		return "placed"
	case NoticeRejected:
		return "rejected"
	case NoticeMoved:
		return "moved"
	case NoticeDeleted:
		return "deleted"
	case NoticeCleared:
		return "cleared"
	case NoticeUndone:
		return "undone"
	case NoticeRedone:
		return "redone"
	case NoticeHistoryBoundary:
		return "history-boundary"
	default:
		return fmt.Sprintf("NoticeKind(%d)", int(k))
	}
}

// Notice is a user-facing message about something the controller did or
// refused to do.
type Notice struct {
	Kind    NoticeKind
	Message string
	Detail  string
	Count   int
}

// Warning reports whether the notice describes a refused action.
func (n Notice) Warning() bool {
	return n.Kind == NoticeRejected || n.Kind == NoticeHistoryBoundary
}

// Notifier receives notices. Notify must not call back into the controller.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}
