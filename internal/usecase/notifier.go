package usecase

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(NoticeLevel, string) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
