package domain

type NotificationKind int

const (
	NotificationSuccess NotificationKind = iota
	NotificationError
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	default:
		return "unknown"
	}
}

type Notification struct {
	ID      uint64
	Message string
	Kind    NotificationKind
}
