package services

import "github.com/sirupsen/logrus"

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyError   NotificationLevel = "error"
)

// Notifier delivers user-visible outcomes of board operations, such as toasts
type Notifier interface {
	Notify(level NotificationLevel, message string)
}

// LogNotifier writes notifications to the log
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(level NotificationLevel, message string) {
	entry := n.log.WithField("notification", string(level))
	if level == NotifyError {
		entry.Warn(message)
		return
	}
	entry.Info(message)
}
