// Package beta holds the Beta Industries capability variants.
package beta

import (
	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/notification"
)

// SubjectPrefix brands every Beta notification subject line.
const SubjectPrefix = "Beta Portal"

// NewNotificationService builds the Beta variant of the notification
// capability: the default delivery pipeline with Beta's subject
// template.
func NewNotificationService(configs orderly.EmailConfigStore, mailer notification.Mailer, log *zap.Logger) orderly.NotificationService {
	return notification.NewService(configs, mailer, log,
		notification.WithSubjectPrefix(SubjectPrefix))
}
