package ctdf

type Notification struct {
	TargetUser string
	Type       NotificationType

	Title   string
	Message string
}

type NotificationType string

const (
	NotificationTypeDelayAlert        NotificationType = "delay_alert"
	NotificationTypePlatformChange    NotificationType = "platform_change"
	NotificationTypeArrivalReminder   NotificationType = "arrival_reminder"
	NotificationTypeDepartureReminder NotificationType = "departure_reminder"
	NotificationTypePNRUpdate         NotificationType = "pnr_update"
	NotificationTypeTrainCancelled    NotificationType = "train_cancelled"
)
