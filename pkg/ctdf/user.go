package ctdf

import "time"

type User struct {
	ID          string          `json:"id" yaml:"id"`
	Phone       string          `json:"phone" yaml:"phone"`
	Email       *string         `json:"email" yaml:"email,omitempty"`
	Name        *string         `json:"name" yaml:"name,omitempty"`
	Preferences UserPreferences `json:"preferences" yaml:"preferences"`
	CreatedAt   string          `json:"createdAt" yaml:"createdAt"`
}

type UserPreferences struct {
	Notifications *NotificationPreferences `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	DefaultClass  string                   `json:"defaultClass,omitempty" yaml:"defaultClass,omitempty"`
	DefaultQuota  string                   `json:"defaultQuota,omitempty" yaml:"defaultQuota,omitempty"`
}

type NotificationPreferences struct {
	DelayAlerts        *bool `json:"delayAlerts,omitempty" yaml:"delayAlerts,omitempty"`
	PlatformChanges    *bool `json:"platformChanges,omitempty" yaml:"platformChanges,omitempty"`
	ArrivalReminders   *bool `json:"arrivalReminders,omitempty" yaml:"arrivalReminders,omitempty"`
	DepartureReminders *bool `json:"departureReminders,omitempty" yaml:"departureReminders,omitempty"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type LoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
}

type UserPushNotificationTarget struct {
	UserID                string
	PushNotificationToken string

	ModificationDateTime time.Time
}
