package domain

import "time"

// WebPushNotification is the browser notification block of a push message.
type WebPushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushMessage is a provider-neutral push payload addressed to one device.
// Data duplicates the title and body so web clients can render the
// notification themselves when the app is in the foreground.
type PushMessage struct {
	Token   string
	WebPush WebPushNotification
	Data    map[string]string
}

// NewPushMessage builds the payload for a device. Empty fields are kept as
// they are; the provider decides whether the message is acceptable.
func NewPushMessage(token, title, body string) PushMessage {
	return PushMessage{
		Token: token,
		WebPush: WebPushNotification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"title": title,
			"body":  body,
		},
	}
}

// PushReceipt is returned by a provider after accepting a message.
type PushReceipt struct {
	MessageID string
	SentAt    time.Time
}

// InAppNotification is the frame delivered to connected dashboard clients.
type InAppNotification struct {
	Type      string    `json:"type"`
	MessageID string    `json:"messageId,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

const InAppNotificationType = "NOTIFICATION"

// NewInAppNotification mirrors a sent push message for the in-app channel.
func NewInAppNotification(msg PushMessage, receipt PushReceipt) InAppNotification {
	return InAppNotification{
		Type:      InAppNotificationType,
		MessageID: receipt.MessageID,
		Title:     msg.WebPush.Title,
		Body:      msg.WebPush.Body,
		SentAt:    receipt.SentAt,
	}
}
