package enums

import "fmt"

// MessagingChannel is the configured post-pickup delivery route.
type MessagingChannel string

const (
	MessagingChannelSMS   MessagingChannel = "sms"
	MessagingChannelEmail MessagingChannel = "email"
	MessagingChannelBoth  MessagingChannel = "both"
)

var validMessagingChannels = []MessagingChannel{
	MessagingChannelSMS,
	MessagingChannelEmail,
	MessagingChannelBoth,
}

func (c MessagingChannel) String() string {
	return string(c)
}

func (c MessagingChannel) IsValid() bool {
	for _, candidate := range validMessagingChannels {
		if candidate == c {
			return true
		}
	}
	return false
}

// Channels expands the setting into concrete delivery channels.
func (c MessagingChannel) Channels() []MessageChannel {
	switch c {
	case MessagingChannelSMS:
		return []MessageChannel{MessageChannelSMS}
	case MessagingChannelEmail:
		return []MessageChannel{MessageChannelEmail}
	case MessagingChannelBoth:
		return []MessageChannel{MessageChannelSMS, MessageChannelEmail}
	}
	return nil
}

// ParseMessagingChannel converts raw input into a MessagingChannel.
func ParseMessagingChannel(value string) (MessagingChannel, error) {
	for _, candidate := range validMessagingChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid messaging channel %q", value)
}

// MessageChannel is the route a single message log entry was sent on.
type MessageChannel string

const (
	MessageChannelSMS   MessageChannel = "sms"
	MessageChannelEmail MessageChannel = "email"
)

func (c MessageChannel) String() string {
	return string(c)
}

// MessageStatus tracks delivery of a message log entry.
type MessageStatus string

const (
	MessageStatusPending MessageStatus = "pending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusFailed  MessageStatus = "failed"
)

func (s MessageStatus) String() string {
	return string(s)
}

// MessageStyle controls the tone of generated thank-you messages.
type MessageStyle string

const (
	MessageStyleFriendly MessageStyle = "friendly"
	MessageStylePremium  MessageStyle = "premium"
)

var validMessageStyles = []MessageStyle{MessageStyleFriendly, MessageStylePremium}

func (s MessageStyle) String() string {
	return string(s)
}

func (s MessageStyle) IsValid() bool {
	for _, candidate := range validMessageStyles {
		if candidate == s {
			return true
		}
	}
	return false
}
