package models

import "github.com/angelmondragon/storefront-vault/pkg/enums"

// CustomProtocol is a named operational toggle defined by staff.
type CustomProtocol struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Enabled bool   `json:"enabled"`
}

type MessagingSettings struct {
	PostPickupEnabled bool                   `json:"postPickupEnabled"`
	Channel           enums.MessagingChannel `json:"channel"`
	DelayMinutes      int                    `json:"delayMinutes" validate:"gte=0"`
	Style             enums.MessageStyle     `json:"style"`
	AIPersonalization bool                   `json:"aiPersonalization"`
	SMSTemplate       string                 `json:"smsTemplate"`
	EmailTemplate     string                 `json:"emailTemplate"`
}

type LoyaltySettings struct {
	Enabled           bool   `json:"enabled"`
	PointsPerDollar   int    `json:"pointsPerDollar" validate:"gte=0"`
	RewardThreshold   int    `json:"rewardThreshold" validate:"gte=0"`
	RewardDescription string `json:"rewardDescription"`
}

// SourceSyncSettings tracks the linked backup repository.
type SourceSyncSettings struct {
	Enabled    bool   `json:"enabled"`
	Connected  bool   `json:"connected"`
	RepoName   string `json:"repoName"`
	LastSync   string `json:"lastSync"`
	AutoCommit bool   `json:"autoCommit"`
	Token      string `json:"token,omitempty"`
}

// StoreSettings is the single process-wide configuration aggregate.
type StoreSettings struct {
	LogoURL               string `json:"logoUrl"`
	PickupOn              bool   `json:"pickupOn"`
	DeliveryOn            bool   `json:"deliveryOn"`
	LocationRequirementOn bool   `json:"locationRequirementOn"`
	BobbyProOn            bool   `json:"bobbyProOn"`
	NotificationsOn       bool   `json:"notificationsOn"`
	AlarmSoundOn          bool   `json:"alarmSoundOn"`
	StoreHours            string `json:"storeHours"`
	StoreAddress          string `json:"storeAddress"`
	PrepTime              string `json:"prepTime"`

	AdminPasswordEnabled bool   `json:"adminPasswordEnabled"`
	AdminPassword        string `json:"adminPassword"`
	CustomerPinEnabled   bool   `json:"customerPinEnabled"`
	CustomerPin          string `json:"customerPin"`
	AutoLockTimeout      int    `json:"autoLockTimeout" validate:"gte=0"`

	IsStoreOpen            bool             `json:"isStoreOpen"`
	AIScannerEnabled       bool             `json:"aiScannerEnabled"`
	OnlinePaymentsEnabled  bool             `json:"onlinePaymentsEnabled"`
	LocalVisibilityEnabled bool             `json:"localVisibilityEnabled"`
	CustomProtocols        []CustomProtocol `json:"customProtocols" validate:"dive"`

	Messaging  MessagingSettings  `json:"messaging"`
	Loyalty    LoyaltySettings    `json:"loyalty"`
	SourceSync SourceSyncSettings `json:"github"`
}

func (s StoreSettings) Clone() StoreSettings {
	out := s
	out.CustomProtocols = append([]CustomProtocol{}, s.CustomProtocols...)
	return out
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		LogoURL:               "https://images.unsplash.com/photo-1596755389378-c31d21fd1273?auto=format&fit=crop&q=80&w=200&h=200",
		PickupOn:              true,
		LocationRequirementOn: true,
		BobbyProOn:            true,
		NotificationsOn:       true,
		AlarmSoundOn:          true,
		StoreHours:            "9:00 AM - 10:00 PM",
		StoreAddress:          "123 Emerald Way, Green City, CA",
		PrepTime:              "15-30 min",

		AdminPassword:   "admin",
		CustomerPin:     "0000",
		AutoLockTimeout: 60,

		AIScannerEnabled:       true,
		LocalVisibilityEnabled: true,
		CustomProtocols:        []CustomProtocol{},

		Messaging: MessagingSettings{
			Channel:           enums.MessagingChannelSMS,
			Style:             enums.MessageStyleFriendly,
			AIPersonalization: true,
			SMSTemplate:       "Thanks for shopping with Premium Rambo! Pickup complete. Enjoy responsibly (21+). Want recommendations next time? Reply 'MENU'.",
			EmailTemplate:     "Thanks for your pickup at Premium Rambo! Your order is complete. We hope you enjoy your selection responsibly (21+). See you next time!",
		},
		Loyalty: LoyaltySettings{
			Enabled:           true,
			PointsPerDollar:   1,
			RewardThreshold:   100,
			RewardDescription: "Free Exotic 1g Pre-Roll",
		},
		SourceSync: SourceSyncSettings{
			RepoName:   "premium-rambo-vault",
			LastSync:   "Never",
			AutoCommit: true,
		},
	}
}
