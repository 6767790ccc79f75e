package models

import (
	"time"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
)

// MessageLog records one post-pickup message and its delivery outcome.
type MessageLog struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customerName"`
	OrderID      string               `json:"orderId"`
	Channel      enums.MessageChannel `json:"channel"`
	Status       enums.MessageStatus  `json:"status"`
	Timestamp    time.Time            `json:"timestamp"`
	Content      string               `json:"content"`
	Recipient    string               `json:"recipient,omitempty"`
	Error        string               `json:"error,omitempty"`
}
