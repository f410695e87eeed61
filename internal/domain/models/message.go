package models

import "time"

// MessageThread is a buyer/seller conversation attached to a property.
// The buyer opens the thread; the property's seller is the other
// participant. Only participants may read or post.
type MessageThread struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Participant reports whether the given principal ID belongs to the
// thread.
func (t *MessageThread) Participant(principalID string) bool {
	return principalID == t.BuyerID || principalID == t.SellerID
}

// Message is a single post inside a thread.
type Message struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
