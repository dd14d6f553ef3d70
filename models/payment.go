package models

import "time"

type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "created"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment records a contact-reveal fee charged to a customer.
type Payment struct {
	ID        string        `bson:"id" json:"id"`
	UserID    string        `bson:"userId" json:"userId"`
	WorkerID  string        `bson:"workerId" json:"workerId"`
	Amount    int64         `bson:"amount" json:"amount"` // paisa
	Currency  string        `bson:"currency" json:"currency"`
	IntentID  string        `bson:"intentId" json:"intentId"`
	Status    PaymentStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PaymentOrder is handed to the client to complete checkout.
type PaymentOrder struct {
	PaymentID    string `json:"paymentId"`
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentVerification is the result of checking a payment with the gateway.
type PaymentVerification struct {
	IsSuccess bool         `json:"isSuccess"`
	PaymentID string       `json:"paymentId,omitempty"`
	Contact   *ContactInfo `json:"contact,omitempty"`
}
