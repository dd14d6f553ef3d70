package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a completed booking. One per booking.
type Review struct {
	ID             string    `bson:"id" json:"id"`
	BookingID      string    `bson:"bookingId" json:"bookingId"`
	WorkerID       string    `bson:"workerId" json:"workerId"`
	CustomerID     string    `bson:"customerId" json:"customerId"`
	CustomerName   string    `bson:"customerName" json:"customerName"`
	CustomerAvatar string    `bson:"customerAvatar" json:"customerAvatar"`
	Rating         int       `bson:"rating" json:"rating"`
	Comment        string    `bson:"comment" json:"comment"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// SubmitReviewInput carries everything the aggregator needs for one review.
type SubmitReviewInput struct {
	BookingID      string `json:"bookingId"`
	WorkerID       string `json:"workerId"`
	CustomerID     string `json:"-"`
	CustomerName   string `json:"customerName"`
	CustomerAvatar string `json:"customerAvatar"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
}

// ReviewSummary is the generated overview of a worker's reviews.
type ReviewSummary struct {
	Summary string `json:"summary"`
}
