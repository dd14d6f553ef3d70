package models

import (
	"fmt"
	"math"
	"regexp"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// ValidPincode reports whether p is a six-digit Indian postal code.
func ValidPincode(p string) bool {
	return pincodePattern.MatchString(p)
}

// WorkerAggregate is the running rating state stored on a worker's user record.
type WorkerAggregate struct {
	ID          string  `bson:"id" json:"id"`
	IsWorker    bool    `bson:"isWorker" json:"isWorker"`
	Rating      float64 `bson:"rating" json:"rating"`
	ReviewCount int     `bson:"reviewCount" json:"reviewCount"`
}

// Validate rejects aggregate states no sequence of reviews could produce.
func (w *WorkerAggregate) Validate() error {
	if w.ReviewCount < 0 {
		return fmt.Errorf("worker %s has negative reviewCount %d", w.ID, w.ReviewCount)
	}
	if math.IsNaN(w.Rating) || w.Rating < 0 || w.Rating > MaxRating {
		return fmt.Errorf("worker %s has out-of-range rating %v", w.ID, w.Rating)
	}
	if w.ReviewCount == 0 && w.Rating != 0 {
		return fmt.Errorf("worker %s has rating %v with no reviews", w.ID, w.Rating)
	}
	return nil
}

// Fold returns the aggregate after adding one more rating to the mean.
func (w WorkerAggregate) Fold(rating int) WorkerAggregate {
	count := w.ReviewCount + 1
	w.Rating = (w.Rating*float64(w.ReviewCount) + float64(rating)) / float64(count)
	w.ReviewCount = count
	return w
}

// WorkerSearchCriteria is the structured filter behind worker search. Approved
// workers only; empty fields do not filter.
type WorkerSearchCriteria struct {
	Pincode    string   `json:"pincode,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// SearchWorkersInput is the public search request.
type SearchWorkersInput struct {
	Query      string   `json:"query,omitempty"`
	Pincode    string   `json:"pincode,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Empty reports whether no filter or query was supplied.
func (in SearchWorkersInput) Empty() bool {
	return in.Query == "" && in.Pincode == "" && len(in.Categories) == 0
}
