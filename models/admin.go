package models

import "time"

type LegalSection struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	Audience string `json:"audience"` // customer, worker or both
	Version  string `json:"version"`
	Updated  string `json:"updated"` // YYYY-MM-DD
}

const (
	AudienceCustomer = "customer"
	AudienceWorker   = "worker"
	AudienceBoth     = "both"
)

// AdminSession is returned on a successful admin login.
type AdminSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DashboardStats summarises the user base for the admin console.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalWorkers     int `json:"totalWorkers"`
	ApprovedWorkers  int `json:"approvedWorkers"`
	PendingApprovals int `json:"pendingApprovals"`
}
