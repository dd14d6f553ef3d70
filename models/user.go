package models

import "time"

// PriceType is how a worker quotes their price.
type PriceType string

const (
	PriceDaily PriceType = "daily"
	PriceJob   PriceType = "job"
	PriceSqft  PriceType = "sqft"
)

// PortfolioItem is one uploaded work sample.
type PortfolioItem struct {
	URL      string `bson:"url" json:"url"`
	Hint     string `bson:"hint" json:"hint"`
	PublicID string `bson:"publicId" json:"publicId"`
}

// User is a platform account. Workers are users with IsWorker set; they are
// only discoverable once an admin approves them.
type User struct {
	ID               string          `bson:"id" json:"id"`
	Name             string          `bson:"name" json:"name"`
	Email            string          `bson:"email" json:"email,omitempty"`
	Phone            string          `bson:"phone" json:"phone,omitempty"`
	Avatar           string          `bson:"avatar" json:"avatar"`
	IsWorker         bool            `bson:"isWorker" json:"isWorker"`
	IsApproved       bool            `bson:"isApproved" json:"isApproved"`
	Category         string          `bson:"category,omitempty" json:"category,omitempty"`
	Location         string          `bson:"location,omitempty" json:"location,omitempty"`
	Pincode          string          `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Skills           []string        `bson:"skills,omitempty" json:"skills,omitempty"`
	Description      string          `bson:"description,omitempty" json:"description,omitempty"`
	Price            float64         `bson:"price,omitempty" json:"price,omitempty"`
	PriceType        PriceType       `bson:"priceType,omitempty" json:"priceType,omitempty"`
	Portfolio        []PortfolioItem `bson:"portfolio,omitempty" json:"portfolio,omitempty"`
	Rating           float64         `bson:"rating" json:"rating"`
	ReviewCount      int             `bson:"reviewCount" json:"reviewCount"`
	Favorites        []string        `bson:"favorites,omitempty" json:"favorites,omitempty"`
	UnlockedContacts []string        `bson:"unlockedContacts,omitempty" json:"-"`
	FCMToken         string          `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt        time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	UID   string
	Name  string
	Email string
	Phone string
	Photo string
}

// ContactInfo is revealed once a customer has paid the platform fee.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// WorkerProfile is the public view of a worker.
type WorkerProfile struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Pincode     string          `json:"pincode,omitempty"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Price       float64         `json:"price"`
	PriceType   PriceType       `json:"priceType"`
	Skills      []string        `json:"skills"`
	Description string          `json:"description"`
	IsFavorite  bool            `json:"isFavorite"`
	Avatar      string          `json:"avatar"`
	Portfolio   []PortfolioItem `json:"portfolio"`
	Contact     *ContactInfo    `json:"contact,omitempty"`
}

const (
	defaultAvatar    = "https://placehold.co/100x100.png"
	defaultPortfolio = "https://placehold.co/600x400.png"
)

// ToWorkerProfile builds the public view. Contact details are only included
// when withContact is set.
func (u *User) ToWorkerProfile(withContact bool) WorkerProfile {
	p := WorkerProfile{
		ID:          u.ID,
		Name:        u.Name,
		Category:    u.Category,
		Location:    u.Location,
		Pincode:     u.Pincode,
		Rating:      u.Rating,
		ReviewCount: u.ReviewCount,
		Price:       u.Price,
		PriceType:   u.PriceType,
		Skills:      u.Skills,
		Description: u.Description,
		Avatar:      u.Avatar,
		Portfolio:   u.Portfolio,
	}
	if p.Avatar == "" {
		p.Avatar = defaultAvatar
	}
	if len(p.Portfolio) == 0 {
		p.Portfolio = []PortfolioItem{{URL: defaultPortfolio, Hint: "worker professional"}}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if withContact {
		p.Contact = &ContactInfo{Phone: u.Phone, Email: u.Email}
	}
	return p
}

// HasUnlocked reports whether the user paid to see workerID's contact.
func (u *User) HasUnlocked(workerID string) bool {
	for _, id := range u.UnlockedContacts {
		if id == workerID {
			return true
		}
	}
	return false
}

// IsFavorite reports whether workerID is in the user's favorites.
func (u *User) IsFavorite(workerID string) bool {
	for _, id := range u.Favorites {
		if id == workerID {
			return true
		}
	}
	return false
}

// ProfileUpdate is a partial profile patch; nil fields are left unchanged.
type ProfileUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Avatar      *string    `json:"avatar,omitempty"`
	IsWorker    *bool      `json:"isWorker,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Pincode     *string    `json:"pincode,omitempty"`
	Skills      *[]string  `json:"skills,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	PriceType   *PriceType `json:"priceType,omitempty"`
	FCMToken    *string    `json:"fcmToken,omitempty"`
}
