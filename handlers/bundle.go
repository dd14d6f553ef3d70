package handlers

import (
	"apnakam/services/admin"
	"apnakam/services/blog"
	"apnakam/services/booking"
	"apnakam/services/contact"
	"apnakam/services/payment"
	"apnakam/services/review"
	"apnakam/services/search"
	"apnakam/services/storage"
	"apnakam/services/user"
	"apnakam/utils"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Booking *BookingHandler
	Review  *ReviewHandler
	Worker  *WorkerHandler
	User    *UserHandler
	Upload  *UploadHandler
	Payment *PaymentHandler
	Contact *ContactHandler
	Blog    *BlogHandler
	Admin   *AdminHandler
	Health  *HealthHandler
}

// Services is everything the handlers depend on.
type Services struct {
	Bookings booking.BookingService
	Reviews  review.ReviewService
	Search   search.SearchService
	Users    user.UserService
	Storage  storage.StorageService
	Payments payment.PaymentService
	Contact  contact.ContactService
	Blog     blog.BlogService
	Admin    admin.AdminService
	Health   func() utils.HealthStatus
}

func NewHandlerBundle(s Services) *HandlerBundle {
	return &HandlerBundle{
		Booking: &BookingHandler{Bookings: s.Bookings},
		Review:  &ReviewHandler{Reviews: s.Reviews, Users: s.Users},
		Worker:  &WorkerHandler{Search: s.Search, Users: s.Users, Reviews: s.Reviews},
		User:    &UserHandler{Users: s.Users},
		Upload:  &UploadHandler{Storage: s.Storage, Users: s.Users},
		Payment: &PaymentHandler{Payments: s.Payments},
		Contact: &ContactHandler{Contact: s.Contact},
		Blog:    &BlogHandler{Blog: s.Blog},
		Admin:   &AdminHandler{Admin: s.Admin, Users: s.Users, Contact: s.Contact, Blog: s.Blog},
		Health:  &HealthHandler{Status: s.Health},
	}
}
