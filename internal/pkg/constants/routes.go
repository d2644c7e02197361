package constants

// API route constants
const (
	APIRoute = "/api"

	PhotosRoute        = "/photos"
	FeedRoute          = "/feed"
	ActivityRoute      = "/activity"
	ReportConfirmRoute = "/report/confirm"

	UsersRoute = "/users"
	AdminRoute = "/admin"
)
