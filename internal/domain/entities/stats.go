package entities

// AdminStats aggregates platform counters for the admin dashboard
type AdminStats struct {
	Users    UserStats    `json:"users"`
	Listings ListingStats `json:"listings"`
	Payments PaymentStats `json:"payments"`
}

// UserStats counts registered and verified accounts
type UserStats struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
}

// ListingStats counts listings by lifecycle state
type ListingStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Pending int64 `json:"pending"`
}

// PaymentStats counts payments by verification state
type PaymentStats struct {
	Pending  int64   `json:"pending"`
	Verified int64   `json:"verified"`
	Revenue  float64 `json:"revenue"`
}
