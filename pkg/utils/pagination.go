package utils

// PaginationParams holds offset-based pagination parameters
type PaginationParams struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

const (
	// DefaultLimit is applied when the client sends no limit
	DefaultLimit = 100
	// MaxLimit caps how many rows a single request can pull
	MaxLimit = 100
)

// GetPaginationParams normalizes skip and limit with defaults
func GetPaginationParams(skip, limit int) PaginationParams {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}
