package driver

import "time"

// Driver is a durable entity reference. Predictions and results point at
// driver ids; display names only appear at the API boundary.
type Driver struct {
	ID        string
	FullName  string
	TeamName  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch enumerates the fields a partial driver update may carry.
type Patch struct {
	FullName *string
	TeamName *string
	IsActive *bool
}
