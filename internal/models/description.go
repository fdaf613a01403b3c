package models

// Description is a generated product description owned by a user.
//
// Only ProductName and Text change after creation. Comment, Tier and
// OwnerID are fixed at creation time.
type Description struct {
	// ID is the unique identifier for the description (UUID format).
	ID string

	// ProductName is the product the description was written for.
	ProductName string

	// Comment is the free-text detail the user supplied for generation.
	Comment string

	// Text is the generated (or later edited) description body.
	Text string

	// Tier is the length tier requested at generation time ("short",
	// "standard" or "complete").
	Tier string

	// OwnerID is the ID of the User who created the description.
	OwnerID string

	// CreatedAt is the Unix timestamp when the description was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64
}
