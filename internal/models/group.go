package models

// Group is a saved participant list, for people who split bills together
// often (e.g., "Roommates", "Work Lunch"). Loading a group into a bill
// replaces the bill's participants with the group's members.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group.
	Name string

	// Members is the ordered list of participant names.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
