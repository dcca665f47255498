package service

// SubjectGenerator mints the random identifiers bound to new accounts.
type SubjectGenerator interface {
	// NewSubjectID returns a fresh, collision-resistant identifier.
	NewSubjectID() (string, error)
}
