package user

// User is the single entity managed by the service. ID is assigned by storage on
// insert and never changes afterwards.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Patch carries the fields supplied to a partial update. A nil field is left
// untouched in storage.
type Patch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch would change nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Columns returns the column/value pairs to write, keyed by column name.
func (p Patch) Columns() map[string]any {
	cols := make(map[string]any, 2)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	return cols
}
