package models

// Course is a reference catalog entry for a course offering
type Course struct {
	ID   int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Code string `json:"code" yaml:"code"`
}

// Teacher is a reference catalog entry for a staff member.
// Inactive teachers are kept for history but never matched against.
type Teacher struct {
	ID        int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	FirstName string `json:"first_name" yaml:"first_name" validate:"required"`
	LastName  string `json:"last_name" yaml:"last_name" validate:"required"`
	Active    bool   `json:"active" yaml:"active"`
}

// FullName returns "First Last" as used by containment matching
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// Room is a reference catalog entry for a physical room
type Room struct {
	ID     int64  `json:"id" yaml:"id" validate:"required,gt=0"`
	Number string `json:"number" yaml:"number" validate:"required"`
}

// Catalog is a read-only snapshot of the reference entities an import run
// matches against. The extraction pipeline never mutates it; callers take a
// fresh snapshot per import.
type Catalog struct {
	Courses  []Course  `json:"courses"`
	Teachers []Teacher `json:"teachers"`
	Rooms    []Room    `json:"rooms"`
}

// IsEmpty reports whether the snapshot holds no entities at all
func (c *Catalog) IsEmpty() bool {
	return len(c.Courses) == 0 && len(c.Teachers) == 0 && len(c.Rooms) == 0
}
