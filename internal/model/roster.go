package model

// Sentinel attribute values. These are substituted for blank roster fields at
// load time and for every unmatched record, so downstream grouping never sees
// a null.
const (
	UnknownEmployment = "Unknown"
	NonAffiliated     = "NON-AFFILIATED"
)

// RosterEntry is one row of the provider reference dataset. Entries are fully
// populated on load: Name is a canonical identity key, EmploymentType has
// bracketed annotations stripped, and blank fields already hold the
// sentinels.
type RosterEntry struct {
	Name           string
	EmploymentType string
	Subspecialty   string
}
