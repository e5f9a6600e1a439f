package domain

// DefaultKeepHistory is the number of workspace slots retained per lock key
// when a repository does not configure keep_history.
const DefaultKeepHistory = 7

// BuildTypeNone marks a repository that has explicitly opted out of builds.
const BuildTypeNone = "none"

// RepositoryConfig is the build configuration for one repository. It is owned
// by the external configuration store and read-only for the duration of a
// dispatch.
type RepositoryConfig struct {
	ID          string
	Type        string
	CloneURL    string
	KeepHistory int
}

// Retention returns the effective keep_history value, falling back to
// DefaultKeepHistory when the repository left it unset.
func (c RepositoryConfig) Retention() int {
	if c.KeepHistory < 1 {
		return DefaultKeepHistory
	}
	return c.KeepHistory
}
