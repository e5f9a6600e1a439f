// Package domain contains the core types and decision logic for build
// dispatch: events, repository configuration, transport classification and
// task descriptors.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BuildEvent is one repository-update notification. It is created when the
// event arrives and consumed by exactly one dispatch; it is never persisted.
type BuildEvent struct {
	Repository string
	Branch     string
	// Dependency is set when the build was triggered by a rebuild of a
	// repository this one depends on.
	Dependency *Dependency
}

// Dependency names the repository and branch whose rebuild triggered a
// dependency-driven build.
type Dependency struct {
	Repository string
	Branch     string
}

// LockKey identifies both the exclusivity scope and the history series for a
// repository and branch pair.
type LockKey string

// Key derives the LockKey for the event's target repository and branch.
func (e BuildEvent) Key() LockKey {
	return LockKey(e.Repository + "/" + e.Branch)
}

// String returns the key in its canonical "repository/branch" form.
func (k LockKey) String() string {
	return string(k)
}

// ParseEvent builds a BuildEvent from positional arguments, either
// "repository branch" for a primary build or
// "repository branch depRepository depBranch" for a dependency-triggered one.
func ParseEvent(args []string) (BuildEvent, error) {
	switch len(args) {
	case 2:
		return BuildEvent{Repository: args[0], Branch: args[1]}, nil
	case 4:
		return BuildEvent{
			Repository: args[0],
			Branch:     args[1],
			Dependency: &Dependency{Repository: args[2], Branch: args[3]},
		}, nil
	default:
		return BuildEvent{}, zerr.With(ErrMalformedEvent, "args", strings.Join(args, " "))
	}
}
