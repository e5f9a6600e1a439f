package domain

// BuildAttempt bundles everything one build attempt carries downstream: the
// triggering event, the repository configuration it resolved to and the
// workspace slot it runs in. It replaces an ambient per-process parameter
// channel; its lifetime is exactly one attempt.
type BuildAttempt struct {
	Event  BuildEvent
	Config RepositoryConfig
	Slot   HistorySlot
}

// Environ renders the attempt metadata as KEY=VALUE pairs for the
// environment of every task in the chain.
func (a BuildAttempt) Environ() []string {
	env := []string{
		"CID_REPO=" + a.Event.Repository,
		"CID_BRANCH=" + a.Event.Branch,
	}
	if d := a.Event.Dependency; d != nil {
		env = append(env,
			"CID_DEP_BUILD=true",
			"CID_DEP_REPO="+d.Repository,
			"CID_DEP_BRANCH="+d.Branch,
		)
	}
	return env
}
