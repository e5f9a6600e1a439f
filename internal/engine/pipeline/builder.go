// Package pipeline composes the ordered task chain for one build attempt.
// Composition is pure: the builder never touches the lock table, the
// filesystem or the network.
package pipeline

import "go.trai.ch/cid/internal/core/domain"

// Kind selects the orchestration variant a chain is built for.
type Kind int

const (
	// KindStandard is the networked build: generic pipeline run plus a
	// trailing cleanup.
	KindStandard Kind = iota
	// KindLocalTrusted executes the pipeline script directly and keeps the
	// checkout around afterwards, so no cleanup is appended.
	KindLocalTrusted
)

// SyncParams are the arguments of the source-sync task.
type SyncParams struct {
	CloneURL string
	Branch   string
	Key      domain.LockKey
}

// Build assembles the task chain. SSH preparation, when the transport needs
// it, always precedes the sync task so host authenticity is established
// before any clone; cleanup, when the kind appends one, is always last.
func Build(transport domain.TransportInfo, sync SyncParams, kind Kind) []domain.TaskDescriptor {
	var tasks []domain.TaskDescriptor

	if transport.SSH {
		scanArgs := []string{transport.Host}
		if transport.Port != "" {
			scanArgs = []string{"-p", transport.Port, transport.Host}
		}
		tasks = append(tasks,
			domain.TaskDescriptor{Name: domain.TaskSSHInit},
			domain.TaskDescriptor{Name: domain.TaskSSHScan, Args: scanArgs},
		)
	}

	tasks = append(tasks, domain.TaskDescriptor{
		Name: domain.TaskGitSync,
		Args: []string{sync.CloneURL, sync.Branch, sync.Key.String(), "true"},
	})

	switch kind {
	case KindLocalTrusted:
		tasks = append(tasks, domain.TaskDescriptor{
			Name: domain.TaskLocalExec,
			Args: []string{domain.PipelineScript},
		})
	default:
		tasks = append(tasks,
			domain.TaskDescriptor{Name: domain.TaskRunPipeline},
			domain.TaskDescriptor{Name: domain.TaskCleanup},
		)
	}

	return tasks
}
