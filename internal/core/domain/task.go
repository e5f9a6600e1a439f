package domain

// Task names understood by the task executor. The dispatcher only ever
// submits descriptors with these names; what each task does is the
// executor's contract.
const (
	TaskSSHInit     = "ssh-init"
	TaskSSHScan     = "ssh-scan"
	TaskGitSync     = "git-sync"
	TaskRunPipeline = "runpipeline"
	TaskLocalExec   = "localexec"
	TaskCleanup     = "cleanup"
)

// PipelineScript is the repository-relative path of the pipeline script a
// trusted local build executes directly.
const PipelineScript = ".cid/pipeline.sh"

// TaskDescriptor is one entry in the ordered task chain submitted to the
// executor. Immutable once submitted.
type TaskDescriptor struct {
	Name string
	Args []string
}
