package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"todo": true, "in_progress": true, "done": true,
}

type PracticeStatus string

const (
	PracticeResearching PracticeStatus = "researching"
	PracticeApplied     PracticeStatus = "applied"
	PracticeContracted  PracticeStatus = "contracted"
	PracticeCompleted   PracticeStatus = "completed"
)

// ProgramName identifies a cost-share funding program by its canonical name.
type ProgramName string

const (
	ProgramEQIP    ProgramName = "EQIP"
	ProgramCRP     ProgramName = "CRP"
	ProgramACEPWRE ProgramName = "ACEP-WRE"
)

// ValidProgramNames is the canonical set of supported program names.
var ValidProgramNames = map[ProgramName]bool{
	ProgramEQIP: true, ProgramCRP: true, ProgramACEPWRE: true,
}
