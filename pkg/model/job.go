package model

// Undefined marks a Job's StartTime or FinishTime before it has occurred.
const Undefined = -1.0

// Job is one concrete instance of a Task, carrying the actual execution
// time observed for this instance and the mutable bookkeeping the scheduler
// engine updates as it runs.
type Job struct {
	TaskIndex   int
	TaskName    string
	JobID       int
	Criticality Criticality

	Arrival                 float64
	WCET                    float64
	ActualExec              float64
	AbsoluteDeadline        float64
	VirtualAbsoluteDeadline float64

	Remaining  float64
	StartTime  float64
	FinishTime float64
	Finished   bool
}

// NewJob constructs a Job for the given task instance, arrival time, and
// actual execution time. StartTime and FinishTime begin Undefined.
func NewJob(task ScaledTask, jobID int, arrival, actualExec float64) Job {
	return Job{
		TaskIndex:               task.Index,
		TaskName:                task.Name,
		JobID:                   jobID,
		Criticality:             task.Criticality,
		Arrival:                 arrival,
		WCET:                    task.WCET,
		ActualExec:              actualExec,
		AbsoluteDeadline:        arrival + task.Deadline,
		VirtualAbsoluteDeadline: arrival + task.VirtualDeadline,
		Remaining:               actualExec,
		StartTime:               Undefined,
		FinishTime:              Undefined,
	}
}

// Identity is the (TaskIndex, JobID) pair that uniquely names a job and is
// used to detect preemption between adjacent run-slices.
type Identity struct {
	TaskIndex int
	JobID     int
}

// Identity returns this job's identity.
func (j Job) Identity() Identity {
	return Identity{TaskIndex: j.TaskIndex, JobID: j.JobID}
}
