package scheduler

// LogMsgJobScheduled is logged when a job is registered with the scheduler
const LogMsgJobScheduled = "Job scheduled"
