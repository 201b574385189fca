package tasks

import (
	"norya.com/report/redis"
)

const AnalysesDB redis.DB = 0

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// AnalysisTask is the per-analysis document shared with the other services of
// the product. This worker owns only the composer status block; everything
// else survives updates untouched.
type AnalysisTask struct {
	JobID            string               `json:"job_id"`
	NarrativeFileKey string               `json:"narrative_file_key"`
	Lang             string               `json:"lang"`
	ReportDate       string               `json:"report_date"`
	TaskStatuses     AnalysisTaskStatuses `json:"task_statuses"`
}

type AnalysisTaskStatuses struct {
	Composer TaskInfo `json:"composer"`
}

type TaskInfo struct {
	ResultsFileKey string     `json:"results_file_key"`
	StartedAt      *string    `json:"started_at"`
	CompletedAt    *string    `json:"completed_at"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	ErrorMessages  []string   `json:"error_messages"`
}

type AnalysisTasks struct {
	client redis.Client
}

func (tasks AnalysisTasks) Get(redisKey string) (*AnalysisTask, error) {
	var task AnalysisTask
	if err := tasks.client.GetDocument(redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks AnalysisTasks) Update(redisKey string, updateFunc func(task *AnalysisTask)) error {
	var task AnalysisTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
