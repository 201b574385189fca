package tasks

import (
	"norya.com/report/redis"
)

const JobsDB redis.DB = 1

// JobTask groups the analyses of one purchase. FailedAnalyses is appended by
// whichever worker exhausts its retries first; with StopOnFailure set the
// remaining analyses of the job are canceled instead of composed.
type JobTask struct {
	UserCanceled   bool     `json:"user_canceled"`
	StopOnFailure  bool     `json:"stop_on_failure"`
	FailedAnalyses []string `json:"failed_analyses"`
}

type JobTasks struct {
	client redis.Client
}

func (tasks JobTasks) Get(redisKey string) (*JobTask, error) {
	var task JobTask
	if err := tasks.client.GetDocument(redisKey, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks JobTasks) Update(redisKey string, updateFunc func(task *JobTask)) error {
	var task JobTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
