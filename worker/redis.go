package worker

import (
	"fmt"

	"norya.com/report/tasks"
)

type redisTransactions interface {
	getAnalysisTask(redisKey string) (*tasks.AnalysisTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	err := wrapper.tasksClient.Analyses.Update(task.redisKey, func(task *tasks.AnalysisTask) {
		task.TaskStatuses.Composer.Status = tasks.TaskStatusStarted
		task.TaskStatuses.Composer.Attempts += 1
		task.TaskStatuses.Composer.StartedAt = getFormattedNow()
		task.TaskStatuses.Composer.CompletedAt = nil
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	err := wrapper.tasksClient.Analyses.Update(task.redisKey, func(analysisTask *tasks.AnalysisTask) {
		analysisTask.TaskStatuses.Composer.Status = tasks.TaskStatusCanceled
		analysisTask.TaskStatuses.Composer.StartedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.CompletedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.Attempts += 1
		analysisTask.TaskStatuses.Composer.ErrorMessages = append(
			analysisTask.TaskStatuses.Composer.ErrorMessages,
			errorMessages...,
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Jobs.Update(task.analysisTask.JobID, func(jobTask *tasks.JobTask) {
		jobTask.FailedAnalyses = append(jobTask.FailedAnalyses, task.redisKey)
	})
	if err != nil {
		return err
	}
	err = wrapper.tasksClient.Analyses.Update(task.redisKey, func(analysisTask *tasks.AnalysisTask) {
		analysisTask.TaskStatuses.Composer.Status = tasks.TaskStatusCompletedFailure
		analysisTask.TaskStatuses.Composer.StartedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.CompletedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.Attempts += 1
		analysisTask.TaskStatuses.Composer.ErrorMessages = append(
			analysisTask.TaskStatuses.Composer.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				analysisTask.TaskStatuses.Composer.Attempts,
				maxRetries,
			),
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Analyses.Update(task.redisKey, func(analysisTask *tasks.AnalysisTask) {
		analysisTask.TaskStatuses.Composer.Status = tasks.TaskStatusFailed
		analysisTask.TaskStatuses.Composer.CompletedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.ErrorMessages = append(
			analysisTask.TaskStatuses.Composer.ErrorMessages,
			err.Error(),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Analyses.Update(task.redisKey, func(analysisTask *tasks.AnalysisTask) {
		if !analysisTask.TaskStatuses.Composer.Status.Complete() {
			analysisTask.TaskStatuses.Composer.Status = tasks.TaskStatusCompletedSuccess
		}
		analysisTask.TaskStatuses.Composer.CompletedAt = getFormattedNow()
		analysisTask.TaskStatuses.Composer.ResultsFileKey = getResultsFileKey(task)
	})
}

func (wrapper *redisClientWrapper) getAnalysisTask(redisKey string) (*tasks.AnalysisTask, error) {
	return wrapper.tasksClient.Analyses.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.Get(task.analysisTask.JobID)
}
