package tasks

import (
	"norya.com/report/redis"
)

type Client struct {
	Analyses AnalysisTasks
	Jobs     JobTasks
}

// NewClient is the preferred way of working with task documents.
func NewClient() (Client, error) {
	analysesClient, err := redis.NewClient(AnalysesDB)
	if err != nil {
		return Client{}, err
	}
	jobsClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Analyses: AnalysisTasks{client: analysesClient},
		Jobs:     JobTasks{client: jobsClient},
	}, nil
}

func (client *Client) Close() {
	_ = client.Analyses.client.Close()
	_ = client.Jobs.client.Close()
}
