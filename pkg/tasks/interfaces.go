package tasks

import "github.com/hibiken/asynq"

// TaskEnqueuer is how the HTTP layer hands episode generation and
// cleanup work to the queue. It's implemented by asynq.Client, and can
// be mocked for testing.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
