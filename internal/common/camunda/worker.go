// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"krishi-assistant/internal/common/logger"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Worker polls one job type and hands every activated job to a handler.
type Worker struct {
	worker   worker.JobWorker
	taskType string
	logger   logger.Logger
}

func NewWorker(c *Client, taskType string, maxJobsActive int, timeout time.Duration, handler JobHandler, log logger.Logger) *Worker {
	if maxJobsActive <= 0 {
		maxJobsActive = 32
	}
	step := c.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(maxJobsActive)
	if timeout > 0 {
		step = step.Timeout(timeout)
	}

	w := &Worker{
		worker:   step.Open(),
		taskType: taskType,
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
	}
	w.logger.Info("job worker started", map[string]interface{}{"maxJobsActive": maxJobsActive})
	return w
}

// Stop closes the poller and waits for in-flight jobs.
func (w *Worker) Stop() {
	w.logger.Info("stopping job worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
