package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/p2pdesk/backoffice/internal/scheduler"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// JobRunner is the scheduler surface the job endpoints need
type JobRunner interface {
	RunJob(jobName string) error
	History(jobName string) ([]scheduler.JobResult, error)
}

// JobsHandler exposes scheduled-job control and history endpoints
type JobsHandler struct {
	scheduler JobRunner
	logger    *logger.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(sched JobRunner, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		scheduler: sched,
		logger:    log,
	}
}

// RunJob triggers a job outside its schedule
// POST /api/jobs/{name}/run
func (h *JobsHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.scheduler.RunJob(name); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.WithField("job", name).Info("Job triggered via API")

	// The job runs asynchronously; history reports the outcome
	respondJSON(w, http.StatusAccepted, map[string]string{
		"job":    name,
		"status": "started",
	})
}

// GetHistory returns recent execution results for a job
// GET /api/jobs/{name}/history
func (h *JobsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	results, err := h.scheduler.History(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"results": results,
	})
}
