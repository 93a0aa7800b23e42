package minicluster

import (
	"encoding/json"
	"net/http"
	"time"
)

// JobTrackerStatus is served by the job-tracker endpoint. The mini-cluster
// schedules no jobs, so the queue is always empty.
type JobTrackerStatus struct {
	ClusterID   string    `json:"cluster_id"`
	State       string    `json:"state"`
	StartedAt   time.Time `json:"started_at"`
	FileSystem  string    `json:"filesystem"`
	RunningJobs int       `json:"running_jobs"`
	Jobs        []string  `json:"jobs"`
}

func (c *Cluster) jobTrackerHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		status := JobTrackerStatus{
			ClusterID:  c.id,
			State:      "RUNNING",
			StartedAt:  c.started,
			FileSystem: c.fs.URI(),
			Jobs:       []string{},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			c.logger.Error("Failed to encode job-tracker status", err)
		}
	})
	return mux
}
