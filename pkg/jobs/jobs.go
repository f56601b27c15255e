// Package jobs keeps track of the analyses started by the API
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

//State of an analysis job
type State string

const (
	Running State = "running"
	Done    State = "done"
	Failed  State = "failed"
	Unknown State = "unknown"
)

//ErrNotFound is returned for an unknown job ID
var ErrNotFound = errors.New("job not found")

//Job is one analysis of an uploaded video
type Job struct {
	ID       string    `json:"id"`
	Video    string    `json:"video"`
	State    State     `json:"state"`
	Error    string    `json:"error,omitempty"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished,omitempty"`
}

//Registry is a concurrency safe, in-memory job list
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	now  func() time.Time
}

//NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Job), now: time.Now}
}

//Start registers a running job for video and returns its ID
func (r *Registry) Start(video string) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[id] = &Job{ID: id, Video: video, State: Running, Started: r.now()}
	return id
}

//Finish marks a job done, or failed when err is not nil
func (r *Registry) Finish(id string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}

	job.Finished = r.now()
	if err != nil {
		job.State = Failed
		job.Error = err.Error()
	} else {
		job.State = Done
	}

	return nil
}

//Get returns a copy of the job with the given ID
func (r *Registry) Get(id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return Job{ID: id, State: Unknown}, ErrNotFound
	}

	return *job, nil
}

//Run starts fn in its own goroutine as a job for video and returns the job ID
func (r *Registry) Run(video string, fn func(id string) error) string {
	id := r.Start(video)

	go func() {
		_ = r.Finish(id, fn(id))
	}()

	return id
}
