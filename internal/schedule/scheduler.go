// Package schedule re-runs registered queries on CRON schedules.
//
// The server uses this for its scheduled-query endpoint: a job names a
// parsed SELECT and a cron spec; every firing executes the query against the
// shared store and hands the rows to the delivery callback. Queries only
// read the store, so concurrent firings need no coordination beyond the
// job-table mutex.
package schedule

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SimonWaldherr/tinyInterp/internal/query"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Result is one delivery of a scheduled query run.
type Result struct {
	Name string
	Rows []tables.Row
	Err  error
	At   time.Time
}

type job struct {
	sql   string
	query *query.Query
	entry cron.EntryID
}

// Scheduler owns a cron engine and the registered jobs.
type Scheduler struct {
	store   *tables.Store
	cron    *cron.Cron
	deliver func(Result)

	mu   sync.Mutex
	jobs map[string]*job
}

// New creates a scheduler over store. deliver receives every run's result;
// a nil deliver drops results (runs still log failures).
func New(store *tables.Store, deliver func(Result)) *Scheduler {
	return &Scheduler{
		store:   store,
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		deliver: deliver,
		jobs:    make(map[string]*job),
	}
}

// Add registers a named query under a six-field cron spec. The SQL is
// parsed up front so a bad query fails here, not at first firing.
func (s *Scheduler) Add(name, sql, cronExpr string) error {
	q, err := query.Parse(sql)
	if err != nil {
		return fmt.Errorf("job %q: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	id, err := s.cron.AddFunc(cronExpr, func() { s.run(name, q) })
	if err != nil {
		return fmt.Errorf("job %q: invalid cron expression %q: %w", name, cronExpr, err)
	}
	s.jobs[name] = &job{sql: sql, query: q, entry: id}
	return nil
}

// Remove unregisters a job. Removing an unknown name is a no-op.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[name]; ok {
		s.cron.Remove(j.entry)
		delete(s.jobs, name)
	}
}

// Jobs returns the registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RunNow executes a registered job immediately, outside its schedule.
func (s *Scheduler) RunNow(name string) (Result, error) {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("no job %q", name)
	}
	return s.run(name, j.query), nil
}

// Start begins firing schedules.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the cron engine and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run(name string, q *query.Query) Result {
	rows, err := q.Run(s.store)
	res := Result{Name: name, Rows: rows, Err: err, At: time.Now().UTC()}
	if err != nil {
		log.Printf("scheduled query %q failed: %v", name, err)
	}
	if s.deliver != nil {
		s.deliver(res)
	}
	return res
}
