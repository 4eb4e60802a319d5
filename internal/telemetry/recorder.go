package telemetry

import (
	"strings"
	"sync"
)

type Report struct {
	Level  string
	Id     string
	Params []any
	Count  int64
}

// Recorder is an API that keeps every report in memory so tests can assert
// on what a component logged.
type Recorder struct {
	lock    sync.Mutex
	reports []Report
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Report{Level: "broken", Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Report{Level: "warning", Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Report{Level: "debug", Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Report{Level: "count", Id: id, Count: count})
}

// Reports returns a copy of the reports made at the given level, all of them
// if level is empty.
func (r *Recorder) Reports(level string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	var out []Report
	for _, report := range r.reports {
		if level == "" || report.Level == level {
			out = append(out, report)
		}
	}
	return out
}

// Has reports whether a report at level has an id ending with suffix, which
// ignores any ScopedAPI namespaces in front of it.
func (r *Recorder) Has(level, suffix string) bool {
	for _, report := range r.Reports(level) {
		if strings.HasSuffix(report.Id, suffix) {
			return true
		}
	}
	return false
}
