package mock

import "github.com/osokin/leadscout"

var _ leadscout.Sink = (*Sink)(nil)

// Sink is a mock implementation of leadscout.Sink.
// Rows collects every persisted row when PersistFn is nil.
type Sink struct {
	DownloadURLFn func() string
	PersistFn     func(row leadscout.Row) error
	CloseFn       func() error

	Rows   []leadscout.Row
	Closed int
}

func (s *Sink) DownloadURL() string {
	if s.DownloadURLFn == nil {
		return "http://localhost:8080/static/results/result-test.csv"
	}
	return s.DownloadURLFn()
}

func (s *Sink) Persist(row leadscout.Row) error {
	if s.PersistFn == nil {
		s.Rows = append(s.Rows, row)
		return nil
	}
	return s.PersistFn(row)
}

func (s *Sink) Close() error {
	s.Closed++
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
