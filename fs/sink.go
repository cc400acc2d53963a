package fs

import (
	"encoding/csv"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osokin/leadscout"
)

// Ensure CSVSink implements leadscout.Sink at compile time.
var _ leadscout.Sink = (*CSVSink)(nil)

// CSVSink appends rows to a timestamped CSV file. Each Persist is flushed
// to disk immediately, so rows written before an interruption survive it.
type CSVSink struct {
	file     *os.File
	writer   *csv.Writer
	download string

	closeOnce sync.Once
	closeErr  error
}

// NewCSVSink creates the output file under dir, writes the header row and
// returns a sink whose download handle is baseURL joined with the file
// name. File names carry a second-resolution timestamp; two runs started
// within the same second would collide, which we accept.
func NewCSVSink(dir, baseURL string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	name := "result-" + time.Now().Format("01022006-150405") + ".csv"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(leadscout.Header()); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	download, err := url.JoinPath(baseURL, name)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &CSVSink{file: f, writer: w, download: download}, nil
}

// DownloadURL returns the handle callers use to retrieve the file. It is
// stable for the lifetime of the sink.
func (s *CSVSink) DownloadURL() string {
	return s.download
}

// Name returns the base name of the output file.
func (s *CSVSink) Name() string {
	return filepath.Base(s.file.Name())
}

// Persist appends one row and flushes it to disk.
func (s *CSVSink) Persist(row leadscout.Row) error {
	if err := s.writer.Write(row.Record()); err != nil {
		return err
	}
	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the file. Safe to call more than once.
func (s *CSVSink) Close() error {
	s.closeOnce.Do(func() {
		s.writer.Flush()
		if err := s.writer.Error(); err != nil {
			s.closeErr = err
		}
		if err := s.file.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}
