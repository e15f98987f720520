package export

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/SayMoreX/digame/internal/folder"
)

// Payload is one named text document destined for the archive sink.
type Payload struct {
	Name string
	Text string
}

// SinkWriteError reports a failure while handing a payload to the sink. The
// remaining payloads in the same archive are aborted.
type SinkWriteError struct {
	Name string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing %q to archive sink: %v", e.Name, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// CsvPayloads renders the three standard CSV documents for a project. The
// filter limits which sessions are included; nil accepts all.
func CsvPayloads(p *folder.Project, filter func(*folder.Session) bool) []Payload {
	return []Payload{
		{Name: "project.csv", Text: MakeProjectCsv(p)},
		{Name: "sessions.csv", Text: MakeSessionsCsv(p, filter)},
		{Name: "people.csv", Text: MakePeopleCsv(p)},
	}
}

// WriteZip streams the payloads into one zip archive. All documents are
// rendered in memory before this is called, so a sink failure never leaves a
// partially-written entity behind, only a truncated archive the caller
// discards.
func WriteZip(w io.Writer, payloads []Payload) error {
	zw := zip.NewWriter(w)
	for _, p := range payloads {
		entry, err := zw.Create(p.Name)
		if err != nil {
			return &SinkWriteError{Name: p.Name, Err: err}
		}
		if _, err := io.WriteString(entry, p.Text); err != nil {
			return &SinkWriteError{Name: p.Name, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &SinkWriteError{Name: "archive", Err: err}
	}
	return nil
}
