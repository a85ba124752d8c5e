package logging

import (
	"io"

	"github.com/smazurov/complog/internal/metrics"
)

// sink delivers a gated record. Sinks never report errors to the caller.
type sink interface {
	write(r *record)
}

func (f *Facility) sinkFor(d *Destination) sink {
	switch d.Kind {
	case DestFile:
		return fileSink{path: d.Path}
	case DestStdout:
		return streamSink{name: "stdout", w: f.stdout}
	case DestStderr:
		return streamSink{name: "stderr", w: f.stderr}
	case DestTest:
		return consoleSink{w: f.stdout}
	case DestBuffer:
		return bufferSink{buf: d.Buffer}
	default:
		return f.syslog
	}
}

// line returns the thread buffer followed by a newline.
func (r *record) line() []byte {
	b := r.tc.buf.Bytes()
	out := make([]byte, len(b)+1)
	copy(out, b)
	out[len(b)] = '\n'
	return out
}

type flusher interface {
	Flush() error
}

func flush(w io.Writer) {
	if fl, ok := w.(flusher); ok {
		_ = fl.Flush()
	}
}

// writeStderr reports a sink failure on the raw error stream.
func (f *Facility) writeStderr(p []byte) {
	f.streamMu.Lock()
	defer f.streamMu.Unlock()
	_, _ = f.stderr.Write(p)
}

// streamSink writes full records to stdout or stderr.
type streamSink struct {
	name string
	w    io.Writer
}

func (s streamSink) write(r *record) {
	r.renderBody(r.renderPrefix())
	line := r.line()

	r.f.streamMu.Lock()
	defer r.f.streamMu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		metrics.SinkError(s.name)
	}
	if r.enrich {
		_, _ = io.WriteString(s.w, r.f.DebugInfo())
	}
	flush(s.w)
}

// consoleSink writes the bare message body to stdout, for tests that compare
// output verbatim.
type consoleSink struct {
	w io.Writer
}

func (s consoleSink) write(r *record) {
	r.tc.buf.Reset()
	r.renderBody(r.tc.buf.Remaining())
	line := r.line()

	r.f.streamMu.Lock()
	defer r.f.streamMu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		metrics.SinkError("test")
	}
	if r.enrich {
		_, _ = io.WriteString(s.w, r.f.DebugInfo())
	}
	flush(s.w)
}

// bufferSink renders the message body into a caller-owned buffer.
type bufferSink struct {
	buf *Buffer
}

func (s bufferSink) write(r *record) {
	s.buf.Reset()
	s.buf.Printf(r.format, r.args...)
}
