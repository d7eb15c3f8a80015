package storage

import "io"

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent int)

// progressReader reports read progress against a known total size. Percentages
// are monotonic; repeated values are suppressed.
type progressReader struct {
	inner    io.Reader
	total    int64
	read     int64
	last     int
	progress ProgressFunc
}

// NewProgressReader wraps reader so progress is reported as its contents are
// consumed. A non-positive total or nil callback returns reader unchanged.
func NewProgressReader(reader io.Reader, total int64, progress ProgressFunc) io.Reader {
	if total <= 0 || progress == nil {
		return reader
	}
	return &progressReader{inner: reader, total: total, last: -1, progress: progress}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.inner.Read(buf)
	if n > 0 {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent != p.last {
			p.last = percent
			p.progress(percent)
		}
	}
	return n, err
}
