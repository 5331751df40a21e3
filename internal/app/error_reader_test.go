package app

import (
	"errors"
	"io"
)

// ErrMockRead is a test error for reader failures.
var ErrMockRead = errors.New("mock read error")

// ErrorReader serves data and then fails with err. With errAt >= 0 the
// failure happens after errAt bytes instead of at the end of data.
type ErrorReader struct {
	data   []byte
	pos    int
	errAt  int
	err    error
	failed bool
}

// NewErrorReader creates a reader that returns err after errAt bytes, or
// after all of data when errAt is negative.
func NewErrorReader(data string, errAt int, err error) *ErrorReader {
	limit := len(data)
	if errAt >= 0 && errAt < limit {
		limit = errAt
	}
	return &ErrorReader{data: []byte(data), errAt: limit, err: err}
}

func (r *ErrorReader) Read(p []byte) (int, error) {
	if r.failed {
		return 0, io.EOF
	}
	if r.pos >= r.errAt {
		r.failed = true
		if r.err == nil {
			return 0, io.EOF
		}
		return 0, r.err
	}
	n := copy(p, r.data[r.pos:r.errAt])
	r.pos += n
	return n, nil
}
