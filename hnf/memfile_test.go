package hnf

import (
	"errors"
	"io"
)

// memFile is a minimal in-memory io.WriteSeeker, standing in for an
// *os.File in tests that need Finalize's seek-back-to-0 rewrite.
type memFile struct {
	buf    []byte
	cursor int64
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.cursor + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.cursor:end], p)
	m.cursor = end

	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.cursor
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, errors.New("memfile: invalid whence")
	}

	m.cursor = base + offset

	return m.cursor, nil
}

func (m *memFile) Bytes() []byte {
	return m.buf
}
