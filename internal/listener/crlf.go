package listener

import (
	"bytes"
	"io"
)

var (
	crlf = []byte("\r\n")
	cr   = []byte("\r")
	lf   = []byte("\n")
)

// lineEndings translates between a visit's "\n" lines and the network's.
// Telnet clients send "\r\n" and SSH clients may send a bare "\r"; both
// read as "\n". Writes go out as "\r\n".
type lineEndings struct {
	io.ReadWriter
}

func newLineEndings(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{ReadWriter: rw}
}

func (l *lineEndings) Read(p []byte) (int, error) {
	n, err := l.ReadWriter.Read(p)
	if n == 0 {
		return n, err
	}
	line := bytes.ReplaceAll(p[:n], crlf, lf)
	line = bytes.ReplaceAll(line, cr, lf)
	return copy(p, line), err
}

// Write reports len(p) so callers never see the added bytes.
func (l *lineEndings) Write(p []byte) (int, error) {
	if _, err := l.ReadWriter.Write(bytes.ReplaceAll(p, lf, crlf)); err != nil {
		return 0, err
	}
	return len(p), nil
}
