package main

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4D96FF"))
)

// statusWriter colours whole "OK :" and "ERR:" lines written through it and
// passes everything else unchanged.
type statusWriter struct {
	out io.Writer
	buf bytes.Buffer
}

func newStatusWriter(out io.Writer) *statusWriter {
	return &statusWriter{out: out}
}

func (w *statusWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line; keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			return len(p), nil
		}
		if _, err := io.WriteString(w.out, styleLine(strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
			return 0, err
		}
	}
}

// Flush writes any trailing partial line.
func (w *statusWriter) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w.out, styleLine(w.buf.String()))
	w.buf.Reset()
	return err
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "OK "):
		return okStyle.Render(line)
	case strings.HasPrefix(line, "ERR:"):
		return errStyle.Render(line)
	default:
		return line
	}
}
