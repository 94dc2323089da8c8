package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Infof("hidden %d", 1)
	l.Errorf("shown %d", 2)
	if got := buf.String(); got != "[ERROR] shown 2\n" {
		t.Errorf("quiet logger wrote %q", got)
	}

	buf.Reset()
	l = New(&buf, true)
	l.Infof("progress %s", "ok")
	if !strings.Contains(buf.String(), "[INFO] progress ok") {
		t.Errorf("verbose logger wrote %q", buf.String())
	}
}
