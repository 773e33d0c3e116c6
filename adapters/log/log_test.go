package stdlogadapter

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))

	l.Debugf("remaining=%d", 9)
	l.Infof("query=%s", "cats")
	l.Warnf("threshold %d", 10)
	l.Errorf("store: %v", "down")

	assert.Equal(t, "[DEBUG] remaining=9\n[INFO] query=cats\n[WARN] threshold 10\n[ERROR] store: down\n", buf.String())
}
