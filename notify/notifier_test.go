package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, Delay(Error))
	assert.Equal(t, 3*time.Second, Delay(Success))
	assert.Equal(t, 3*time.Second, Delay(Level("bogus")))
}

func TestNormalize_UnknownIsInfo(t *testing.T) {
	assert.Equal(t, Info, Normalize(Level("shout")))
	assert.Equal(t, Warning, Normalize(Warning))
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	NewWriterNotifier(&buf).Show("Saved", Success)
	assert.Equal(t, "✔ Saved\n", buf.String())
}

func TestLogNotifier_MapsLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	n := NewLogNotifier(zap.New(core))

	n.Show("bad", Error)
	n.Show("careful", Warning)
	n.Show("hello", "other")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	}
}

func TestRecorderAndMulti(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Multi{a, b}.Show("hi", Info)

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, Notice{Message: "hi", Level: Info, Delay: 3 * time.Second}, last)
	assert.Len(t, a.Notices(), 1)

	_, ok = (&Recorder{}).Last()
	assert.False(t, ok)
}
