package net64update

import (
	"bytes"
	"context"
	"errors"
	stdlog "log"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusReceivesCheckFailureAsWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	up := newTestUpdater(t, NewFailingSource(errors.New("dial tcp: no route to host")), "1.0.0", Config{})
	result := up.CheckForUpdate(context.Background())
	require.True(t, result.Failed())

	var warnings []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings = append(warnings, entry)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "no route to host")
	assert.Contains(t, warnings[0].Message, "tarnadas/net64plus")
}

func TestStandardLoggerReceivesPrefixedWarning(t *testing.T) {
	buffer := &bytes.Buffer{}
	SetLogger(stdlog.New(buffer, "", 0))
	t.Cleanup(func() { SetLogger(nil) })

	warnf("server listing failed: %s", "timeout")
	assert.Equal(t, "WARN server listing failed: timeout\n", buffer.String())
}

func TestDefaultLoggerDiscards(t *testing.T) {
	SetLogger(nil)
	assert.IsType(t, &emptyLogger{}, log)
	assert.NotPanics(t, func() {
		warnf("nothing %d", 1)
		log.Print("nothing")
	})
}
