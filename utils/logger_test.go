package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	log, _ := test.NewNullLogger()
	require.False(t, DebugEnabled(log))
	require.False(t, DebugEnabled(log.WithField("component", "climb")))

	log.SetLevel(logrus.DebugLevel)
	require.True(t, DebugEnabled(log))
	require.True(t, DebugEnabled(log.WithField("component", "climb")))

	require.False(t, DebugEnabled(LoggerOrNop(nil)))
}
