package bsonjson

import "github.com/sirupsen/logrus"

// defaultLogger is used whenever an Options value does not supply its own
// *logrus.Logger. It is quiet by default (Warn and above) so that library
// consumers don't get unsolicited log output; callers who want the
// Debug-level container-entry/exit tracing can pass their own Logger with
// a lower level set.
var defaultLogger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}
