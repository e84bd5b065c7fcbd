package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Newはアプリ全体で使うlogrusロガーを返す。
// prodはJSON、devは人間が読みやすいテキスト。
func New(goEnv string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if goEnv == "prod" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}
