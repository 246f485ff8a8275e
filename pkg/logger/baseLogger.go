package logger

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// BaseLogger writes prefixed messages to an io.Writer and mirrors them
// to the standard logger.
type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
	}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(l.prefix+" "+format, v...)
	if l.writer != nil {
		fmt.Fprintln(l.writer, message)
	}
	log.Print(message)
}

func (l *BaseLogger) WithPrefix(extraPrefix string) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &BaseLogger{
		writer: l.writer,
		prefix: l.prefix + " " + extraPrefix,
	}
}
