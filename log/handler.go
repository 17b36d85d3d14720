package log

import (
	"fmt"

	log "github.com/inconshreveable/log15"
)

// Handler interface defines where and how log records are written.
// Handlers are composable, providing you great flexibility in combining them
// to achieve the logging structure that suits your applications.
type Handler interface {
	Log(r Record) error
}

// FileHandler returns a handler which writes log records
// to the given file using the logfmt format. If the path already exists,
// FileHandler will append to the given file.
// If it does not, FileHandler will create the file with mode 0644.
func FileHandler(path string) (Handler, error) {
	handler, err := log.FileHandler(path, log.LogfmtFormat())
	if err != nil {
		return nil, fmt.Errorf("couldn't create FileHandler: %s", err.Error())
	}

	return &fromLog15Handler{handler}, nil
}

// StderrHandler returns a handler which writes log records to stderr,
// the same sink the std logger uses by default.
func StderrHandler() Handler {
	return &fromLog15Handler{log.StderrHandler}
}

// toLog15Handler is used to map our Handler type
// to the log15.Handler type
type toLog15Handler struct {
	internal Handler
}

// Log implements log15.Handler.Log
func (handler *toLog15Handler) Log(r *log.Record) error {
	return handler.internal.Log(Record(r))
}

// fromLog15Handler is used to map the log15.Handler type
// to our Handler type
type fromLog15Handler struct {
	internal log.Handler
}

// Log implements Handler.Log
func (handler *fromLog15Handler) Log(r Record) error {
	return handler.internal.Log((*log.Record)(r))
}

func newLoggerHandler(level Level, handlers []Handler) log.Handler {
	var logHandler log.Handler
	if len(handlers) == 0 {
		logHandler = log.StderrHandler
	} else {
		handlerArr := []log.Handler{log.StderrHandler}
		for _, handler := range handlers {
			var lh log.Handler
			if l, ok := handler.(*fromLog15Handler); ok {
				lh = l.internal
			} else {
				lh = &toLog15Handler{handler}
			}
			handlerArr = append(handlerArr, lh)
		}
		logHandler = log.MultiHandler(handlerArr...)
	}

	return log.LvlFilterHandler(log.Lvl(level),
		log.CallerFileHandler(logHandler))
}
