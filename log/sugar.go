package log

func Info(args ...any) {
	sugaredLogger.Info(args...)
}

func Error(args ...any) {
	sugaredLogger.Error(args...)
}

// Infof logs a message at level Info on the standard logger.
func Infof(format string, args ...interface{}) {
	sugaredLogger.Infof(format, args...)
}

// Warnf logs a message at level Warn on the standard logger.
func Warnf(format string, args ...interface{}) {
	sugaredLogger.Warnf(format, args...)
}

// Errorf logs a message at level Error on the standard logger.
func Errorf(format string, args ...interface{}) {
	sugaredLogger.Errorf(format, args...)
}
