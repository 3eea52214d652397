package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var sugaredLogger *zap.SugaredLogger
var logger *zap.Logger

var Config = zap.NewDevelopmentConfig()

func init() {
	Config.EncoderConfig.NewReflectedEncoder = func(w io.Writer) zapcore.ReflectedEncoder {
		return yaml.NewEncoder(w)
	}
	Config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	Config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	Config.Level.SetLevel(zapcore.InfoLevel)
	logger = zap.New(
		zapcore.NewCore(zapcore.NewConsoleEncoder(Config.EncoderConfig), zapcore.AddSync(multipleWriter), Config.Level),
	)
	sugaredLogger = logger.Sugar()
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

// SetLevel 解析级别字符串，无法识别时保持 info
func SetLevel(level string) error {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		Config.Level.SetLevel(zapcore.InfoLevel)
		return err
	}
	Config.Level.SetLevel(l)
	return nil
}

func Sync() error {
	return logger.Sync()
}
