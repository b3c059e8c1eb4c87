package logger

type Logger interface {
	Debug(msg ...any)
	Info(msg ...any)
	Error(msg ...any)
	LogIfError(when string, err error)
}

type logger struct {
	tag string
}

func NewWithTag(tag string) Logger {
	return &logger{tag: tag}
}

func (instance *logger) Debug(msg ...any) {
	debugInt(instance.tag, msg...)
}

func (instance *logger) Info(msg ...any) {
	infoInt(instance.tag, msg...)
}

func (instance *logger) Error(msg ...any) {
	errorInt(instance.tag, msg...)
}

func (instance *logger) LogIfError(when string, err error) {
	if err != nil {
		errorInt(instance.tag, when+":", err)
	}
}
