package log

import (
	"regexp"

	"github.com/sirupsen/logrus"
)

const redacted = "[REDACTED]"

// Parâmetros de query e campos JSON que carregam segredos do Meta
var secretPattern = regexp.MustCompile(`((?:^|[?&\s])(?:access_token|fb_exchange_token|client_secret|code)=)[^&\s"]+|("(?:access_token|client_secret)"\s*:\s*")[^"]*`)

var secretFields = map[string]struct{}{
	"access_token":  {},
	"client_secret": {},
	"authorization": {},
}

// RedactHook mascara tokens em mensagens e campos antes de qualquer saída
type RedactHook struct{}

func (RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (RedactHook) Fire(entry *logrus.Entry) error {
	entry.Message = Redact(entry.Message)

	for key, value := range entry.Data {
		if _, secret := secretFields[key]; secret {
			entry.Data[key] = redacted
			continue
		}

		switch v := value.(type) {
		case string:
			entry.Data[key] = Redact(v)
		case error:
			entry.Data[key] = Redact(v.Error())
		}
	}

	return nil
}

func Redact(s string) string {
	return secretPattern.ReplaceAllString(s, "${1}${2}"+redacted)
}
