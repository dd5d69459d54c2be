package utils

import (
	"strconv"

	"github.com/CMSgov/edi834-app/conf"
	"github.com/sirupsen/logrus"
)

// FromEnv always returns a string that is either a non-empty value from the configuration key or
// the string otherwise
func FromEnv(key, otherwise string) string {
	s := conf.GetEnv(key)
	if s == "" {
		logrus.Infof(`No %s value; using %s instead.`, key, otherwise)
		return otherwise
	}
	return s
}

func GetEnvInt(varName string, defaultVal int) int {
	v := conf.GetEnv(varName)
	if v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultVal
}
