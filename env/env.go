package env

import (
	"github.com/joho/godotenv"
	"os"
	"strconv"
)

const defaultPropertiesFileName = ".env"

var properties map[string]string

func init() {
	LoadProperties(defaultPropertiesFileName)
}

// LoadProperties replaces the fallback properties with the contents of a dotenv file.
// A missing or malformed file leaves no fallback at all.
func LoadProperties(fileName string) {
	props, err := godotenv.Read(fileName)
	if err != nil {
		properties = nil
		return
	}
	properties = props
}

type EnvValue struct {
	name    string
	value   string
	present bool
}

// IsPresent reports whether the variable is defined, even if it is empty.
func (instance *EnvValue) IsPresent() bool {
	return instance.present
}

func (instance *EnvValue) AsStringDefault(def string) string {
	if instance.IsPresent() && len(instance.value) != 0 {
		return instance.value
	} else {
		return def
	}
}

// AsBoolDefault never panics: unparsable values fall back to def as well.
func (instance *EnvValue) AsBoolDefault(def bool) bool {
	if !instance.IsPresent() {
		return def
	}
	if boolValue, err := strconv.ParseBool(instance.value); err == nil {
		return boolValue
	}
	return def
}

func GetEnv(name string) *EnvValue {
	if value, found := os.LookupEnv(name); found {
		return &EnvValue{name: name, value: value, present: true}
	}
	if value, found := properties[name]; found {
		return &EnvValue{name: name, value: value, present: true}
	}
	return &EnvValue{name: name}
}

// Lookup has the shape of os.LookupEnv but also consults the properties file.
func Lookup(name string) (string, bool) {
	value := GetEnv(name)
	return value.value, value.present
}
