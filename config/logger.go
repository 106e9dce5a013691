package config

import "github.com/spf13/viper"

// Logger logger config struct
type Logger struct {
	Level           int
	Format          string
	Output          string
	OutputFile      string
	Desensitization *Desensitization
}

// Desensitization controls masking of sensitive log fields.
type Desensitization struct {
	Enabled         bool
	SensitiveFields []string
	MaskChar        string
	FixedMaskLength int
}

// Default sensitive field names
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "access_token", "authorization",
	"secret", "api_key",
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:           getIntOrDefault(v, "logger.level", 4),
		Format:          getStringOrDefault(v, "logger.format", "json"),
		Output:          getStringOrDefault(v, "logger.output", "stdout"),
		OutputFile:      v.GetString("logger.output_file"),
		Desensitization: getDesensitizationConfig(v),
	}
}

func getDesensitizationConfig(v *viper.Viper) *Desensitization {
	fields := v.GetStringSlice("logger.desensitization.sensitive_fields")
	if len(fields) == 0 {
		fields = defaultSensitiveFields
	}
	return &Desensitization{
		Enabled:         getBoolOrDefault(v, "logger.desensitization.enabled", true),
		SensitiveFields: fields,
		MaskChar:        getStringOrDefault(v, "logger.desensitization.mask_char", "*"),
		FixedMaskLength: getIntOrDefault(v, "logger.desensitization.fixed_mask_length", 6),
	}
}
