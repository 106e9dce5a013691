package logger

import (
	"strings"

	"github.com/ncobase/taskapi/config"

	"github.com/sirupsen/logrus"
)

// Desensitizer masks log fields whose names look sensitive.
type Desensitizer struct {
	fields []string
	mask   string
}

// NewDesensitizer creates a new desensitizer instance
func NewDesensitizer(cfg *config.Desensitization) *Desensitizer {
	maskChar := cfg.MaskChar
	if maskChar == "" {
		maskChar = "*"
	}
	n := cfg.FixedMaskLength
	if n <= 0 {
		n = 6
	}
	fields := make([]string, 0, len(cfg.SensitiveFields))
	for _, f := range cfg.SensitiveFields {
		fields = append(fields, strings.ToLower(f))
	}
	return &Desensitizer{fields: fields, mask: strings.Repeat(maskChar, n)}
}

// DesensitizeFields processes log fields and masks sensitive data
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		result[key] = d.desensitizeValue(key, value, 0)
	}
	return result
}

// desensitizeValue masks value when key is sensitive and walks nested maps.
func (d *Desensitizer) desensitizeValue(key string, value any, depth int) any {
	if value == nil || depth > 10 {
		return value
	}
	if d.isSensitiveField(key) {
		if s, ok := value.(string); ok && s == "" {
			return s
		}
		return d.mask
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, nested := range v {
			out[k] = d.desensitizeValue(k, nested, depth+1)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, nested := range v {
			if d.isSensitiveField(k) && nested != "" {
				nested = d.mask
			}
			out[k] = nested
		}
		return out
	default:
		return value
	}
}

// isSensitiveField checks if field name contains sensitive keywords
func (d *Desensitizer) isSensitiveField(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	lowerName := strings.ToLower(fieldName)
	for _, f := range d.fields {
		if strings.Contains(lowerName, f) {
			return true
		}
	}
	return false
}
