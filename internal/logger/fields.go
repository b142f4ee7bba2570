package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProfileKind is the structured log field key for the profile kind.
	FieldProfileKind = "profile_kind"
	// FieldProfileID is the structured log field key for the profile identifier.
	FieldProfileID = "profile_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ProfileFields returns the fields identifying a learner or tutor profile.
func ProfileFields(kind, id string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfileKind, Value: kind},
		StringField{Key: FieldProfileID, Value: id},
	)
}

// WithProfile attaches the profile fields to the provided logger.
func WithProfile(logger *zap.Logger, kind, id string) *zap.Logger {
	return WithFields(logger, ProfileFields(kind, id)...)
}
