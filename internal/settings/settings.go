package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"unsafe"
)

const defaultConfigPath = "slash3.json"
const defaultLogLevel = "info"
const defaultOutput = OutputText
const defaultStrictBucketNames = false

const (
	OutputText = "text"
	OutputJson = "json"
)

const mergableTagKey = "mergable"

type Settings struct {
	configPath        *string `mergable:""`
	logLevel          *string `mergable:""`
	output            *string `mergable:""`
	strictBucketNames *bool   `mergable:""`
	metricsTextfile   *string `mergable:""`
	defaultBucket     *string `mergable:""`
}

func valueOrDefault[V any](v *V, defaultValue V) V {
	if v == nil {
		return defaultValue
	}
	return *v
}

func (s *Settings) ConfigPath() string {
	return valueOrDefault(s.configPath, defaultConfigPath)
}

func (s *Settings) LogLevel() slog.Level {
	var level slog.Level
	// validate rejects unparsable levels, so the error can only occur on a
	// Settings that did not come from LoadSettings.
	if err := level.UnmarshalText([]byte(valueOrDefault(s.logLevel, defaultLogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (s *Settings) Output() string {
	return valueOrDefault(s.output, defaultOutput)
}

func (s *Settings) StrictBucketNames() bool {
	return valueOrDefault(s.strictBucketNames, defaultStrictBucketNames)
}

// MetricsTextfile returns the path metrics are written to, or nil when
// metrics are disabled.
func (s *Settings) MetricsTextfile() *string {
	return s.metricsTextfile
}

// DefaultBucket returns the bucket used for arguments that are bare keys,
// or nil when bare keys are rejected.
func (s *Settings) DefaultBucket() *string {
	return s.defaultBucket
}

func (s *Settings) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(valueOrDefault(s.logLevel, defaultLogLevel))); err != nil {
		return fmt.Errorf("invalid logLevel: %w", err)
	}
	switch s.Output() {
	case OutputText, OutputJson:
	default:
		return fmt.Errorf("invalid output %q, expected %q or %q", s.Output(), OutputText, OutputJson)
	}
	if s.defaultBucket != nil && *s.defaultBucket == "" {
		return errors.New("defaultBucket must not be empty")
	}
	if s.defaultBucket != nil && strings.Contains(*s.defaultBucket, "/") {
		return fmt.Errorf("defaultBucket %q must not contain \"/\"", *s.defaultBucket)
	}
	return nil
}

func getUnexportedField(field reflect.Value) interface{} {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Interface()
}

func setUnexportedField(field reflect.Value, value interface{}) {
	reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Set(reflect.ValueOf(value))
}

func isNilish(val any) bool {
	if val == nil {
		return true
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return v.IsNil()
	}

	return false
}

func (s *Settings) merge(other *Settings) {
	fields := reflect.VisibleFields(reflect.TypeOf(other).Elem())
	sStruct := reflect.ValueOf(s).Elem()
	otherStruct := reflect.ValueOf(other).Elem()

	for _, field := range fields {
		if _, ok := field.Tag.Lookup(mergableTagKey); !ok {
			continue
		}
		otherFieldValue := getUnexportedField(otherStruct.FieldByName(field.Name))
		if field.Type.Kind() == reflect.Pointer && isNilish(otherFieldValue) {
			continue
		}
		setUnexportedField(sStruct.FieldByName(field.Name), otherFieldValue)
	}
}

// mergeSettings merges left to right, later non-nil values win.
func mergeSettings(settings ...*Settings) *Settings {
	var result *Settings = &Settings{}
	for _, setting := range settings {
		if setting == nil {
			continue
		}
		result.merge(setting)
	}
	return result
}

// LoadSettings merges the json config file, the flags in args and the
// SLASH3_* environment variables, in increasing order of precedence. It
// returns the merged settings and the positional arguments left after the
// flags.
func LoadSettings(args []string) (*Settings, []string, error) {
	cmdArgsSettings, positional, err := loadSettingsFromCmdArgs(args)
	if err != nil {
		return nil, nil, err
	}
	envSettings := loadSettingsFromEnv()

	configPath := mergeSettings(cmdArgsSettings, envSettings).ConfigPath()
	jsonSettings, err := loadSettingsFromJson(configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("couldn't load %s: %w", configPath, err)
	}

	settings := mergeSettings(jsonSettings, cmdArgsSettings, envSettings)
	if err := settings.validate(); err != nil {
		return nil, nil, err
	}
	return settings, positional, nil
}
