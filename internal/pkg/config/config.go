package config

import (
	"errors"
	"fmt"
	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
)

const (
	defaultTag     = "config_default"
	descriptionTag = "config_description"

	// EnvFile is read from the working directory when present.
	EnvFile = ".env"
)

// Validator is implemented by configuration structs that check their values
// after all sources have been applied.
type Validator interface {
	Validate() error
}

var parseError = func(err error) error {
	return fmt.Errorf("error parsing configuration: %w", err)
}

// Parse fills configStruct from command line flags, environment variables and
// the local .env file. Any failure is fatal.
func Parse(configStruct any, applicationName string) {
	err := ParseArgs(configStruct, applicationName, os.Args[1:], EnvFile)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("config.Parse() failed")
	}
}

// ParseArgs is Parse with explicit arguments and env file path. An empty
// envFile disables the file source.
//
// Precedence is flag, then environment, then env file, then config_default.
// Environment variables are named PREFIX_FIELD_NAME where PREFIX is derived
// from applicationName ("math-service" -> "MATH_SERVICE") and FIELD_NAME is the
// snake case field name.
func ParseArgs(configStruct any, applicationName string, args []string, envFile string) error {
	structValue := reflect.ValueOf(configStruct)
	if structValue.Kind() != reflect.Pointer || structValue.Elem().Kind() != reflect.Struct {
		return parseError(fmt.Errorf("expected pointer to struct, got %T", configStruct))
	}
	structValue = structValue.Elem()
	structType := structValue.Type()

	prefix := EnvPrefix(applicationName)

	v := viper.New()
	v.SetEnvPrefix(prefix)

	flagSet := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		key := strcase.ToSnake(field.Name)
		defaultValue := field.Tag.Get(defaultTag)
		description := field.Tag.Get(descriptionTag)

		if err := addFlag(flagSet, field, defaultValue, description); err != nil {
			return parseError(err)
		}

		flag := flagSet.Lookup(field.Name)
		v.SetDefault(key, flag.DefValue)
		if err := v.BindEnv(key); err != nil {
			return parseError(err)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return parseError(err)
		}
	}

	if envFile != "" {
		overrides, err := readEnvFile(envFile, prefix)
		if err != nil {
			return parseError(err)
		}
		if err := v.MergeConfigMap(overrides); err != nil {
			return parseError(err)
		}
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return parseError(err)
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		key := strcase.ToSnake(field.Name)
		raw := v.Get(key)
		if err := setField(structValue.Field(i), raw); err != nil {
			return parseError(fmt.Errorf("invalid value %q for %s (%s_%s): %w",
				cast.ToString(raw), field.Name, prefix, strings.ToUpper(key), err))
		}

		log.Debug().Str("key", key).Interface("value", structValue.Field(i).Interface()).Msg("configuration value")
	}

	if validator, ok := configStruct.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return parseError(err)
		}
	}

	return nil
}

// EnvPrefix turns an application name into an environment variable prefix.
func EnvPrefix(applicationName string) string {
	replacer := strings.NewReplacer("-", "_", ".", "_", " ", "_")
	return strings.ToUpper(replacer.Replace(applicationName))
}

func addFlag(flagSet *pflag.FlagSet, field reflect.StructField, defaultValue string, description string) error {
	switch field.Type.Kind() {
	case reflect.String:
		flagSet.String(field.Name, defaultValue, description)
	case reflect.Bool:
		value, err := toBool(defaultValue)
		if err != nil {
			return fmt.Errorf("bad default for %s: %w", field.Name, err)
		}
		flagSet.Bool(field.Name, value, description)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := toInt64(orZero(defaultValue))
		if err != nil {
			return fmt.Errorf("bad default for %s: %w", field.Name, err)
		}
		flagSet.Int64(field.Name, value, description)
	case reflect.Float32, reflect.Float64:
		value, err := cast.ToFloat64E(orZero(defaultValue))
		if err != nil {
			return fmt.Errorf("bad default for %s: %w", field.Name, err)
		}
		flagSet.Float64(field.Name, value, description)
	default:
		return fmt.Errorf("unsupported field type %s for %s", field.Type, field.Name)
	}
	return nil
}

func setField(fieldValue reflect.Value, raw any) error {
	switch fieldValue.Kind() {
	case reflect.String:
		value, err := cast.ToStringE(raw)
		if err != nil {
			return err
		}
		fieldValue.SetString(value)
	case reflect.Bool:
		value, err := toBool(raw)
		if err != nil {
			return err
		}
		fieldValue.SetBool(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := toInt64(raw)
		if err != nil {
			return err
		}
		if fieldValue.OverflowInt(value) {
			return errors.New("value out of range")
		}
		fieldValue.SetInt(value)
	case reflect.Float32, reflect.Float64:
		value, err := cast.ToFloat64E(raw)
		if err != nil {
			return err
		}
		fieldValue.SetFloat(value)
	default:
		return fmt.Errorf("unsupported field type %s", fieldValue.Type())
	}
	return nil
}

// toInt64 reads strings as base 10 only, so 010 is ten and 0x1F40 is rejected.
func toInt64(raw any) (int64, error) {
	if s, ok := raw.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(raw)
}

// toBool also accepts yes/no and on/off.
func toBool(raw any) (bool, error) {
	if s, ok := raw.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "on":
			return true, nil
		case "no", "off", "":
			return false, nil
		}
	}
	return cast.ToBoolE(raw)
}

func orZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}

// readEnvFile returns the entries of a dotenv file that carry prefix, keyed by
// the lower case remainder of their name.
func readEnvFile(path string, prefix string) (map[string]any, error) {
	overrides := make(map[string]any)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return overrides, nil
		}
		return nil, err
	}

	fileViper := viper.New()
	fileViper.SetConfigFile(path)
	fileViper.SetConfigType("env")
	if err := fileViper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s failed: %w", path, err)
	}

	keyPrefix := strings.ToLower(prefix) + "_"
	for key, value := range fileViper.AllSettings() {
		if strings.HasPrefix(key, keyPrefix) {
			overrides[strings.TrimPrefix(key, keyPrefix)] = value
		}
	}

	return overrides, nil
}
