package settings

import (
	"os"
	"strings"
)

const envKeyPrefix string = "SLASH3"

const configPathEnvKey string = envKeyPrefix + "_CONFIG"
const logLevelEnvKey string = envKeyPrefix + "_LOG_LEVEL"
const outputEnvKey string = envKeyPrefix + "_OUTPUT"
const strictBucketNamesEnvKey string = envKeyPrefix + "_STRICT_BUCKET_NAMES"
const metricsTextfileEnvKey string = envKeyPrefix + "_METRICS_TEXTFILE"
const defaultBucketEnvKey string = envKeyPrefix + "_DEFAULT_BUCKET"

func getStringFromEnv(envKey string) *string {
	val := os.Getenv(envKey)
	if val == "" {
		return nil
	}
	return &val
}

func getBoolFromEnv(envKey string) *bool {
	val := os.Getenv(envKey)
	val = strings.ToLower(val)
	if val == "" {
		return nil
	}
	retval := val == "1" || val == "t" || val == "true"
	return &retval
}

func loadSettingsFromEnv() *Settings {
	return &Settings{
		configPath:        getStringFromEnv(configPathEnvKey),
		logLevel:          getStringFromEnv(logLevelEnvKey),
		output:            getStringFromEnv(outputEnvKey),
		strictBucketNames: getBoolFromEnv(strictBucketNamesEnvKey),
		metricsTextfile:   getStringFromEnv(metricsTextfileEnvKey),
		defaultBucket:     getStringFromEnv(defaultBucketEnvKey),
	}
}
