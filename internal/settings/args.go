package settings

import (
	"flag"
	"io"
)

func registerStringFlag(flagSet *flag.FlagSet, name string, defaultValue string, description string) func() *string {
	stringVar := flagSet.String(name, defaultValue, description)
	return func() *string {
		if !isFlagSet(flagSet, name) {
			return nil
		}
		return stringVar
	}
}

func registerBoolFlag(flagSet *flag.FlagSet, name string, defaultValue bool, description string) func() *bool {
	boolVar := flagSet.Bool(name, defaultValue, description)
	return func() *bool {
		if !isFlagSet(flagSet, name) {
			return nil
		}
		return boolVar
	}
}

func isFlagSet(flagSet *flag.FlagSet, name string) bool {
	found := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func loadSettingsFromCmdArgs(args []string) (*Settings, []string, error) {
	flagSet := flag.NewFlagSet("slash3", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	configPathAccessor := registerStringFlag(flagSet, "config", defaultConfigPath, "the json config file")
	logLevelAccessor := registerStringFlag(flagSet, "logLevel", defaultLogLevel, "the log level (debug, info, warn or error)")
	outputAccessor := registerStringFlag(flagSet, "output", defaultOutput, "the output format (text or json)")
	strictBucketNamesAccessor := registerBoolFlag(flagSet, "strictBucketNames", defaultStrictBucketNames, "reject bucket names that break the s3 naming rules")
	metricsTextfileAccessor := registerStringFlag(flagSet, "metricsTextfile", "", "write prometheus metrics to this file")
	defaultBucketAccessor := registerStringFlag(flagSet, "defaultBucket", "", "the bucket used for arguments that are bare keys")

	err := flagSet.Parse(args)
	if err != nil {
		return nil, nil, err
	}

	return &Settings{
		configPath:        configPathAccessor(),
		logLevel:          logLevelAccessor(),
		output:            outputAccessor(),
		strictBucketNames: strictBucketNamesAccessor(),
		metricsTextfile:   metricsTextfileAccessor(),
		defaultBucket:     defaultBucketAccessor(),
	}, flagSet.Args(), nil
}
