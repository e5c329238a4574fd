package settings

import (
	"encoding/json"
	"os"
)

type jsonSettings struct {
	LogLevel          *string `json:"logLevel"`
	Output            *string `json:"output"`
	StrictBucketNames *bool   `json:"strictBucketNames"`
	MetricsTextfile   *string `json:"metricsTextfile"`
	DefaultBucket     *string `json:"defaultBucket"`
}

func loadSettingsFromJson(jsonFile string) (*Settings, error) {
	jsonData, err := os.ReadFile(jsonFile)
	if err != nil {
		return nil, err
	}
	var js jsonSettings
	err = json.Unmarshal(jsonData, &js)
	if err != nil {
		return nil, err
	}
	return &Settings{
		logLevel:          js.LogLevel,
		output:            js.Output,
		strictBucketNames: js.StrictBucketNames,
		metricsTextfile:   js.MetricsTextfile,
		defaultBucket:     js.DefaultBucket,
	}, nil
}
