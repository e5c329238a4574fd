package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	testutils "github.com/jdillenkofer/slash3/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, subcommand string, args ...string) (int, string, string) {
	t.Helper()
	// keep a developer's slash3.json out of the tests
	args = append([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, args...)
	var stdout, stderr bytes.Buffer
	code := run(subcommand, args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParse(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "parse", "s3://circus/private/clowns.jpg")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "uri=s3://circus/private/clowns.jpg bucket=circus key=private/clowns.jpg leaf=clowns.jpg parent=s3://circus/private/\n", stdout)
}

func TestParseJson(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "parse", "-output", "json", "s3://circus")
	assert.Equal(t, exitOk, code)
	assert.JSONEq(t, `{"uri":"s3://circus/","bucket":"circus","key":"","leaf":"","parent":"s3://circus/"}`, stdout)
}

func TestParseInvalid(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, stderr := runCommand(t, "", "parse", "clowns.jpg")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `is not an S3 URI`)
}

func TestDefaultBucket(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "parent", "-defaultBucket", "circus", "private/clowns.jpg")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "s3://circus/private/\n", stdout)
}

func TestDefaultBucketWithDelimiter(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, stderr := runCommand(t, "", "parent", "-defaultBucket", "circus/private", "clowns.jpg")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "defaultBucket")
}

func TestJoinAndAppend(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "join", "s3://expo", "photos", "burger-")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "s3://expo/photos/burger-\n", stdout)

	code, stdout, _ = runCommand(t, "", "append", "s3://expo/photos/burger-", "polenta.jpg")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "s3://expo/photos/burger-polenta.jpg\n", stdout)

	code, _, _ = runCommand(t, "", "join", "s3://expo")
	assert.Equal(t, exitUsage, code)
}

func TestLeafAndRelative(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "leaf", "s3://circus/staff/photos/clowns.jpg")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "clowns.jpg\n", stdout)

	code, stdout, _ = runCommand(t, "", "relative", "s3://circus/private/clowns.jpg", "s3://circus/")
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "private/clowns.jpg\n", stdout)

	code, _, stderr := runCommand(t, "", "relative", "s3://circus/clowns.jpg", "s3://burgers/")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "different buckets")
}

func TestUnique(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "unique", "s3://circus/uploads/", ".jpg")
	assert.Equal(t, exitOk, code)
	assert.True(t, strings.HasPrefix(stdout, "s3://circus/uploads/"))
	assert.True(t, strings.HasSuffix(stdout, ".jpg\n"))
}

func TestValidate(t *testing.T) {
	testutils.SkipIfIntegration(t)

	metricsPath := filepath.Join(t.TempDir(), "slash3.prom")
	input := "s3://circus/clowns.jpg\n\nclowns.jpg\ns3://Circus/clowns.jpg\ns3://circus//clowns.jpg\n"

	code, stdout, _ := runCommand(t, input, "validate", "-strictBucketNames", "-output", "json", "-metricsTextfile", metricsPath)
	assert.Equal(t, exitFailure, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	var results []validationResult
	for _, line := range lines {
		var result validationResult
		require.NoError(t, json.Unmarshal([]byte(line), &result))
		results = append(results, result)
	}
	assert.Equal(t, 3, results[0].Line)
	assert.Equal(t, "malformed_uri", results[0].Result)
	assert.Equal(t, "invalid_bucket", results[1].Result)
	assert.Equal(t, "malformed_key", results[2].Result)
	require.NotNil(t, results[2].Error)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `slash3_validate_uris_total{result="valid"} 1`)
	assert.Contains(t, string(data), `slash3_validate_uris_total{result="malformed_uri"} 1`)
}

func TestValidateAllValid(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "s3://circus/\ns3://burgers/zombies.jpg\n", "validate")
	assert.Equal(t, exitOk, code)
	assert.Empty(t, stdout)
}

func TestRequest(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, stdout, _ := runCommand(t, "", "request", "get", "s3://circus/clowns.jpg")
	assert.Equal(t, exitOk, code)
	var get map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &get))
	assert.Equal(t, "circus", get["Bucket"])
	assert.Equal(t, "clowns.jpg", get["Key"])

	code, stdout, _ = runCommand(t, "", "request", "list", "s3://circus/private/")
	assert.Equal(t, exitOk, code)
	var list map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &list))
	assert.Equal(t, "private/", list["Prefix"])
	assert.Equal(t, "/", list["Delimiter"])

	code, stdout, _ = runCommand(t, "", "request", "copy", "s3://circus/clowns.jpg", "s3://burgers/clowns.jpg")
	assert.Equal(t, exitOk, code)
	assert.Contains(t, stdout, `"CopySource":"circus/clowns.jpg"`)

	code, _, _ = runCommand(t, "", "request", "get", "s3://circus/")
	assert.Equal(t, exitFailure, code)

	code, _, _ = runCommand(t, "", "request", "burn", "s3://circus/clowns.jpg")
	assert.Equal(t, exitUsage, code)

	code, _, stderr := runCommand(t, "", "request", "copy", "s3://circus/clowns.jpg")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "copy <src> <dst>")
	assert.NotContains(t, stderr, "exactly one uri")
}

func TestUnknownSubcommand(t *testing.T) {
	testutils.SkipIfIntegration(t)

	code, _, stderr := runCommand(t, "", "juggle")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Invalid subcommand")
}
