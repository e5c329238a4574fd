package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jdillenkofer/slash3"
	"github.com/jdillenkofer/slash3/internal/metrics"
	"github.com/jdillenkofer/slash3/internal/ptrutils"
	"github.com/jdillenkofer/slash3/internal/settings"
	"github.com/jdillenkofer/slash3/internal/sliceutils"
	"github.com/jdillenkofer/slash3/s3input"
)

const subcommandParse = "parse"
const subcommandJoin = "join"
const subcommandAppend = "append"
const subcommandParent = "parent"
const subcommandLeaf = "leaf"
const subcommandRelative = "relative"
const subcommandUnique = "unique"
const subcommandValidate = "validate"
const subcommandRequest = "request"

var subcommands = []string{
	subcommandParse, subcommandJoin, subcommandAppend, subcommandParent, subcommandLeaf,
	subcommandRelative, subcommandUnique, subcommandValidate, subcommandRequest,
}

const (
	exitOk      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage")

type app struct {
	settings *settings.Settings
	stdin    io.Reader
	stdout   io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options] [args]\n", os.Args[0], strings.Join(subcommands, "|"))
		os.Exit(exitUsage)
	}
	os.Exit(run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
}

func run(subcommand string, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var programLevel = new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: programLevel,
	}))

	s, positional, err := settings.LoadSettings(args)
	if err != nil {
		logger.Error(fmt.Sprint("Error while loading settings: ", err))
		return exitUsage
	}
	programLevel.Set(s.LogLevel())
	slash3.SetLogger(logger)
	defer slash3.SetLogger(nil)

	a := &app{settings: s, stdin: stdin, stdout: stdout}

	switch subcommand {
	case subcommandParse:
		err = a.parse(positional)
	case subcommandJoin:
		err = a.extend(positional, slash3.Uri.Join)
	case subcommandAppend:
		err = a.extend(positional, slash3.Uri.Append)
	case subcommandParent:
		err = a.parent(positional)
	case subcommandLeaf:
		err = a.leaf(positional)
	case subcommandRelative:
		err = a.relative(positional)
	case subcommandUnique:
		err = a.unique(positional)
	case subcommandValidate:
		err = a.validate(logger)
	case subcommandRequest:
		err = a.request(positional)
	default:
		logger.Error(fmt.Sprintf("Invalid subcommand: %s. Expected one of %s.", subcommand, strings.Join(subcommands, ", ")))
		return exitUsage
	}

	if errors.Is(err, errUsage) {
		logger.Error(err.Error())
		return exitUsage
	}
	if err != nil {
		logger.Error(err.Error())
		return exitFailure
	}
	return exitOk
}

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// resolve parses arg as a URI. A bare key is placed in the default bucket
// when one is configured.
func (a *app) resolve(arg string) (slash3.Uri, error) {
	var u slash3.Uri
	var err error
	if defaultBucket := a.settings.DefaultBucket(); defaultBucket != nil && !strings.HasPrefix(arg, slash3.Scheme+"://") {
		u, err = slash3.ToUri(*defaultBucket, arg)
	} else {
		u, err = slash3.ParseUri(arg)
	}
	if err != nil {
		return slash3.Uri{}, err
	}
	if a.settings.StrictBucketNames() {
		if err := u.ValidateBucket(); err != nil {
			return slash3.Uri{}, err
		}
	}
	return u, nil
}

func (a *app) print(v any, text string) error {
	if a.settings.Output() == settings.OutputJson {
		return json.NewEncoder(a.stdout).Encode(v)
	}
	_, err := fmt.Fprintln(a.stdout, text)
	return err
}

type description struct {
	Uri    slash3.Uri `json:"uri"`
	Bucket string     `json:"bucket"`
	Key    slash3.Key `json:"key"`
	Leaf   string     `json:"leaf"`
	Parent slash3.Uri `json:"parent"`
}

func describe(u slash3.Uri) description {
	return description{
		Uri:    u,
		Bucket: u.Bucket(),
		Key:    u.Key(),
		Leaf:   u.Leaf(),
		Parent: u.Parent(),
	}
}

func (d description) String() string {
	return fmt.Sprintf("uri=%s bucket=%s key=%s leaf=%s parent=%s", d.Uri, d.Bucket, d.Key, d.Leaf, d.Parent)
}

func (a *app) parse(args []string) error {
	if len(args) == 0 {
		return usage("%s <uri>...", subcommandParse)
	}
	uris := make([]slash3.Uri, 0, len(args))
	for _, arg := range args {
		u, err := a.resolve(arg)
		if err != nil {
			return err
		}
		uris = append(uris, u)
	}
	for _, d := range sliceutils.Map(describe, uris) {
		if err := a.print(d, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// extend applies op with every segment in turn, so join and append can
// build a URI from many parts.
func (a *app) extend(args []string, op func(slash3.Uri, string) (slash3.Uri, error)) error {
	if len(args) < 2 {
		return usage("join|append <uri> <segment>...")
	}
	u, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	for _, segment := range args[1:] {
		u, err = op(u, segment)
		if err != nil {
			return err
		}
	}
	return a.print(u, u.Uri())
}

func (a *app) parent(args []string) error {
	if len(args) != 1 {
		return usage("%s <uri>", subcommandParent)
	}
	u, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	parent := u.Parent()
	return a.print(parent, parent.Uri())
}

func (a *app) leaf(args []string) error {
	if len(args) != 1 {
		return usage("%s <uri>", subcommandLeaf)
	}
	u, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	return a.print(u.Leaf(), u.Leaf())
}

func (a *app) relative(args []string) error {
	if len(args) != 2 {
		return usage("%s <uri> <parent>", subcommandRelative)
	}
	u, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	parent, err := a.resolve(args[1])
	if err != nil {
		return err
	}
	rel, err := u.RelativeTo(parent)
	if err != nil {
		return err
	}
	return a.print(rel, rel)
}

func (a *app) unique(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("%s <uri> [suffix]", subcommandUnique)
	}
	u, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	suffix := ""
	if len(args) == 2 {
		suffix = args[1]
	}
	u, err = u.JoinUnique(suffix)
	if err != nil {
		return err
	}
	return a.print(u, u.Uri())
}

type validationResult struct {
	Line   int     `json:"line"`
	Input  string  `json:"input"`
	Result string  `json:"result"`
	Error  *string `json:"error,omitempty"`
}

// validate reads one URI per line from stdin and reports every invalid one.
// Blank lines are skipped.
func (a *app) validate(logger *slog.Logger) error {
	m, err := metrics.New()
	if err != nil {
		return err
	}

	invalid := 0
	scanner := bufio.NewScanner(a.stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		u, err := a.resolve(line)
		m.Observe(u, err)
		if err == nil {
			logger.Debug("valid uri", "line", lineNo, "uri", u.Uri())
			continue
		}
		invalid++
		result := validationResult{
			Line:   lineNo,
			Input:  line,
			Result: metrics.Result(err),
			Error:  ptrutils.ToPtr(err.Error()),
		}
		if err := a.print(result, fmt.Sprintf("%d: %s", lineNo, err)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if path := a.settings.MetricsTextfile(); path != nil {
		if err := m.WriteToTextfile(*path); err != nil {
			return fmt.Errorf("couldn't write metrics: %w", err)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid uri(s)", invalid)
	}
	return nil
}

func (a *app) request(args []string) error {
	if len(args) < 2 {
		return usage("%s get|head|put|delete|list <uri> | copy <src> <dst>", subcommandRequest)
	}
	uris := make([]slash3.Uri, 0, len(args)-1)
	for _, arg := range args[1:] {
		u, err := a.resolve(arg)
		if err != nil {
			return err
		}
		uris = append(uris, u)
	}

	var input any
	var err error
	switch op := args[0]; {
	case op == "copy" && len(uris) == 2:
		input, err = s3input.CopyObject(uris[0], uris[1])
	case op == "copy":
		return usage("%s copy <src> <dst>", subcommandRequest)
	case len(uris) != 1:
		return usage("%s %s takes exactly one uri", subcommandRequest, op)
	case op == "get":
		input, err = s3input.GetObject(uris[0])
	case op == "head":
		input, err = s3input.HeadObject(uris[0])
	case op == "put":
		input, err = s3input.PutObject(uris[0], nil)
	case op == "delete":
		input, err = s3input.DeleteObject(uris[0])
	case op == "list":
		input = s3input.ListObjectsV2(uris[0])
	default:
		return usage("unknown request %q", op)
	}
	if err != nil {
		return err
	}

	// always json, the inputs have no useful text form
	data, err := json.Marshal(input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}
