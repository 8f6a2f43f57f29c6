// objmerge merges Wavefront OBJ files into one file with one named
// sub-object per input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/objmerge/internal/config"
	"github.com/Faultbox/objmerge/internal/discover"
	"github.com/Faultbox/objmerge/internal/logger"
	"github.com/Faultbox/objmerge/pkg/merge"
	"github.com/Faultbox/objmerge/pkg/obj"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// errUsage signals a usage error already reported to stderr.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "merge", "m":
		err = cmdMerge(args, os.Stdout)
	case "info", "i":
		err = cmdInfo(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objmerge - Wavefront OBJ merge utility

Usage:
  objmerge <command> [options]

Commands:
  merge [flags] <dir | file.obj ...>  Merge OBJ files into one
  info <file.obj ...>                 Show counts and bounds per file
  config [-save]                      Print the effective configuration

Merge flags:
  -o <file>           Output file (default merged_output.obj)
  -markers <style>    both, object or group (default both)
  -strict             Reject indices beyond a source's tables
  -workers <n>        Parse up to n files concurrently
  -summary <file>     Write a YAML summary of the merge
  -config <file>      Config file (default ./objmerge.yaml)
  -debug              Enable debug logging
  -log-file <file>    Also write logs to this file

Examples:
  objmerge merge ./parts
  objmerge merge -o scene.obj cube.obj pyramid.obj
  objmerge info scene.obj`)
}

func cmdMerge(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	summaryPath := fs.String("summary", "", "Write a YAML summary to this file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objmerge merge [flags] <dir | file.obj ...>")
		return errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	markers, err := merge.ParseMarkers(cfg.Merge.Markers)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	inputs, err := discover.New().Inputs(ctx, fs.Args())
	if err != nil {
		return err
	}
	logger.Debug("resolved inputs", zap.Strings("inputs", inputs))

	m := merge.New(merge.Options{
		Markers:   markers,
		Strict:    cfg.Merge.Strict,
		Workers:   cfg.Merge.Workers,
		MaxSuffix: cfg.Merge.MaxSuffix,
		Logger:    logger.Named("merge"),
	})
	sum, err := m.Merge(ctx, inputs, cfg.Merge.Output)
	if err != nil {
		return err
	}

	if *summaryPath != "" {
		data, err := yaml.Marshal(sum)
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		if err := os.WriteFile(*summaryPath, data, 0644); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	fmt.Fprintf(stdout, "Merged %d files into '%s' (%d vertices, %d faces)\n",
		sum.Sources, sum.Output, sum.Vertices, sum.Faces)
	for _, o := range sum.Objects {
		fmt.Fprintf(stdout, "  %-24s %6d v %6d f  <- %s\n", o.Name, o.Vertices, o.Faces, o.Source)
	}
	return nil
}

func cmdInfo(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objmerge info <file.obj ...>")
		return errUsage
	}

	files, err := discover.New().Inputs(context.Background(), args)
	if err != nil {
		return err
	}

	for _, path := range files {
		m, err := obj.ParseFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "File:      %s\n", path)
		fmt.Fprintf(stdout, "Name:      %s\n", m.Name)
		fmt.Fprintf(stdout, "Vertices:  %d\n", m.Vertices)
		fmt.Fprintf(stdout, "TexCoords: %d\n", m.TexCoords)
		fmt.Fprintf(stdout, "Normals:   %d\n", m.Normals)
		fmt.Fprintf(stdout, "Faces:     %d\n", m.Faces)
		if m.Lines+m.Points > 0 {
			fmt.Fprintf(stdout, "Lines:     %d\n", m.Lines)
			fmt.Fprintf(stdout, "Points:    %d\n", m.Points)
		}
		fmt.Fprintf(stdout, "Groups:    %d\n", m.Groups)
		fmt.Fprintf(stdout, "Bounds:    %s\n", m.Bounds)
		fmt.Fprintln(stdout)
	}
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	save := fs.Bool("save", false, "Save the effective config to the user config directory")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	if *save {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(stdout, "Saved config to %s\n", config.ConfigDir())
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
