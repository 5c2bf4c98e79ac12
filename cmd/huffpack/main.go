// Command huffpack compresses and expands files using the huffpack
// container format.
//
//	huffpack encode <input> <output>
//	huffpack decode <input> <output>
//	huffpack describe <input>
//
// Logging is controlled by the LOG_LEVEL environment variable (debug, info,
// warn, error, fatal, panic, or disabled); the default is info.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronos-tachyon/huffpack"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	logger := newLogger()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "encode":
		if len(args) != 3 {
			usage()
			os.Exit(2)
		}
		err = runEncode(logger, args[1], args[2])
	case "decode":
		if len(args) != 3 {
			usage()
			os.Exit(2)
		}
		err = runDecode(logger, args[1], args[2])
	case "describe":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = runDescribe(args[1])
	default:
		fmt.Fprintf(os.Stderr, "huffpack: unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, strings.Join([]string{
		"usage: huffpack <command> [arguments]\n",
		"\n",
		"commands:\n",
		"  encode <input> <output>    compress input into a container file\n",
		"  decode <input> <output>    expand a container file\n",
		"  describe <input>           print a container's header and code table\n",
	}, ""))
}

// newLogger builds the process logger from the LOG_LEVEL environment
// variable.
func newLogger() zerolog.Logger {
	var level zerolog.Level
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = zerolog.DebugLevel
	case "", "info":
		level = zerolog.InfoLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	case "panic":
		level = zerolog.PanicLevel
	default:
		level = zerolog.Disabled
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "huffpack").
		Logger()
}

func runEncode(logger zerolog.Logger, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := huffpack.Encode(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", inPath, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("input_bytes", len(data)).
		Int("container_bytes", c.Size()).
		Float64("compression_ratio", float64(c.Size())/float64(len(data))).
		Int("alphabet_size", c.AlphabetSize()).
		Dur("elapsed", time.Since(start)).
		Msg("encoded")
	return nil
}

func runDecode(logger zerolog.Logger, inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	c, err := huffpack.ReadContainer(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}
	data, err := huffpack.Decode(c)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	logger.Info().
		Str("input", inPath).
		Str("output", outPath).
		Int("container_bytes", c.Size()).
		Int("output_bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("decoded")
	return nil
}

func runDescribe(inPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := huffpack.ReadContainer(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	if _, err := c.Dump(os.Stdout); err != nil {
		return err
	}
	ct := huffpack.NewCodeTable(c.Tree())
	if _, err := ct.Dump(os.Stdout); err != nil {
		return err
	}
	return nil
}
