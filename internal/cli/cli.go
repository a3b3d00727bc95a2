// Package cli is the command-line shell around the hex codec: it picks the
// source, the direction and the container encoding, and maps failures to
// exit codes.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/sirupsen/logrus"

	"hexlify/config"
	"hexlify/encoding"
	"hexlify/hex"
	"hexlify/server/http_server"
)

const Version = "0.2.0"

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const usage = `hexlify %s

Perform bytes-to-hexstring conversion and vice-versa. Read from stdin if
<file> is "-" or not specified. Whitespace is ignored during decoding.

Usage:
  hexlify [options] [<file>]
  hexlify serve [-c config] [-listen addr]

Options:
`

// Run executes the command line args (args[0] is the program name) and
// returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	name := "hexlify"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}
	if len(args) > 0 && args[0] == "serve" {
		return serve(args[1:], stderr)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var decode, ignoreGarbage, version bool
	fs.BoolVar(&decode, "d", false, "decode stream")
	fs.BoolVar(&decode, "decode", false, "decode stream")
	fs.BoolVar(&ignoreGarbage, "i", false, "ignore non-hex characters while decoding")
	fs.BoolVar(&ignoreGarbage, "ignore-garbage", false, "ignore non-hex characters while decoding")
	compression := fs.String("z", "", "container encoding: plain, gzip, deflate, br, zstd")
	configPath := fs.String("c", "", "config file (.yaml, .yml or .json)")
	fs.BoolVar(&version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), usage, Version)
		fs.PrintDefaults()
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if version {
		fmt.Fprintf(stdout, "hexlify %s\n", Version)
		return ExitOK
	}
	if len(positional) > 1 {
		fmt.Fprintf(stderr, "%s: too many arguments\n", name)
		fs.Usage()
		return ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d", "decode":
			cfg.Decode = decode
		case "i", "ignore-garbage":
			cfg.IgnoreGarbage = ignoreGarbage
		case "z":
			cfg.Compression = *compression
		}
	})
	if slices.Contains(cfg.DecodeAliases, name) {
		cfg.Decode = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}

	var path string
	if len(positional) == 1 {
		path = positional[0]
	}
	log := newLogger(stderr, cfg)
	logr := log.WithFields(cfg.LogrusFields()).WithFields(logrus.Fields{
		"mode":   mode(cfg),
		"source": sourceName(path),
	})

	src, err := openSource(path, stdin)
	if err != nil {
		logr.WithError(err).Debug("Error opening source")
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitError
	}
	defer src.Close()

	if err := Transcode(stdout, src, cfg); err != nil {
		logr.WithError(err).Debug("Transcode failed")
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitError
	}
	logr.Debug("Transcode finished")
	return ExitOK
}

// parseInterspersed parses fs like fs.Parse but also accepts flags after
// positional arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func mode(cfg *config.Config) string {
	if cfg.Decode {
		return "decode"
	}
	return "encode"
}

// Transcode runs one encode or decode pass from src to dst as described by
// cfg. With a container encoding, encoding compresses before hex-encoding and
// decoding hex-decodes before decompressing.
func Transcode(dst io.Writer, src io.Reader, cfg *config.Config) error {
	if encoding.IsPlain(cfg.Compression) {
		if cfg.Decode {
			return hex.Decode(dst, src, cfg.IgnoreGarbage)
		}
		return hex.Encode(dst, src)
	}

	container, err := encoding.Lookup(cfg.Compression)
	if err != nil {
		return err
	}
	if cfg.Decode {
		text := &errReader{r: hex.NewDecoder(src, cfg.IgnoreGarbage)}
		err := container.Decode(dst, text)
		if err == nil {
			// the container may stop at its own end marker; the rest of the
			// text must still be valid hex
			_, err = io.Copy(io.Discard, text)
		}
		if text.err != nil {
			return text.err
		}
		return err
	}
	return container.Encode(hex.NewEncoder(dst), src)
}

// errReader remembers the first error other than io.EOF returned by r, so a
// hex error is reported as is whatever the container makes of it.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && err != io.EOF && e.err == nil {
		e.err = err
	}
	return n, err
}

func serve(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("c", "", "config file (.yaml, .yml or .json)")
	listen := fs.String("listen", "", "listen address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "serve: %v\n", err)
		return ExitUsage
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	log := newLogger(stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := http_server.StartServer(ctx, cfg, log); err != nil {
		log.WithError(err).Error("Error starting server")
		return ExitError
	}
	return ExitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

func newLogger(w io.Writer, cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

func sourceName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func openSource(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}
