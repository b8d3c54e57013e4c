// Package main is the entry point for the imapcodec tool: a thin CLI
// over the codec for inspecting IMAP byte streams and re-encoding
// them, useful when debugging a misbehaving client or server capture.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nugget/imapwire/codec"
	"github.com/nugget/imapwire/fragment"
	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/internal/buildinfo"
	"github.com/nugget/imapwire/internal/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "path to config file")
	kind := flag.String("kind", "response", "message kind to decode: command, response, or greeting")
	flag.Parse()

	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}))

	if flag.NArg() > 0 {
		switch flag.Arg(0) {
		case "parse":
			runParse(logger, *configPath, *kind)
		case "version":
			fmt.Println(buildinfo.String())
			for k, v := range buildinfo.BuildInfo() {
				fmt.Printf("  %-12s %s\n", k+":", v)
			}
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", flag.Arg(0))
			os.Exit(1)
		}
		return
	}

	// Default: show help
	fmt.Println("imapcodec - IMAP4rev1 wire codec tool")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  parse    Fragmentize stdin and decode each message")
	fmt.Println("  version  Show version")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func loadConfig(logger *slog.Logger, configPath string) *config.Config {
	cfgPath, err := config.FindConfig(configPath)
	if err != nil {
		// Running without a config file is fine; everything has a
		// default.
		return config.Default()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}
	return cfg
}

func runParse(logger *slog.Logger, configPath, kind string) {
	cfg := loadConfig(logger, configPath)

	if cfg.LogLevel != "" {
		level, err := config.ParseLogLevel(cfg.LogLevel)
		if err == nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:       level,
				ReplaceAttr: config.ReplaceLogLevelNames,
			}))
		}
	}

	var fz *fragment.Fragmentizer
	if cfg.Unbounded {
		fz = fragment.WithoutMaxMessageSize()
	} else {
		fz = fragment.New(cfg.MaxMessageSize)
	}
	opts := cfg.CodecOptions()

	decode := func(fz *fragment.Fragmentizer) (any, error) {
		switch kind {
		case "command":
			m, err := fragment.DecodeMessage[imap.Command](fz, codec.NewCommandCodec(opts))
			return m, err
		case "greeting":
			m, err := fragment.DecodeMessage[imap.Greeting](fz, codec.NewGreetingCodec(opts))
			return m, err
		case "response":
			m, err := fragment.DecodeMessage[imap.Response](fz, codec.NewResponseCodec(opts))
			return m, err
		}
		return nil, fmt.Errorf("unknown message kind %q", kind)
	}

	buf := make([]byte, 4096)
	eof := false
	for {
		frag, ok := fz.Progress()
		if !ok {
			if eof {
				if len(fz.MessageBytes()) > 0 {
					logger.Warn("trailing bytes form no complete message",
						"bytes", len(fz.MessageBytes()))
				}
				return
			}
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				fz.EnqueueBytes(buf[:n])
			}
			if err == io.EOF {
				eof = true
			} else if err != nil {
				logger.Error("read stdin", "error", err)
				os.Exit(1)
			}
			continue
		}
		start, end := frag.Range()
		logger.Log(context.Background(), config.LevelTrace, "fragment",
			"kind", frag.Kind(), "start", start, "end", end)
		if !fz.IsMessageComplete() {
			continue
		}
		msg, err := decode(fz)
		if err != nil {
			if tag, ok := fz.DecodeTag(); ok {
				logger.Error("decode failed", "tag", tag.String(), "error", err)
			} else {
				logger.Error("decode failed", "error", err)
			}
			continue
		}
		fmt.Printf("%+v\n", msg)
	}
}
