package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"article-uploader/internal/config"
	"article-uploader/internal/discovery"
	"article-uploader/internal/selection"
	"article-uploader/internal/transport"
	"article-uploader/internal/ui"
	"article-uploader/internal/upload"

	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the uploader.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const discoveryTimeout = 5 * time.Second

// fileList collects repeated -file flags in order.
type fileList []string

func (f *fileList) String() string {
	return strings.Join(*f, ",")
}

func (f *fileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	var files fileList
	flag.Var(&files, "file", "File to upload (repeatable, only the first one is sent)")
	interactive := flag.Bool("interactive", false, "Read one selection per line from stdin")
	envFile := flag.String("env", ".env", "Optional .env file")
	flag.Parse()

	code, err := run(files, *interactive, *envFile, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run(files []string, interactive bool, envFile string, in io.Reader, out io.Writer) (int, error) {
	// 1. Configuration & Logger
	var cfg config.Client
	if err := config.Load(&cfg, envFile); err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Locate the receiver
	baseURL := cfg.ServerURL
	if cfg.Discovery || baseURL == "" {
		found, err := discovery.FindServer(ctx, log, cfg.DiscoveryAddr, discoveryTimeout)
		if err != nil {
			return exitRuntime, fmt.Errorf("discovery failed: %w", err)
		}
		baseURL = found
	}

	// 3. Wire the form
	var progress io.Writer
	if cfg.Progress {
		progress = os.Stderr
	}
	client := transport.NewClient(log, transport.Options{
		BaseURL:     baseURL,
		Timeout:     cfg.Timeout,
		InsecureTLS: cfg.InsecureTLS,
		Progress:    progress,
	})
	statusLine := ui.NewStatusLine(out, cfg.Colours)
	listing := ui.NewListing(client, out, cfg.ListingLimit)

	if interactive {
		return runInteractive(ctx, log, client, statusLine, listing, in, out)
	}

	// 4. Single submission
	input, err := selection.FromPaths(files)
	if err != nil {
		return exitRuntime, err
	}
	handler := upload.NewHandler(log, client, upload.Elements{
		Input:  input,
		Status: statusLine,
	}, listing)

	res := handler.Submit(ctx)
	if res.Outcome != upload.OutcomeSuccess {
		log.Debug("Submission finished", "outcome", res.Outcome.String())
		return exitRuntime, nil
	}
	return exitOK, nil
}

// runInteractive submits one selection per input line. Lines are submitted
// without waiting, so a line read while an upload runs is ignored.
func runInteractive(ctx context.Context, log *slog.Logger, client upload.Uploader, statusLine *ui.StatusLine, listing upload.Refresher, in io.Reader, out io.Writer) (int, error) {
	var field selection.Field
	prompt := ui.NewPrompt(out)
	handler := upload.NewHandler(log, client, upload.Elements{
		Input:  &field,
		Status: statusLine,
		Submit: prompt,
	}, listing)

	var wg sync.WaitGroup
	defer wg.Wait()

	prompt.SetDisabled(false)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := scanner.Text()

		// The slot is claimed before the field changes, so a running upload
		// always reads the selection it was started with.
		if !handler.TryBegin() {
			log.Warn("Upload in progress, selection ignored", "selection", line)
			continue
		}
		input, err := selection.FromPaths(strings.Fields(line))
		if err != nil {
			log.Error("Invalid selection", "error", err)
			input = selection.NewInput()
		}
		field.Set(input)

		wg.Add(1)
		go func() {
			defer wg.Done()
			res := handler.Run(ctx)
			log.Debug("Submission finished", "outcome", res.Outcome.String())
		}()
	}
	if err := scanner.Err(); err != nil {
		return exitRuntime, fmt.Errorf("failed to read selections: %w", err)
	}
	return exitOK, nil
}
