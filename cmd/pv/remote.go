package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/paperview/paperview/internal/api"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	remoteBaseURL string
	remoteTimeout time.Duration
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Paper analysis backend commands",
	Long: `Commands for the paper analysis backend: generated content, PDF upload,
paper search, translation, chat and sessions.

All commands output JSON by default.
Use --human for human-readable output.

Environment Variables:
  PV_API_BASE_URL  Backend base URL (default: http://localhost:8000/api)
  PV_API_TOKEN     Bearer token sent with every request`,
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteBaseURL, "base-url", "", "Backend base URL (overrides config)")
	remoteCmd.PersistentFlags().DurationVar(&remoteTimeout, "timeout", 0, "Request timeout (default: api_timeout from config)")
	rootCmd.AddCommand(remoteCmd)
}

// newRemoteClient builds an API client from the config and flags.
func newRemoteClient() *api.Client {
	cfg := mustLoadConfig()

	baseURL := cfg.APIBaseURL
	if remoteBaseURL != "" {
		baseURL = remoteBaseURL
	}
	timeout := cfg.APITimeout
	if remoteTimeout > 0 {
		timeout = remoteTimeout
	}

	return api.NewClient(
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
		api.WithToken(cfg.APIToken),
		api.WithLogger(log),
	)
}

// remoteContext is canceled on interrupt.
func remoteContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// remoteErrorCode maps an API error to an exit code and a JSON error code.
func remoteErrorCode(err error) (int, string) {
	switch {
	case api.IsNotFound(err):
		return ExitAPINotFound, "not_found"
	case api.IsAuthError(err):
		return ExitAPIAuthError, "auth_error"
	case api.IsRateLimited(err):
		return ExitAPIError, "rate_limited"
	default:
		return ExitAPIError, "api_error"
	}
}

// remoteOutputError outputs an error in JSON or human format and returns the exit code.
func remoteOutputError(err error, id string) int {
	exitCode, errCode := remoteErrorCode(err)

	if humanOutput {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		if id != "" {
			fmt.Fprintf(os.Stderr, "  ID: %s\n", id)
		}
		return exitCode
	}

	detail := map[string]any{
		"code":    errCode,
		"message": err.Error(),
	}
	if id != "" {
		detail["id"] = id
	}
	_ = outputJSON(map[string]any{"error": detail})
	return exitCode
}

// remoteRun calls fn with a client and a cancelable context, then prints
// the result as JSON or through human. Errors exit the process.
func remoteRun[T any](id string, fn func(ctx context.Context, client *api.Client) (T, error), human func(T)) {
	ctx, stop := remoteContext()
	defer stop()

	result, err := fn(ctx, newRemoteClient())
	if err != nil {
		os.Exit(remoteOutputError(err, id))
	}

	if humanOutput && human != nil {
		human(result)
		return
	}
	if err := outputJSON(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(ExitError)
	}
}

// newByteBar returns a progress bar on stderr for a transfer of total bytes.
// A non-positive total gives a spinner.
func newByteBar(total int64, description string) *progressbar.ProgressBar {
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// barProgress adapts a progress bar to api.ProgressFunc. The bar is only
// drawn in human mode so JSON output stays clean.
func barProgress(description string) (api.ProgressFunc, func()) {
	if !humanOutput {
		return nil, func() {}
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int64) {
		if bar == nil {
			bar = newByteBar(total, description)
		}
		_ = bar.Set64(done)
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
	return progress, finish
}

// startSpinner shows a spinner on stderr in human mode while a slow call
// runs. The returned func stops it.
func startSpinner(description string) func() {
	if !humanOutput {
		return func() {}
	}
	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = spinner.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		_ = spinner.Finish()
	}
}
