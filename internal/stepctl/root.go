// Package stepctl implements the stepctl command line: rendering and
// normalizing lesson content locally, and pulling, pushing and editing a
// course's steps against the API.
package stepctl

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/clients/stepsapi"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/envutil"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type options struct {
	apiURL  string
	token   string
	timeout time.Duration
	verbose bool
}

// NewRootCmd builds the command tree. Output goes to cmd.OutOrStdout so
// tests can capture it.
func NewRootCmd() *cobra.Command {
	_ = envutil.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:   "stepctl",
		Short: "lesson step authoring tool",
		Example: `stepctl render lesson.json
stepctl normalize --format yaml legacy.json
stepctl stats lesson.json
stepctl pull --course <course-id> -o steps.json
stepctl push --course <course-id> -f steps.json
stepctl edit --course <course-id>`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", envutil.String("ACADEMY_API_URL", "http://localhost:8080"), "API base url")
	root.PersistentFlags().StringVar(&opts.token, "token", envutil.String("ACADEMY_TOKEN", ""), "bearer token")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(renderCmd())
	root.AddCommand(normalizeCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(pullCmd(opts))
	root.AddCommand(pushCmd(opts))
	root.AddCommand(editCmd(opts))

	root.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) logger() *logger.Logger {
	if !o.verbose {
		return logger.Nop()
	}
	log, err := logger.New("development")
	if err != nil {
		return logger.Nop()
	}
	return log
}

func (o *options) client() (*stepsapi.Client, error) {
	return stepsapi.New(stepsapi.Config{
		BaseURL: o.apiURL,
		Token:   o.token,
		Timeout: o.timeout,
	}, o.logger())
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return raw, nil
}
