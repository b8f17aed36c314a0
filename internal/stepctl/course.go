package stepctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/tui"
)

// gatewayFactory is swapped in tests.
var gatewayFactory = func(o *options) (steps.Gateway, error) { return o.client() }

func parseCourse(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errors.New("--course is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid course id %q: %w", raw, err)
	}
	return id, nil
}

func pullCmd(opts *options) *cobra.Command {
	var course, out, format string

	command := &cobra.Command{
		Use:   "pull",
		Short: "download a course's steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseCourse(course)
			if err != nil {
				return err
			}
			gw, err := gatewayFactory(opts)
			if err != nil {
				return err
			}
			coll, err := steps.Load(cmd.Context(), gw, courseID)
			if err != nil {
				return err
			}
			if out == "" {
				return writeValue(cmd.OutOrStdout(), format, coll.Steps())
			}
			var buf bytes.Buffer
			if err := writeValue(&buf, format, coll.Steps()); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d steps to %s\n", coll.Len(), out)
			return nil
		},
	}
	command.Flags().StringVarP(&course, "course", "c", "", "course id")
	command.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	command.Flags().StringVar(&format, "format", formatJSON, "output format: json or yaml")
	return command
}

func pushCmd(opts *options) *cobra.Command {
	var course, file, format string

	command := &cobra.Command{
		Use:   "push",
		Short: "save steps from a file, in order",
		Long: `push creates steps without an id and updates the rest, one at a time.
The first failure stops the push; the file is rewritten with the ids
assigned so far, so running push again resumes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseCourse(course)
			if err != nil {
				return err
			}
			if file == "" {
				return errors.New("--file is required")
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var list []steps.Step
			if err := decodeValue(raw, &list); err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}
			gw, err := gatewayFactory(opts)
			if err != nil {
				return err
			}

			coll := steps.NewCollection(list)
			saveErr := coll.Save(cmd.Context(), gw, courseID, opts.logger())

			var buf bytes.Buffer
			if err := writeValue(&buf, format, coll.Steps()); err != nil {
				return err
			}
			if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
				return err
			}
			if saveErr != nil {
				return saveErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d steps\n", coll.Len())
			return nil
		},
	}
	command.Flags().StringVarP(&course, "course", "c", "", "course id")
	command.Flags().StringVarP(&file, "file", "f", "", "steps file (json or yaml)")
	command.Flags().StringVar(&format, "format", formatJSON, "format used when rewriting the file")
	return command
}

func editCmd(opts *options) *cobra.Command {
	var course string

	command := &cobra.Command{
		Use:   "edit",
		Short: "edit a course's steps in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseCourse(course)
			if err != nil {
				return err
			}
			gw, err := gatewayFactory(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			coll, err := steps.Load(ctx, gw, courseID)
			if err != nil {
				return err
			}
			model := tui.New(coll, gw, courseID, opts.logger())
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
	command.Flags().StringVarP(&course, "course", "c", "", "course id")
	return command
}
