package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/just-nibble/commit-view/internal/adapters/api"
	"github.com/just-nibble/commit-view/internal/adapters/validators"
	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/logger"
	"github.com/just-nibble/commit-view/internal/screen"
	"github.com/just-nibble/commit-view/pkg/config"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

type showOptions struct {
	author    string
	committer string
	jsonOut   bool
	stateFile string
}

func NewShowCmd() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show owner/repo sha",
		Short: "Fetch one commit and print its view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := validators.Repo(args[0])
			owner, name, err := repo.Split()
			if err != nil {
				return err
			}
			key, err := validators.CommitKey(owner, name, args[1])
			if err != nil {
				return err
			}

			var known entities.KnownLogins
			if cmd.Flags().Changed("author") {
				known.Author = &opts.author
			}
			if cmd.Flags().Changed("committer") {
				known.Committer = &opts.committer
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			gc := api.NewGitHubClient(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.Timeout)

			c := screen.NewController(key, known, gc, nil, log)
			defer c.Close()

			return runShow(cmd, c, opts, log)
		},
	}

	cmd.Flags().StringVar(&opts.author, "author", "", "known author login, skips the payload's author login")
	cmd.Flags().StringVar(&opts.committer, "committer", "", "known committer login, skips the payload's committer login")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the view as JSON")
	cmd.Flags().StringVar(&opts.stateFile, "state", "", "file holding the saved payload; read before and written after loading")

	return cmd
}

func runShow(cmd *cobra.Command, c *screen.Controller, opts showOptions, log *logger.Logger) error {
	if opts.stateFile != "" {
		state, err := os.ReadFile(opts.stateFile)
		switch {
		case err == nil:
			if err := c.Restore(string(state)); err != nil {
				log.Warn("ignoring saved state", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("failed to read state: %w", err)
		}
	}

	var result screen.Result
	select {
	case r, ok := <-c.Load():
		if !ok {
			return screen.ErrClosed
		}
		result = r
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
	if result.Err != nil {
		return result.Err
	}

	if opts.stateFile != "" {
		if err := os.WriteFile(opts.stateFile, []byte(c.SavedState()), 0o600); err != nil {
			log.Warn("failed to write state", err)
		}
	}

	if opts.jsonOut {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.View)
	}
	return renderView(cmd.OutOrStdout(), result.View)
}

// renderView prints a commit the way the commit screen lays it out: committer details only when
// they differ from the author, file counts only for non-empty categories
func renderView(w io.Writer, v *entities.CommitView) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", person(v.AuthorName, v.AuthorLogin, v.AuthorRelativeTime, "authored"))
	if !v.SameIdentity() {
		fmt.Fprintf(&b, "%s\n", person(v.CommitterName, v.CommitterLogin, v.CommitterRelativeTime, "committed"))
	}

	if v.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(v.Message, "\n"))
	}

	var labels []string
	for _, kind := range entities.FileKinds {
		if label := v.FileLabel(kind); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) > 0 {
		fmt.Fprintf(&b, "\n%s\n", strings.Join(labels, "\n"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func person(name, login, when, verb string) string {
	s := name
	if login != "" {
		if s == "" {
			s = login
		} else {
			s = fmt.Sprintf("%s (%s)", name, login)
		}
	}
	if s == "" {
		s = "unknown"
	}
	if when != "" {
		s = fmt.Sprintf("%s %s %s", s, verb, when)
	}
	return s
}
