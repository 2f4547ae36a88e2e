package storefront

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var errUnterminatedQuote = errors.New("unterminated quote or escape")

func (c *cli) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session; notices wait for Enter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			c.interactive = true
			defer func() {
				c.interactive = false
				err = errors.Join(err, c.close(cmd.Context()))
			}()
			if _, err = c.open(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			c.app.Show(cmd.Context())
			c.app.Terminal().Flush()
			for {
				fmt.Fprint(out, "> ")
				line, readErr := c.in.ReadString('\n')
				if done := c.runLine(cmd, strings.TrimSpace(line)); done {
					return nil
				}
				if readErr != nil {
					if errors.Is(readErr, io.EOF) {
						fmt.Fprintln(out)
						return nil
					}
					return readErr
				}
			}
		},
	}
}

// runLine executes one shell line against a fresh command tree. It reports
// whether the session should end.
func (c *cli) runLine(parent *cobra.Command, line string) bool {
	if line == "" {
		return false
	}
	args, err := splitLine(line)
	if err != nil {
		fmt.Fprintf(c.errOut, "erreur: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "exit", "quit":
		return true
	}
	inner := &cobra.Command{
		Use:           "storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	inner.SetOut(c.out)
	inner.SetErr(c.errOut)
	inner.AddCommand(c.commands()...)
	inner.SetArgs(args)
	if err := inner.ExecuteContext(parent.Context()); err != nil {
		fmt.Fprintf(c.errOut, "erreur: %v\n", err)
	}
	return false
}

// splitLine breaks a shell line into words with POSIX shell quoting.
func splitLine(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnterminatedQuote, err)
	}
	return words, nil
}
