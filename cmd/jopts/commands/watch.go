package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/ui/output"
	"go.trai.ch/jopts/internal/ui/style"
)

// watchRecord is one line of `watch --json` output.
type watchRecord struct {
	Project   string   `json:"project"`
	Arguments []string `json:"arguments"`
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Print compiler arguments and reprint them whenever the build configuration changes",
		Long: `Print the compiler arguments of every project enclosing one of paths, then
print them again each time that project's build configuration changes.
paths default to the current directory. Stops on interrupt.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			w := cmd.OutOrStdout()
			return c.app.Watch(cmd.Context(), paths, func(project domain.Project, compilerArgs []string) error {
				if asJSON {
					if compilerArgs == nil {
						compilerArgs = []string{}
					}
					return json.NewEncoder(w).Encode(watchRecord{Project: project.Root, Arguments: compilerArgs})
				}
				return writeWatchBlock(w, project, compilerArgs)
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print one JSON object per update")
	return cmd
}

func writeWatchBlock(w io.Writer, project domain.Project, args []string) error {
	out := output.New(w)
	header := output.Paint(out, style.Iris, style.Tilde+" "+project.BuildScriptPath())
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	return writeArgs(w, args, false)
}
