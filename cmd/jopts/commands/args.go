package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newArgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "args [path]",
		Short: "Print the compiler arguments of the project enclosing path",
		Long: `Print the compiler arguments declared by options.compilerArgs in the build
script of the project enclosing path, one per line. path defaults to the
current directory and may name any file inside the project.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			compilerArgs, err := c.app.Arguments(cmd.Context(), path)
			if err != nil {
				return err
			}
			return writeArgs(cmd.OutOrStdout(), compilerArgs, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the arguments as a JSON array")
	return cmd
}

func writeArgs(w io.Writer, args []string, asJSON bool) error {
	if asJSON {
		if args == nil {
			args = []string{}
		}
		return json.NewEncoder(w).Encode(args)
	}
	for _, arg := range args {
		if _, err := fmt.Fprintln(w, arg); err != nil {
			return err
		}
	}
	return nil
}
