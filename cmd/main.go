/**************************************************************************************************
** Main entry point for the datetool CLI application. This tool copies media files into a new
** directory layout derived from their best-guess capture date.
**************************************************************************************************/

package main

import (
	"os"

	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Builds the command tree: the root command organizes its arguments, explain only shows how
** the templates resolve for them. Both share the persistent configuration flags.
**
** @return *cobra.Command - Root command
**************************************************************************************************/
func newRootCommand() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "datetool [flags] <file-or-dir>...",
		Short: "Reorganize media files by date",
		Long: "Copy media files into a layout rendered from their capture date. The date comes from the\n" +
			"embedded metadata, the path (through the source template) or the modification time.",
		Args: cobra.MinimumNArgs(1),
		Run:  runOrganize,
	}

	var explainCmd = &cobra.Command{
		Use:   "explain [flags] <path>...",
		Short: "Show how paths are dated and where they would go",
		Long:  "Align each path against the source template and print the captures, the candidates and the rendered destination. Nothing is written.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runExplain,
	}

	bindFlags(rootCmd)
	rootCmd.AddCommand(explainCmd)
	return rootCmd
}

/**************************************************************************************************
** Application entry point. Handles command execution and error reporting.
**************************************************************************************************/
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
