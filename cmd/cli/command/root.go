package command

// root.go defines the root command for the moviehub CLI and its global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moviehub",
	Short: "moviehub - command line client for the movie list",
	Long: `moviehub talks to a running moviehub API server. Use it to:
- List the movies in the store
- Add a movie by title and year
- Delete a movie by id

Use "moviehub command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("MOVIEHUB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
}
