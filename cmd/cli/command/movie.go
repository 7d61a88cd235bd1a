package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"moviehub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	addTitle string
	addYear  int
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Movie management commands",
	Long: `Manage movies: list, add and delete.

The JSON listing used by "movies list" carries only title and year, so it
cannot show movie ids. To find the id "movies delete" needs, open the HTML
list at <api>/movies and follow a movie's link: its page is /movies/<id>.`,
}

var listMoviesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all movies",
	Long: `List the title and year of every movie.

Ids are not part of the listing; look them up on the HTML list at <api>/movies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := client.NewHTTPClient(apiURL).ListMovies()
		if err != nil {
			return fmt.Errorf("failed to get movie list: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(movies) == 0 {
			fmt.Fprintln(out, "No movies found.")
			return nil
		}

		fmt.Fprintf(out, "Found %d movies:\n\n", len(movies))
		for _, m := range movies {
			fmt.Fprintf(out, "Title: %s\n", m.Title)
			fmt.Fprintf(out, "Year: %d\n", m.Year)
			fmt.Fprintln(out, strings.Repeat("-", 50))
		}
		fmt.Fprintf(out, "Movie ids for \"movies delete\" are listed at %s/movies\n", strings.TrimRight(apiURL, "/"))
		return nil
	},
}

var addMovieCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := client.NewHTTPClient(apiURL).AddMovie(addTitle, addYear)
		if errors.Is(err, client.ErrIncompleteForm) {
			return fmt.Errorf("movie not added: %w", err)
		}
		if err != nil {
			return fmt.Errorf("failed to add movie: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%d)\n", addTitle, addYear)
		return nil
	},
}

var deleteMovieCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a movie by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid movie ID: %w", err)
		}

		if err := client.NewHTTPClient(apiURL).DeleteMovie(id); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("movie %d does not exist", id)
			}
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted movie %d\n", id)
		return nil
	},
}

func init() {
	addMovieCmd.Flags().StringVar(&addTitle, "title", "", "movie title")
	addMovieCmd.Flags().IntVar(&addYear, "year", 0, "release year")
	addMovieCmd.MarkFlagRequired("title")
	addMovieCmd.MarkFlagRequired("year")

	moviesCmd.AddCommand(listMoviesCmd, addMovieCmd, deleteMovieCmd)
	rootCmd.AddCommand(moviesCmd)
}
