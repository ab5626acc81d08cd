package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/spf13/cobra"
)

// withApp runs fn against a freshly wired app, logging to stderr so
// command output stays clean
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		a.logger.SetOutput(os.Stderr)
		return fn(cmd, args, a)
	}
}

func newSearchCmd() *cobra.Command {
	var (
		page   int
		genre  int
		year   int
		rating float64
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "List movies matching a query, or discover movies when no query is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			var filters models.Filters
			if cmd.Flags().Changed("genre") {
				filters.Genre = &genre
			}
			if cmd.Flags().Changed("year") {
				filters.Year = &year
			}
			if cmd.Flags().Changed("rating") {
				filters.Rating = &rating
			}
			if err := filters.Validate(); err != nil {
				return err
			}

			if err := a.movieCtrl.AddSearchTerm(query); err != nil {
				a.logger.WithError(err).Warn("Failed to record search term")
			}
			if err := a.movieCtrl.Refresh(cmd.Context(), query, page, &filters); err != nil {
				return err
			}

			if filters.Genre != nil {
				printGenre(cmd.Context(), cmd.OutOrStdout(), a.genreCtrl, *filters.Genre)
			}

			state := a.movieCtrl.State()
			printMovies(cmd.OutOrStdout(), state.Movies)
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d\n", page, state.TotalPages)
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&genre, "genre", 0, "genre id (see 'cinedeck genres')")
	cmd.Flags().IntVar(&year, "year", 0, "primary release year")
	cmd.Flags().Float64Var(&rating, "rating", 0, "minimum average vote (0-10)")
	return cmd
}

func newMovieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Show a movie with its cast, trailer and recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			bundle, err := a.detailsCtrl.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			m := bundle.Movie
			fmt.Fprintf(out, "%s (%s)  %.1f/10  %d min\n", m.Title, releaseYear(m.ReleaseDate), m.VoteAverage, m.Runtime)
			if m.Tagline != "" {
				fmt.Fprintf(out, "%s\n", m.Tagline)
			}
			genres := make([]string, 0, len(m.Genres))
			for _, g := range m.Genres {
				genres = append(genres, g.Name)
			}
			fmt.Fprintf(out, "Genres: %s\n\n%s\n", strings.Join(genres, ", "), m.Overview)
			if bundle.IsFavorite {
				fmt.Fprintln(out, "\n* In your favorites")
			}
			if bundle.Trailer != nil {
				fmt.Fprintf(out, "\nTrailer: https://www.youtube.com/watch?v=%s\n", bundle.Trailer.Key)
			}

			if len(bundle.Cast) > 0 {
				fmt.Fprintln(out, "\nCast:")
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, c := range bundle.Cast {
					fmt.Fprintf(w, "  %s\t%s\n", c.Name, c.Character)
				}
				w.Flush()
			}

			if len(bundle.Recommendations) > 0 {
				fmt.Fprintln(out, "\nRecommended:")
				printMovies(out, bundle.Recommendations)
			}
			return nil
		}),
	}
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List catalog genres",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			genres, err := a.genreCtrl.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, g := range genres {
				fmt.Fprintf(w, "%d\t%s\n", g.ID, g.Name)
			}
			return w.Flush()
		}),
	}
}

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite movies",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			printMovies(cmd.OutOrStdout(), a.movieCtrl.Favorites())
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a movie to the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if !a.sessionCtrl.LoggedIn() {
				return fmt.Errorf("%w: run 'cinedeck login' first", controllers.ErrNotLoggedIn)
			}
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			details, err := a.client.Movie(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := a.movieCtrl.AddFavorite(details.Summary()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to favorites\n", details.Title)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a movie from the favorites",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if !a.sessionCtrl.LoggedIn() {
				return fmt.Errorf("%w: run 'cinedeck login' first", controllers.ErrNotLoggedIn)
			}
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			return a.movieCtrl.RemoveFavorite(id)
		}),
	})

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Show recent searches, or those resembling query",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if clearAll {
				return a.movieCtrl.ClearHistory()
			}
			terms := a.movieCtrl.SearchHistory()
			if len(args) == 1 {
				terms = a.movieCtrl.HistorySuggestions(args[0])
			}
			for _, term := range terms {
				fmt.Fprintln(cmd.OutOrStdout(), term)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget every search term")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Start a local session",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.sessionCtrl.Login(args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		}),
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (checked for presence only)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the local session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return a.sessionCtrl.Logout()
		}),
	}
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if len(args) == 1 {
				var err error
				if args[0] == "toggle" {
					_, err = a.themeCtrl.Toggle()
				} else {
					err = a.themeCtrl.Set(models.ThemeMode(args[0]))
				}
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.themeCtrl.Mode())
			return nil
		}),
	}
}

func printMovies(out io.Writer, movies []models.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(out, "No movies")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYEAR\tRATING")
	for _, m := range movies {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\n", m.ID, m.Title, releaseYear(m.ReleaseDate), m.VoteAverage)
	}
	w.Flush()
}

// printGenre writes the display name of a genre filter, or its id when the
// genre list is unavailable
func printGenre(ctx context.Context, out io.Writer, genres *controllers.GenreController, id int) {
	name, ok := genres.Name(ctx, id)
	if !ok {
		name = fmt.Sprintf("#%d", id)
	}
	fmt.Fprintf(out, "Genre: %s\n\n", name)
}

func releaseYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return "----"
}

func parseMovieID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", raw)
	}
	return id, nil
}
