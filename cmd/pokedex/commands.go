package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/pokedex/internal/config"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/favorites"
	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/store"
)

const statBarWidth = 20

var errNoStorage = errors.New("favorites need a storage path: set storage.path or pass --storage")

func newShowCmd(configFile *string, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print the detail card for one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			id := domain.NormalizeID(args[0])
			p, err := a.client.GetPokemon(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", id, err)
			}
			return renderMarkdown(stdout, PokemonMarkdown(p))
		},
	}
}

func newSearchCmd(configFile *string, stdout io.Writer) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search species names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			refs, err := a.searchService().LoadIndex(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			result := search.Filter(strings.Join(args, " "), refs)
			switch {
			case len(result.Matches) > 0:
				printRefs(stdout, result.Matches)
			case len(result.Suggestions) > 0:
				_, _ = fmt.Fprintf(stdout, "No match for %q. Did you mean:\n", result.Query)
				printRefs(stdout, result.Suggestions)
			default:
				_, _ = fmt.Fprintf(stdout, "No Pokémon match %q\n", result.Query)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the species index from the API")
	return cmd
}

func newFavoritesCmd(configFile *string, stdout io.Writer) *cobra.Command {
	// withFavorites opens the persisted set and saves it after every change
	withFavorites := func(fn func(favs *favorites.Store) error) error {
		a, err := newApp(*configFile)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.cfg.Persistent() {
			return errNoStorage
		}
		favs := favorites.New(store.RestoreFavorites(a.store)...)
		stop := store.SyncFavorites(a.store, favs, a.logger)
		defer stop()
		return fn(favs)
	}

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List persisted favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFavorites(func(favs *favorites.Store) error {
				ids := favs.Snapshot()
				if len(ids) == 0 {
					_, _ = fmt.Fprintln(stdout, "No favorites yet")
					return nil
				}
				for _, id := range ids {
					_, _ = fmt.Fprintln(stdout, id)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id>...",
			Short: "Add identifiers to favorites",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(func(favs *favorites.Store) error {
					for _, id := range args {
						if favs.Add(domain.NormalizeID(id)) {
							_, _ = fmt.Fprintf(stdout, "added %s\n", id)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id>...",
			Short: "Remove identifiers from favorites",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(func(favs *favorites.Store) error {
					for _, id := range args {
						if favs.Remove(domain.NormalizeID(id)) {
							_, _ = fmt.Fprintf(stdout, "removed %s\n", id)
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func newConfigCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			cfg.Storage.Path = config.DefaultDataPath()
			if path == "" {
				if err := config.SaveConfig(cfg); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(stdout, "wrote default config")
				return nil
			}
			if err := config.SaveConfigTo(cfg, filepath.Clean(path)); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "file to write (default ~/.config/pokedex/config.yaml)")
	cmd.AddCommand(initCmd)
	return cmd
}

func printRefs(w io.Writer, refs []domain.SpeciesRef) {
	for _, ref := range refs {
		_, _ = fmt.Fprintln(w, ref.Label())
	}
}

// renderMarkdown styles md with glamour when w is a terminal and writes it
// unchanged otherwise
func renderMarkdown(w io.Writer, md string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	width := 80
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
		width = min(cols, 100)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, err = io.WriteString(w, md)
		return err
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// PokemonMarkdown renders a record as a markdown detail card
func PokemonMarkdown(p *domain.Pokemon) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# #%03d %s\n\n", p.ID, p.DisplayName())
	if len(p.Types) > 0 {
		fmt.Fprintf(&b, "**Types:** %s\n\n", strings.Join(p.Types, " / "))
	}
	fmt.Fprintf(&b, "**Height:** %.1f m · **Weight:** %.1f kg · **Base exp:** %d\n\n",
		p.HeightMeters(), p.WeightKilograms(), p.BaseExperience)
	if len(p.Abilities) > 0 {
		fmt.Fprintf(&b, "**Abilities:** %s\n\n", strings.Join(p.Abilities, ", "))
	}

	if len(p.Stats) > 0 {
		b.WriteString("| Stat | Base | |\n|------|-----:|---|\n")
		for _, s := range p.Stats {
			fmt.Fprintf(&b, "| %s | %d | `%s` |\n", s.Name, s.Base, s.Bar(statBarWidth))
		}
		fmt.Fprintf(&b, "| **total** | **%d** | |\n\n", p.StatTotal())
	}

	if len(p.Moves) > 0 {
		fmt.Fprintf(&b, "**Moves (%d):** %s\n\n", len(p.Moves), strings.Join(p.Moves, ", "))
	}
	if url := p.SpriteURL(); url != "" {
		fmt.Fprintf(&b, "Artwork: <%s>\n", url)
	}
	return b.String()
}
