package main

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmcdole/pokedex/internal/catalog"
	"github.com/mmcdole/pokedex/internal/config"
	"github.com/mmcdole/pokedex/internal/detail"
	"github.com/mmcdole/pokedex/internal/favorites"
	"github.com/mmcdole/pokedex/internal/logging"
	"github.com/mmcdole/pokedex/internal/pokeapi"
	"github.com/mmcdole/pokedex/internal/projection"
	"github.com/mmcdole/pokedex/internal/search"
	"github.com/mmcdole/pokedex/internal/store"
	"github.com/mmcdole/pokedex/internal/tui"
)

// Execute runs the CLI with the given arguments and returns the exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive browser.
func NewRootCmd(stdout io.Writer) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:     "pokedex",
		Short:   "Browse Pokémon from the terminal",
		Long:    "pokedex is a terminal Pokédex backed by PokeAPI, with favorites, Ash's roster, Kanto gym leaders and a Pokémon Center locator.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configFile)
			if err != nil {
				return err
			}
			defer a.Close()
			return runTUI(a)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ~/.config/pokedex/config.yaml)")
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("api-url", "", "PokeAPI base URL")
	flags.String("storage", "", "directory for persisted favorites and species index")
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("api.base_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("storage.path", flags.Lookup("storage"))

	root.AddCommand(
		newShowCmd(&configFile, stdout),
		newSearchCmd(&configFile, stdout),
		newFavoritesCmd(&configFile, stdout),
		newConfigCmd(stdout),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				_, _ = fmt.Fprintf(stdout, "pokedex %s\n", Version)
			},
		},
	)
	return root
}

// app holds the services shared by every command
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
	client   *pokeapi.Client
	store    *store.DiskStore
}

func newApp(configFile string) (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
		closer = nil
	}
	slog.SetDefault(logger)
	logger.Info("starting pokedex", "version", Version, "api", cfg.API.BaseURL, "persistent", cfg.Persistent())

	client := pokeapi.NewClient(cfg.API.BaseURL, logger,
		pokeapi.WithTimeout(cfg.API.Timeout),
		pokeapi.WithUserAgent(cfg.API.UserAgent),
	)

	storagePath, err := config.ExpandPath(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	s, err := store.NewDiskStore(storagePath, cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &app{cfg: cfg, logger: logger, logClose: closer, client: client, store: s}, nil
}

func (a *app) searchService() *search.Service {
	return search.NewService(a.client, a.store, a.cfg.API.SpeciesLimit, a.logger)
}

// Close releases the store and the log file
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close store", "error", err)
	}
	if a.logClose != nil {
		_ = a.logClose.Close()
	}
}

func runTUI(a *app) error {
	favs := favorites.New(store.RestoreFavorites(a.store)...)
	stopSync := store.SyncFavorites(a.store, favs, a.logger)
	defer stopSync()

	dispatcher := tui.NewDispatcher()
	resolver := detail.NewResolver(a.client,
		detail.WithLogger(a.logger),
		detail.WithDispatch(dispatcher.Dispatch),
		detail.WithTimeout(a.cfg.API.Timeout),
	)
	defer resolver.Close()

	projector := projection.New(favs, resolver, a.logger)
	defer projector.Close()

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Deps{
		Search:        a.searchService(),
		Details:       resolver,
		Favorites:     favs,
		Projector:     projector,
		Catalog:       cat,
		HomeLatitude:  a.cfg.Hospital.HomeLatitude,
		HomeLongitude: a.cfg.Hospital.HomeLongitude,
		DefaultScreen: tui.ParseScreen(a.cfg.UI.DefaultScreen),
		Logger:        a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	dispatcher.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	a.logger.Info("pokedex exited", "favorites", favs.Len())
	return nil
}
