package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/app"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/config"
	"github.com/ogvaibhavshukla/VisualLibrary/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when no file
// exists so a first launch needs no setup.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.NewConfig(defaults.BaseDir, defaults.LibraryDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp creates a started App. The caller must defer a.Close().
func newApp(confirm *ui.DeferredConfirmer) (*app.App, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	a, err := app.New(cfg, confirm)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing app: %w", err)
	}
	if err := a.Start(); err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("opening library: %w", err)
	}
	return a, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "visuallibrary",
	Short: "Visual inspiration library",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := ui.NewDeferredConfirmer()
		a, cfg, err := newApp(confirm)
		if err != nil {
			return err
		}
		defer a.Close()

		model := ui.New(a, confirm, cfg.Thumbnails.MaxDimension)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir, defaults.LibraryDir)
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Library Dir: %s\n", defaults.LibraryDir)
		fmt.Printf("Base Dir:    %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Library Dir:   %s\n", cfg.LibraryDir)
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Include Video: %v\n", cfg.IncludeVideo)
		fmt.Printf("Undo Window:   %s\n", cfg.UndoWindow())
		return nil
	},
}

// vaults command
var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List vaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := newApp(ui.NewDeferredConfirmer())
		if err != nil {
			return err
		}
		defer a.Close()

		cur, err := a.Service().CurrentVault()
		if err != nil {
			return err
		}
		for _, v := range a.Service().Vaults() {
			marker := " "
			if v.ID == cur.ID {
				marker = "*"
			}
			fmt.Printf("%s %-30s %5d images  %s\n", marker, v.Name, v.ImageCount, v.ID)
		}
		return nil
	},
}

// cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Reap expired backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := newApp(ui.NewDeferredConfirmer())
		if err != nil {
			return err
		}
		defer a.Close()

		records, files := a.RunCleanup()
		fmt.Printf("Removed %d expired record(s) and %d backup file(s)\n", records, files)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(vaultsCmd)
	rootCmd.AddCommand(cleanupCmd)
}
