package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/discovery"
	"github.com/gitpulse/gitpulse/internal/gitx"
	"github.com/gitpulse/gitpulse/internal/store"
)

var (
	discoverDepth   int
	discoverExclude []string
)

var discoverCmd = &cobra.Command{
	Use:   "discover [root...]",
	Short: "Find git repositories and register them",
	Long: `Discover walks the given directory trees looking for git checkouts and
registers each one for syncing. Dependency and build directories
(node_modules, vendor, target, ...) and hidden directories are skipped.
With no arguments the current directory is searched.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverDepth, "depth", 0, "Directory levels to descend below each root (default 3)")
	discoverCmd.Flags().StringSliceVar(&discoverExclude, "exclude", nil, "Extra directory names to skip")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	depth := cfg.MaxDepth
	if discoverDepth > 0 {
		depth = discoverDepth
	}
	exclude := append(append([]string{}, cfg.ExcludeDirs...), discoverExclude...)

	scanner := discovery.NewScanner(depth, exclude, logger{})
	found := scanner.Discover(roots)
	if len(found) == 0 {
		fmt.Println("No repositories found.")
		return nil
	}

	ctx := cmd.Context()
	gitClient := gitx.NewGoGit()
	added := 0
	for _, f := range found {
		existing, err := db.GetRepository(ctx, f.Path)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", f.Path, err)
		}
		if existing != nil {
			VerboseLog("already tracked: %s", f.Path)
			continue
		}

		remoteURL, err := gitClient.RemoteURL(ctx, f.Path)
		if err != nil {
			remoteURL = ""
		}
		repo := &store.Repository{Name: filepath.Base(f.Path), Path: f.Path, RemoteURL: remoteURL}
		if _, err := db.AddRepository(ctx, repo); err != nil {
			return fmt.Errorf("failed to register %s: %w", f.Path, err)
		}
		color.New(color.FgGreen).Printf("+ %s", f.Name)
		fmt.Printf("  %s\n", f.Path)
		added++
	}

	fmt.Printf("\nFound %d repositories, registered %d new.\n", len(found), added)
	return nil
}
