package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/internal/config"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List registered repositories",
	RunE:  runRepos,
}

func init() {
	rootCmd.AddCommand(reposCmd)
}

func runRepos(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repos, err := db.GetAllRepositories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}
	if len(repos) == 0 {
		fmt.Println("No repositories registered. Run 'gitpulse discover' first.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Name", "Path", "Remote", "Last Synced"})

	var data [][]string
	for _, repo := range repos {
		lastSynced := "never"
		if repo.LastSynced != nil {
			lastSynced = repo.LastSynced.Format("2006-01-02 15:04")
		}
		data = append(data, []string{repo.Name, repo.Path, repo.RemoteURL, lastSynced})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
