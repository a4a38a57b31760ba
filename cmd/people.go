package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/immich-sync/internal/config"
	"github.com/kozaktomas/immich-sync/internal/immich"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List people recognized by the Immich server",
	Long: `Retrieves and displays the people directory of your Immich instance.
Use the names shown here as values for IMMICH_PERSONS.`,
	RunE: runPeople,
}

func init() {
	rootCmd.AddCommand(peopleCmd)

	peopleCmd.Flags().Bool("hidden", false, "Include people hidden in Immich")
}

func runPeople(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := newLogger(cfg)

	if cfg.Immich.BaseURL == "" {
		return errors.New("IMMICH_BASE_URL environment variable is required")
	}
	if cfg.Immich.APIKey == "" {
		return errors.New("IMMICH_API_KEY environment variable is required")
	}

	includeHidden := mustGetBool(cmd, "hidden")

	client, err := immich.New(cfg.Immich.BaseURL, cfg.Immich.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Immich client: %w", err)
	}

	people, err := client.GetPeople(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get people: %w", err)
	}

	if len(people) == 0 {
		fmt.Println("No people found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHIDDEN")
	fmt.Fprintln(w, "--\t----\t------")

	shown := 0
	for _, person := range people {
		if person.IsHidden && !includeHidden {
			continue
		}
		name := person.Name
		if name == "" {
			name = "(unnamed)"
		}
		hidden := ""
		if person.IsHidden {
			hidden = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", person.ID, name, hidden)
		shown++
	}

	w.Flush()

	fmt.Printf("\nTotal: %d people\n", shown)

	return nil
}
