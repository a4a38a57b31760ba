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

var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List albums from the Immich server",
	Long: `Retrieves and displays all albums from your Immich instance.
Use the ID shown here as the value for IMMICH_ALBUM_ID.`,
	RunE: runAlbums,
}

func init() {
	rootCmd.AddCommand(albumsCmd)
}

func runAlbums(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := newLogger(cfg)

	if cfg.Immich.BaseURL == "" {
		return errors.New("IMMICH_BASE_URL environment variable is required")
	}
	if cfg.Immich.APIKey == "" {
		return errors.New("IMMICH_API_KEY environment variable is required")
	}

	client, err := immich.New(cfg.Immich.BaseURL, cfg.Immich.APIKey, logger)
	if err != nil {
		return fmt.Errorf("failed to create Immich client: %w", err)
	}

	albums, err := client.GetAlbums(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get albums: %w", err)
	}

	if len(albums) == 0 {
		fmt.Println("No albums found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tASSETS\tSHARED")
	fmt.Fprintln(w, "--\t----\t------\t------")

	for i := range albums {
		shared := ""
		if albums[i].Shared {
			shared = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", albums[i].ID, albums[i].Name, albums[i].AssetCount, shared)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d albums\n", len(albums))

	return nil
}
