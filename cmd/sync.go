package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <album>",
	Short: "Index faces in any new photos under an album",
	Long: `Bring the album index up to date with the image files currently on disk.

Creates the index on first run. Already-indexed photos are skipped, so
repeated syncs only pay for new files. A photo that fails to process is
left unindexed and picked up again on the next sync.

Examples:
  # Index new photos in ~/Pictures/holiday
  face-search sync ~/Pictures/holiday

  # Quiet mode for cron jobs
  face-search sync --no-progress ~/Pictures/holiday`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

func runSync(cmd *cobra.Command, args []string) error {
	noProgress := mustGetBool(cmd, "no-progress")

	ab, err := openAlbum(args[0], true)
	if err != nil {
		return err
	}
	defer ab.Close()

	return ab.syncAlbum(cmd.Context(), !noProgress)
}
