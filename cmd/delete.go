package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshayg/face-search/internal/album"
	"github.com/lakshayg/face-search/internal/index"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <album>",
	Short: "Delete an album's index file",
	Long: `Remove the index file from the album directory. The photos themselves are
untouched. Fails if no index exists.

This is also the way to rebuild after photos are removed from the album:
stale entries are never pruned, so delete the index and sync again.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	scanner, err := album.NewScanner(args[0], nil)
	if err != nil {
		return err
	}

	indexPath := index.Path(scanner.Root())
	if err := index.Delete(indexPath); err != nil {
		return err
	}
	fmt.Printf("Deleted '%s'\n", indexPath)
	return nil
}
