package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <album> <query-image>",
	Short: "Find the album photos containing the face in a query image",
	Long: `Match the single face in the query image against every face stored in
the album index, and print the paths of the photos that contain it.

The album is synced first, so results always reflect the current files.
A query image with no detectable face reports zero results; an image with
more than one face is rejected because the intent is ambiguous.

Examples:
  face-search find ~/Pictures/holiday grandma.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().Bool("no-progress", false, "Disable the progress bar during sync")
}

func runFind(cmd *cobra.Command, args []string) error {
	noProgress := mustGetBool(cmd, "no-progress")
	albumPath, queryPath := args[0], args[1]

	ab, err := openAlbum(albumPath, true)
	if err != nil {
		return err
	}
	defer ab.Close()

	if err := ab.syncAlbum(cmd.Context(), !noProgress); err != nil {
		return err
	}

	imageData, err := os.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("reading query image: %w", err)
	}

	result, err := ab.matcher().Find(cmd.Context(), ab.store, imageData)
	if err != nil {
		return err
	}
	if !result.FaceFound {
		fmt.Println("No face was found in the query image")
	}

	fmt.Printf("Found %d image(s)\n", len(result.Matches))
	for _, match := range result.Matches {
		fmt.Println(filepath.ToSlash(filepath.Join(ab.scanner.Root(), filepath.FromSlash(match))))
	}
	return nil
}
