package flags

import (
	"github.com/spf13/cobra"
)

func AddYes(cmd *cobra.Command) {
	cmd.Flags().
		BoolP("yes", "y", false, "Skip the confirmation prompt.")
}

func HandleYes(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("yes")
}

func AddHidden(cmd *cobra.Command) {
	cmd.Flags().
		Bool("hidden", false, "Include hidden files and folders (names starting with '.').")
}

// HandleHidden reports whether hidden entries should be shown, falling back
// to the configured value when the flag was not given.
func HandleHidden(cmd *cobra.Command, configured bool) (bool, error) {
	if !cmd.Flags().Changed("hidden") {
		return configured, nil
	}
	return cmd.Flags().GetBool("hidden")
}

func AddDepth(cmd *cobra.Command) {
	cmd.Flags().
		IntP("depth", "d", -1, "Limit how many folder levels are printed (-1 for no limit).")
}

func HandleDepth(cmd *cobra.Command) (int, error) {
	return cmd.Flags().GetInt("depth")
}

func AddCopy(cmd *cobra.Command) {
	cmd.Flags().
		BoolP("copy", "c", false, "Copy the path of the first result to the clipboard.")
}

func HandleCopy(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("copy")
}
