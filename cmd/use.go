package cmd

import (
	"log"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriBug/internal/app"
)

var useCmd = &cobra.Command{
	Use:   "use [application]",
	Short: "Start with an application already selected",
	Long:  `Select the named application and open the chat directly, skipping the selector.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := args[0]
		if !slices.Contains(cfg.ApplicationNames(), name) {
			log.Fatalf("Application '%s' is not configured (known: %v)", name, cfg.ApplicationNames())
		}

		if err := runTUI(cfg, app.Options{InitialApplication: name}); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
