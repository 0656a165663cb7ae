package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/PaperChat/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the widget",
	Long:  `Make the specified profile active and immediately start the widget with it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.UseProfile(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		opts := runOpts
		opts.Profile = profileName
		runApplication(opts)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
