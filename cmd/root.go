package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/PaperChat/internal/app"
)

var runOpts app.Options

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "Crumple your message and throw it away",
	Long: `PaperChat is a one-line chat input that folds your message into a sheet
of paper, crumples it into a ball and tosses it off screen.`,
	Run: func(cmd *cobra.Command, args []string) {
		runApplication(runOpts)
	},
}

func runApplication(opts app.Options) {
	application, err := app.NewApplication(opts)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paperchat %s\n", version)
		},
	}
}

func Execute(version string) {
	rootCmd.Version = version
	rootCmd.AddCommand(newVersionCmd(version))

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&runOpts.Profile, "profile", "", "animation profile to use for this run")
	flags.Float64Var(&runOpts.Speed, "speed", 1, "playback speed multiplier")
	flags.StringVar(&runOpts.LogFile, "log-file", "", "write JSON logs to this file")
	flags.BoolVarP(&runOpts.Verbose, "verbose", "v", false, "log debug records")

	rootCmd.AddCommand(profileCmd)
}
