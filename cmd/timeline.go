package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Rorical/PaperChat/internal/config"
	"github.com/Rorical/PaperChat/internal/core"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the phase plan of a profile",
	Long:  `Print each phase with its start offset, duration, easing and the channels it animates.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if runOpts.Profile != "" {
			if err := cfg.UseProfile(runOpts.Profile); err != nil {
				log.Fatalf("Failed to select profile: %v", err)
			}
		}

		plan, err := core.BuildPlan(cfg.CurrentProfile())
		if err != nil {
			log.Fatalf("Invalid profile %q: %v", cfg.ActiveProfile, err)
		}

		speed := runOpts.Speed
		if speed <= 0 {
			speed = 1
		}
		printTimeline(cmd.OutOrStdout(), cfg.ActiveProfile, plan, cfg.TimeScale/speed)
	},
}

func printTimeline(out io.Writer, profile string, plan core.Plan, timeScale float64) {
	fmt.Fprintf(out, "Profile: %s\n", profile)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PHASE", "START", "DURATION", "EASE", "CHANNELS")

	var offset float64
	for _, phase := range plan {
		channels := make([]string, 0, len(phase.Steps)+1)
		for _, step := range phase.Steps {
			channels = append(channels, fmt.Sprintf("%s(%s)", step.Channel, step.Animation.Name))
		}
		if phase.Burst {
			channels = append(channels, "particles")
		}
		t.Row(phase.Phase.String(), fmt.Sprintf("%.2f", offset), fmt.Sprintf("%.2f", phase.Duration), phase.Ease, strings.Join(channels, ", "))
		offset += phase.Duration
	}
	t.Row("reset", fmt.Sprintf("%.2f", offset), "0.00", "-", "remount")

	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "Total: %.2f time-units (%.2fs at time scale %g)\n", plan.Total(), plan.Total()*timeScale, timeScale)
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
