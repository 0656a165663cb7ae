package cmd

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage animation profiles",
	Long:  `Manage animation profiles: phase durations, easing curves and particle bursts.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Phases: %.2f / %.2f / %.2f (total %.2f)\n",
				profile.Fold.Duration, profile.Crumple.Duration, profile.Throw.Duration, profile.Total())
			fmt.Printf("    Particles: %d\n", profile.Particles.Count)
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Fold: %.2f %s\n", profile.Fold.Duration, profile.Fold.Ease)
		fmt.Printf("Crumple: %.2f %s\n", profile.Crumple.Duration, profile.Crumple.Ease)
		fmt.Printf("Throw: %.2f %s\n", profile.Throw.Duration, profile.Throw.Ease)
		fmt.Printf("Particles: %d, %.2f-%.2f\n", profile.Particles.Count, profile.Particles.MinDuration, profile.Particles.MaxDuration)
		fmt.Printf("Placeholder: %s\n", profile.Placeholder)
	},
}

func validateFloat(input string) error {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return errors.New("not a number")
	}
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func validateInt(input string) error {
	v, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("not a whole number")
	}
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func validateEase(input string) error {
	_, err := anim.ParseEasing(input)
	return err
}

func promptString(label, def string, validate promptui.ValidateFunc) string {
	prompt := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
	}
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

func promptFloat(label string, def float64) float64 {
	value := promptString(label, strconv.FormatFloat(def, 'f', -1, 64), validateFloat)
	v, _ := strconv.ParseFloat(value, 64)
	return v
}

func promptPhase(name string, def config.PhaseConfig) config.PhaseConfig {
	return config.PhaseConfig{
		Duration: promptFloat(name+" duration", def.Duration),
		Ease:     promptString(name+" easing", def.Ease, validateEase),
	}
}

// promptProfile walks through every field, starting from base.
func promptProfile(base config.Profile) config.Profile {
	profile := config.Profile{
		Fold:    promptPhase("Fold", base.Fold),
		Crumple: promptPhase("Crumple", base.Crumple),
		Throw:   promptPhase("Throw", base.Throw),
	}

	count := promptString("Particle count", strconv.Itoa(base.Particles.Count), validateInt)
	profile.Particles.Count, _ = strconv.Atoi(count)
	profile.Particles.MinDuration = promptFloat("Particle min duration", base.Particles.MinDuration)
	profile.Particles.MaxDuration = promptFloat("Particle max duration", base.Particles.MaxDuration)
	profile.Placeholder = promptString("Placeholder", base.Placeholder, nil)
	return profile
}

func selectProfile(cfg *config.Config, label string, exclude string) string {
	var profileNames []string
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			profileNames = append(profileNames, name)
		}
	}
	if len(profileNames) == 0 {
		return ""
	}

	prompt := promptui.Select{
		Label: label,
		Items: profileNames,
	}
	_, profileName, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return profileName
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName = promptString("Profile name", "", nil)
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(config.ClassicProfile())

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else if profileName = selectProfile(cfg, "Select profile to edit", ""); profileName == "" {
			log.Fatalf("No profiles available to edit")
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(profile)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else if profileName = selectProfile(cfg, "Select profile to delete", ""); profileName == "" {
			log.Fatalf("No profiles available to delete")
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		removeProfile(cfg, profileName)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

// removeProfile deletes name and keeps an active profile around, restoring
// the built-in classic one if the last profile goes.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)
	if len(cfg.Profiles) == 0 {
		cfg.Profiles[config.DefaultProfile] = config.ClassicProfile()
	}
	if cfg.ActiveProfile == name {
		cfg.ActiveProfile = cfg.ProfileNames()[0]
	}
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else if profileName = selectProfile(cfg, "Select profile to switch to", cfg.ActiveProfile); profileName == "" {
			fmt.Println("No other profiles available to switch to")
			return
		}

		if err := cfg.UseProfile(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
