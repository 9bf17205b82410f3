package cmd

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriBug/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage OpenAI profiles used by the report server",
	Long: `Profiles hold the API key, model and optional base URL that
"roribug serve" uses to call the model.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		printProfiles(cmd.OutOrStdout(), loadConfig())
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := printProfile(cmd.OutOrStdout(), cfg, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name, err := argOrPrompt(args, "Profile name")
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if _, exists := cfg.Profiles[name]; exists {
			log.Fatalf("Profile '%s' already exists", name)
		}

		profile, err := promptProfile(config.Profile{Model: config.DefaultModel})
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		cfg.Profiles[name] = profile

		saveConfig(cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' added successfully!\n", name)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := argOrSelect(args, cfg, "Select profile to edit", false)
		profile, exists := cfg.Profiles[name]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		profile, err := promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		cfg.Profiles[name] = profile

		saveConfig(cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' updated successfully!\n", name)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := argOrSelect(args, cfg, "Select profile to delete", false)
		if _, exists := cfg.Profiles[name]; !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", name),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
			return
		}

		removeProfile(cfg, name)
		saveConfig(cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' deleted successfully!\n", name)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if len(args) == 0 && len(profileNames(cfg, true)) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No other profiles available to switch to")
			return
		}
		name := argOrSelect(args, cfg, "Select profile to switch to", true)
		if _, exists := cfg.Profiles[name]; !exists {
			log.Fatalf("Profile '%s' does not exist", name)
		}

		cfg.ActiveProfile = name
		saveConfig(cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile '%s'\n", name)
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

func saveConfig(cfg *config.Config) {
	if err := cfg.Save(); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
}

// profileNames is sorted so prompts and listings are stable.
func profileNames(cfg *config.Config, excludeActive bool) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if excludeActive && name == cfg.ActiveProfile {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printProfiles(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Active Profile: %s\n\n", cfg.ActiveProfile)
	fmt.Fprintln(w, "Available Profiles:")
	for _, name := range profileNames(cfg, false) {
		profile := cfg.Profiles[name]
		marker := ""
		if name == cfg.ActiveProfile {
			marker = " (active)"
		}
		fmt.Fprintf(w, "  %s%s\n", name, marker)
		fmt.Fprintf(w, "    Model: %s\n", profile.Model)
		if profile.BaseURL != "" {
			fmt.Fprintf(w, "    Base URL: %s\n", profile.BaseURL)
		}
		fmt.Fprintf(w, "    API Key: %s\n\n", yesNo(profile.APIKey != ""))
	}
}

func printProfile(w io.Writer, cfg *config.Config, name string) error {
	profile, exists := cfg.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}

	fmt.Fprintf(w, "Profile: %s\n", name)
	fmt.Fprintf(w, "Model: %s\n", profile.Model)
	fmt.Fprintf(w, "Base URL: %s\n", profile.BaseURL)
	key := "Not set"
	if profile.APIKey != "" {
		key = "Set (hidden for security)"
	}
	fmt.Fprintf(w, "API Key: %s\n", key)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// removeProfile deletes name and keeps ActiveProfile pointing at an existing
// profile, recreating "default" when the last one goes.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)
	if cfg.ActiveProfile != name {
		return
	}

	remaining := profileNames(cfg, false)
	if len(remaining) == 0 {
		cfg.Profiles["default"] = config.Profile{Model: config.DefaultModel}
		cfg.ActiveProfile = "default"
		return
	}
	cfg.ActiveProfile = remaining[0]
}

func argOrPrompt(args []string, label string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}

func argOrSelect(args []string, cfg *config.Config, label string, excludeActive bool) string {
	if len(args) > 0 {
		return args[0]
	}

	names := profileNames(cfg, excludeActive)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{Label: label, Items: names}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

// promptProfile asks for each field, offering current as the default.
func promptProfile(current config.Profile) (config.Profile, error) {
	var (
		p   = current
		err error
	)

	apiKey := promptui.Prompt{Label: "API Key", Default: current.APIKey, Mask: '*'}
	if p.APIKey, err = apiKey.Run(); err != nil {
		return current, err
	}

	model := promptui.Prompt{Label: "Model", Default: current.Model}
	if p.Model, err = model.Run(); err != nil {
		return current, err
	}

	baseURL := promptui.Prompt{Label: "Base URL (optional)", Default: current.BaseURL}
	if p.BaseURL, err = baseURL.Run(); err != nil {
		return current, err
	}

	return p, nil
}
