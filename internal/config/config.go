package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Rorical/PaperChat/internal/anim"
)

var ErrUnknownProfile = errors.New("unknown profile")

const (
	DefaultProfile   = "classic"
	defaultTimeScale = 1.0
	defaultFrameRate = 60
)

type PhaseConfig struct {
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

type ParticleConfig struct {
	Count       int     `yaml:"count"`
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`
}

// Profile is one parameterization of the fold/crumple/throw sequence.
type Profile struct {
	Fold        PhaseConfig    `yaml:"fold"`
	Crumple     PhaseConfig    `yaml:"crumple"`
	Throw       PhaseConfig    `yaml:"throw"`
	Particles   ParticleConfig `yaml:"particles"`
	Placeholder string         `yaml:"placeholder,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `yaml:"profiles"`
	ActiveProfile  string             `yaml:"active_profile"`
	TimeScale      float64            `yaml:"time_scale"`
	FrameRate      int                `yaml:"frame_rate"`
	currentProfile *Profile
}

// ClassicProfile matches the original paper toss timings.
func ClassicProfile() Profile {
	return Profile{
		Fold:        PhaseConfig{Duration: 0.5, Ease: "easeInOut"},
		Crumple:     PhaseConfig{Duration: 0.75, Ease: "cubic-bezier(0.22, 1, 0.36, 1)"},
		Throw:       PhaseConfig{Duration: 0.6, Ease: "cubic-bezier(0.16, 1, 0.3, 1)"},
		Particles:   ParticleConfig{Count: 14, MinDuration: 0.45, MaxDuration: 0.85},
		Placeholder: "Say something expressive...",
	}
}

// BriskProfile is the slightly quicker variant.
func BriskProfile() Profile {
	return Profile{
		Fold:        PhaseConfig{Duration: 0.45, Ease: "easeInOut"},
		Crumple:     PhaseConfig{Duration: 0.7, Ease: "cubic-bezier(0.22, 1, 0.36, 1)"},
		Throw:       PhaseConfig{Duration: 0.55, Ease: "cubic-bezier(0.16, 1, 0.3, 1)"},
		Particles:   ParticleConfig{Count: 12, MinDuration: 0.4, MaxDuration: 0.8},
		Placeholder: "Type a message and press Enter",
	}
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// Validate checks that every profile can be turned into a plan.
func (p Profile) Validate() error {
	phases := []struct {
		name  string
		phase PhaseConfig
	}{
		{"fold", p.Fold},
		{"crumple", p.Crumple},
		{"throw", p.Throw},
	}
	for _, ph := range phases {
		if ph.phase.Duration <= 0 {
			return fmt.Errorf("%s: duration must be positive, got %v", ph.name, ph.phase.Duration)
		}
		if _, err := anim.ParseEasing(ph.phase.Ease); err != nil {
			return fmt.Errorf("%s: %w", ph.name, err)
		}
	}
	if p.Particles.Count <= 0 {
		return fmt.Errorf("particles: count must be positive, got %d", p.Particles.Count)
	}
	if p.Particles.MinDuration <= 0 || p.Particles.MinDuration > p.Particles.MaxDuration {
		return fmt.Errorf("particles: invalid duration range [%v, %v]", p.Particles.MinDuration, p.Particles.MaxDuration)
	}
	return nil
}

// Total is the nominal length of the animated phases in time-units.
func (p Profile) Total() float64 {
	return p.Fold.Duration + p.Crumple.Duration + p.Throw.Duration
}

func (c *Config) Validate() error {
	if c.TimeScale <= 0 {
		return fmt.Errorf("time_scale must be positive, got %v", c.TimeScale)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	for name, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

func (c *Config) CurrentProfile() Profile {
	if c.currentProfile == nil {
		return ClassicProfile()
	}
	return *c.currentProfile
}

// UseProfile switches the active profile for this process without saving.
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// ProfileNames returns profile names sorted for stable listings.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getConfigPath() (string, error) {
	var configDir string

	// Use PAPERCHAT_HOME if set, otherwise use user's home directory
	if home := os.Getenv("PAPERCHAT_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".paperchat", "config.yaml"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.TimeScale == 0 {
		config.TimeScale = defaultTimeScale
	}
	if config.FrameRate == 0 {
		config.FrameRate = defaultFrameRate
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			"classic": ClassicProfile(),
			"brisk":   BriskProfile(),
		},
		ActiveProfile: DefaultProfile,
		TimeScale:     defaultTimeScale,
		FrameRate:     defaultFrameRate,
	}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		name := c.ProfileNames()[0]
		c.ActiveProfile = name
		profile = c.Profiles[name]
	}

	c.currentProfile = &profile
	return nil
}
