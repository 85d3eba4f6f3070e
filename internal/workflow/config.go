package workflow

import "fmt"

// Config is the immutable input to a landing run. It is constructed once
// in the CLI layer from defaults, repository configuration, and command-line
// overrides, and never mutated by the engine.
type Config struct {
	// LandingBranch is the feature branch being integrated
	LandingBranch string

	// TargetBranch is the branch the landing branch is merged into
	TargetBranch string

	// Remote is the named upstream used for fetch/push
	Remote string

	// Message is the commit message for the squashed land commit
	Message string

	// Push pushes the target branch and the landing-branch deletion after landing
	Push bool

	// Verbose narrates each step before executing it
	Verbose bool

	// Paranoid requires interactive confirmation before each mutating step
	Paranoid bool
}

// DefaultMessage returns the commit message used when none is configured
func DefaultMessage(landingBranch string) string {
	return fmt.Sprintf("Landed branch %s", landingBranch)
}

// ResolvedMessage returns the configured message, falling back to the default
func (c Config) ResolvedMessage() string {
	if c.Message != "" {
		return c.Message
	}
	return DefaultMessage(c.LandingBranch)
}
