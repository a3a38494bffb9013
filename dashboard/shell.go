// Package dashboard composes the API client into the views the CLI renders.
package dashboard

import "github.com/chinmay1088/chainboard/api"

// RootScreenID identifies the screen a Shell starts on.
const RootScreenID = "overview"

// Screen is a navigation entry. Only the root screen exists today.
type Screen struct {
	ID    string
	Title string
}

// Shell owns one API client and one navigation root. It never changes the
// client after construction.
type Shell struct {
	client *api.Client
	root   Screen
}

// NewShell creates a shell whose client is bound to config.
func NewShell(config api.BlockchainConfig, opts ...api.Option) *Shell {
	return &Shell{
		client: api.NewClient(config, opts...),
		root:   Screen{ID: RootScreenID, Title: "Overview"},
	}
}

// Client returns the shell's API client.
func (s *Shell) Client() *api.Client { return s.client }

// Root returns the navigation root.
func (s *Shell) Root() Screen { return s.root }

// Config returns the client configuration.
func (s *Shell) Config() api.BlockchainConfig { return s.client.Config() }
