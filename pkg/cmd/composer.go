package cmd

import (
	"github.com/dukex/flowalert/pkg/composer"
)

// ComposerOptions configures the default composer from the server flags.
func ComposerOptions(serverName, serverURL string) ([]composer.Option, error) {
	server, err := composer.ParseServerInfo(serverName, serverURL)
	if err != nil {
		return nil, err
	}

	return []composer.Option{composer.WithServer(server)}, nil
}
