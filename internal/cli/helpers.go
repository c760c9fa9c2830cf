package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mailtui/internal/config"
	"mailtui/internal/imap"
)

// openLogger returns the session logger and a close func. Without
// --debug it is a no-op; with it, entries go to a file under the config
// dir so the TUI keeps the terminal to itself.
func openLogger(cmd *cobra.Command) (zerolog.Logger, func(), error) {
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
	if !debug {
		return zerolog.Nop(), func() {}, nil
	}

	path, err := config.LogPath()
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(zerolog.SyncWriter(f)).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

// openSession loads config, connects, and hands back the live session
// with a combined cleanup func.
func openSession(cmd *cobra.Command) (*imap.Session, config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	if err := config.ValidateIMAP(cfg); err != nil {
		return nil, cfg, nil, err
	}

	logger, closeLog, err := openLogger(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}

	session, err := imap.Connect(cfg, logger)
	if err != nil {
		closeLog()
		return nil, cfg, nil, err
	}

	cleanup := func() {
		_ = session.Close()
		closeLog()
	}
	return session, cfg, cleanup, nil
}
