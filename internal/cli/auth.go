package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mailtui/internal/config"
	"mailtui/internal/secrets"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication and config setup",
	}
	cmd.AddCommand(newAuthLoginCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		imapHost     string
		imapPort     int
		imapTLS      bool
		imapInsecure bool

		smtpHost     string
		smtpPort     int
		smtpTLS      bool
		smtpStartTLS bool
		smtpInsecure bool

		username string
		password string
		mailbox  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store IMAP/SMTP settings and save the password to the keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("imap-host") {
				cfg.IMAP.Host = imapHost
			}
			if cmd.Flags().Changed("imap-port") {
				cfg.IMAP.Port = imapPort
			}
			if cmd.Flags().Changed("imap-tls") {
				cfg.IMAP.TLS = imapTLS
			}
			if cmd.Flags().Changed("imap-insecure") {
				cfg.IMAP.InsecureSkipVerify = imapInsecure
			}

			if cmd.Flags().Changed("smtp-host") {
				cfg.SMTP.Host = smtpHost
			}
			if cmd.Flags().Changed("smtp-port") {
				cfg.SMTP.Port = smtpPort
			}
			if cmd.Flags().Changed("smtp-tls") {
				cfg.SMTP.TLS = smtpTLS
			}
			if cmd.Flags().Changed("smtp-starttls") {
				cfg.SMTP.StartTLS = smtpStartTLS
			}
			if cmd.Flags().Changed("smtp-insecure") {
				cfg.SMTP.InsecureSkipVerify = smtpInsecure
			}

			if cmd.Flags().Changed("username") {
				cfg.Auth.Username = username
			}
			if cmd.Flags().Changed("mailbox") {
				cfg.Defaults.Mailbox = mailbox
			}

			if cfg.Auth.Username == "" {
				return fmt.Errorf("auth.username is required")
			}

			secret := password
			if !cmd.Flags().Changed("password") {
				secret, err = promptPassword(cmd)
				if err != nil {
					return err
				}
			}

			check := cfg
			check.Auth.Password = secret
			if err := config.Validate(check); err != nil {
				return err
			}

			if secret != "" {
				if err := secrets.SetPassword(cfg.Auth.Username, secret); err != nil {
					return err
				}
			}

			// The password lives in the keyring; the file only carries
			// endpoints and the username.
			cfg.Auth.Password = ""

			path, err := config.Save(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&imapHost, "imap-host", "", "IMAP host")
	cmd.Flags().IntVar(&imapPort, "imap-port", 0, "IMAP port")
	cmd.Flags().BoolVar(&imapTLS, "imap-tls", true, "Use IMAP TLS")
	cmd.Flags().BoolVar(&imapInsecure, "imap-insecure", false, "Skip IMAP TLS verification")

	cmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	cmd.Flags().IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	cmd.Flags().BoolVar(&smtpTLS, "smtp-tls", false, "Use SMTP TLS")
	cmd.Flags().BoolVar(&smtpStartTLS, "smtp-starttls", true, "Use SMTP STARTTLS")
	cmd.Flags().BoolVar(&smtpInsecure, "smtp-insecure", false, "Skip SMTP TLS verification")

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password or app password")
	cmd.Flags().StringVar(&mailbox, "mailbox", "", "Default mailbox")

	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; pass --password instead")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout(), "")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}
