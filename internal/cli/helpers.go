package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Davincible/gfshare/internal/validation"
	"github.com/Davincible/gfshare/pkg/config"
	"github.com/Davincible/gfshare/pkg/crypto/shamir"
	"github.com/Davincible/gfshare/pkg/secure"
	"github.com/Davincible/gfshare/pkg/storage"
)

// prompter reads user input for one command invocation. Hidden input uses the
// terminal when stdin is one and falls back to plain lines otherwise.
type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	terminal bool
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{
		in:       bufio.NewReader(in),
		out:      cmd.OutOrStdout(),
		terminal: in == os.Stdin && term.IsTerminal(int(syscall.Stdin)),
	}
}

// readLine returns the next line without its line ending. io.EOF is only
// returned when nothing was read.
func (p *prompter) readLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readHidden reads a secret without echoing it to the terminal.
func (p *prompter) readHidden(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)

	if p.terminal {
		value, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, err
		}
		return value, nil
	}

	// Fallback for non-terminal
	line, err := p.readLine("")
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(line)), nil
}

// readPassphrase reads a password for an existing share file
func (p *prompter) readPassphrase(prompt string) ([]byte, error) {
	password, err := p.readHidden(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return nil, storage.ErrEmptyPassword
	}
	return password, nil
}

// readNewPassphrase asks for a password twice and enforces the minimum length.
func (p *prompter) readNewPassphrase(minLength int) ([]byte, error) {
	password, err := p.readPassphrase("Enter password to encrypt the share file: ")
	if err != nil {
		return nil, err
	}

	if err := validation.ValidatePassword(password, minLength); err != nil {
		secure.Zero(password)
		return nil, err
	}

	confirm, err := p.readPassphrase("Confirm password: ")
	if err != nil {
		secure.Zero(password)
		return nil, err
	}
	defer secure.Zero(confirm)

	if !secure.ConstantTimeCompare(password, confirm) {
		secure.Zero(password)
		return nil, fmt.Errorf("passwords do not match")
	}

	return password, nil
}

// readShares collects shares one per line until an empty line or EOF. Lines
// that do not parse are reported and skipped.
func (p *prompter) readShares() ([]shamir.Share, error) {
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintln(p.out)
	yellow.Fprintln(p.out, "Enter shares (hex or base64), one per line")
	fmt.Fprintln(p.out, "Press Enter on an empty line when done")
	fmt.Fprintln(p.out)

	var shares []shamir.Share
	for {
		line, err := p.readLine(fmt.Sprintf("Share %d: ", len(shares)+1))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			break
		}
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			if len(shares) == 0 {
				continue
			}
			break
		}

		share, err := validation.ParseShare(line)
		if err != nil {
			red.Fprintf(p.out, "  ✗ Invalid share: %v\n", err)
			continue
		}

		green.Fprintf(p.out, "  ✓ Valid share (%d bytes)\n", share.Len())
		shares = append(shares, share)
	}

	if len(shares) == 0 {
		return nil, fmt.Errorf("no valid shares provided")
	}

	fmt.Fprintf(p.out, "\nCollected %d shares\n", len(shares))
	return shares, nil
}

// parseShareArgs parses shares given on the command line.
func parseShareArgs(args []string) ([]shamir.Share, error) {
	shares := make([]shamir.Share, len(args))
	for i, arg := range args {
		share, err := validation.ParseShare(arg)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shares[i] = share
	}
	return shares, nil
}

// loadShareFile reads a share file, prompting for the password when it is
// encrypted.
func loadShareFile(p *prompter, path string) (*storage.StoredShares, []shamir.Share, error) {
	store := storage.NewShareStorage(path)

	encrypted, err := store.IsEncrypted()
	if err != nil {
		return nil, nil, err
	}

	var password []byte
	if encrypted {
		password, err = p.readPassphrase("Enter share file password: ")
		if err != nil {
			return nil, nil, err
		}
		defer secure.Zero(password)
	}

	stored, err := store.LoadShares(password)
	if err != nil {
		return nil, nil, err
	}

	shares, err := stored.Decode()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	slog.Debug("Loaded share file", "path", path, "shares", len(shares), "encrypted", encrypted)

	return stored, shares, nil
}

// loadConfig resolves the --config flag and applies the UI settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cm, err := config.NewConfigManager(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := cm.GetConfig()
	if !cfg.UI.UseColor {
		color.NoColor = true
	}

	return cfg, nil
}

// useJSON reports whether output should be JSON: the --json flag wins over the
// configured default format.
func useJSON(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("json") {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	return cfg.Defaults.Format == "json"
}

func kdfParams(cfg *config.Config) storage.KDFParams {
	return storage.KDFParams{
		Time:    cfg.Storage.KDFTime,
		Memory:  cfg.Storage.KDFMemory,
		Threads: cfg.Storage.KDFThreads,
	}
}

func newSharer(workers int) *shamir.Sharer {
	return shamir.NewSharer(
		shamir.WithWorkers(workers),
		shamir.WithLogger(slog.Default()),
	)
}
