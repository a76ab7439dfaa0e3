package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"habitmap/internal/config"
	"habitmap/internal/database"
	"habitmap/internal/tui"
	"habitmap/internal/util"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Printf("Ignoring malformed config: %v\n", err)
	}
	tui.Configure(cfg)

	// 1. Open the database.
	dbRoot := util.DataDir(config.AppName)
	util.MustSucceed("create data dir", os.MkdirAll(dbRoot, 0o755))
	db, err := database.Open(ctx, filepath.Join(dbRoot, config.DBFileName))
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 2. Headless backup commands bypass the TUI.
	if len(os.Args) > 1 {
		if err := runCommand(ctx, db, os.Args[1:]); err != nil {
			fmt.Printf("Alas, there's been an error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// 3. Start the program with mouse support.
	model := tui.NewMainModel(ctx, db)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, db *database.Database, args []string) error {
	switch args[0] {
	case "export":
		path := filepath.Join(util.ExportsDir(config.AppName), "backup.json")
		if len(args) > 1 {
			path = args[1]
		}
		return exportBackup(ctx, db, path)
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s import <file>", config.AppName)
		}
		return importBackup(ctx, db, args[1])
	default:
		return fmt.Errorf("unknown command %q (want export or import)", args[0])
	}
}

// exportBackup writes a JSON backup, encrypted when the user supplies a
// passphrase at the prompt. An empty passphrase writes plaintext.
func exportBackup(ctx context.Context, db *database.Database, path string) error {
	var pass string
	for {
		p, err := promptForKey("Backup passphrase (leave empty for plaintext): ")
		if err != nil {
			return err
		}
		if p == "" {
			break
		}
		if err := util.ValidatePassphrase(p); err != nil {
			fmt.Printf("Passphrase too weak: %v\n", err)
			continue
		}
		pass = p
		break
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := db.WriteExport(ctx, path, pass); err != nil {
		return err
	}
	if pass != "" {
		util.LogError("record backup key hash",
			db.SetSetting("backup_key_hash", util.HashPassphrase(pass)))
	}
	fmt.Printf("Exported %s\n", path)
	return nil
}

func importBackup(ctx context.Context, db *database.Database, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Plaintext imports need no prompt; encrypted ones get a few attempts.
	err = db.ImportJSON(ctx, data, "")
	for tries := 0; errors.Is(err, database.ErrWrongPassphrase) && tries < config.MaxPassphraseAttempts; tries++ {
		var pass string
		pass, err = promptForKey("Backup passphrase: ")
		if err != nil {
			return err
		}
		if pass == "" {
			return fmt.Errorf("empty passphrase")
		}
		if hash, ok := db.GetSetting("backup_key_hash"); ok && hash != util.HashPassphrase(pass) {
			fmt.Println("Note: passphrase differs from the last backup key.")
		}
		err = db.ImportJSON(ctx, data, pass)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s\n", path)
	return nil
}

func promptForKey(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}
