// Package config loads the accounts file: who sends the reminder, who
// receives it, and where each recipient's spreadsheet and credentials live.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrUnknownAccount  = errors.New("no account found with that name")
	ErrMissingPassword = errors.New("no app password available")
)

// File is the decoded accounts file. Immutable after Load.
type File struct {
	FromEmail       string               `toml:"from-gmail"`
	AppPasswordFile string               `toml:"from-gmail-app-pwd-file"`
	Accounts        map[string]Recipient `toml:"accounts"`
}

// Recipient is one keyed account record.
type Recipient struct {
	Name               string `toml:"name"`
	Email              string `toml:"email"`
	SpreadsheetID      string `toml:"spreadsheet-id"`
	ServiceAccountFile string `toml:"service-account-file"`
}

// SpreadsheetURL returns the browsable URL for the recipient's spreadsheet.
func (r Recipient) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + r.SpreadsheetID
}

// Account bundles the sender identity with one selected recipient.
type Account struct {
	FromEmail   string
	AppPassword string
	Key         string
	Recipient   Recipient
}

// Load reads and decodes the accounts file, then validates it.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the decoded file and reports every problem at once.
func (f *File) Validate() error {
	var problems []string

	if strings.TrimSpace(f.FromEmail) == "" {
		problems = append(problems, "missing 'from-gmail' sender address")
	}
	if strings.TrimSpace(f.AppPasswordFile) == "" {
		problems = append(problems, "missing 'from-gmail-app-pwd-file' path")
	}
	if len(f.Accounts) == 0 {
		problems = append(problems, "no [accounts.<key>] records defined")
	}
	for key, r := range f.Accounts {
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, fmt.Sprintf("account '%s': missing name", key))
		}
		if strings.TrimSpace(r.Email) == "" {
			problems = append(problems, fmt.Sprintf("account '%s': missing email", key))
		}
		if strings.TrimSpace(r.SpreadsheetID) == "" {
			problems = append(problems, fmt.Sprintf("account '%s': missing spreadsheet-id", key))
		}
		if strings.TrimSpace(r.ServiceAccountFile) == "" {
			problems = append(problems, fmt.Sprintf("account '%s': missing service-account-file", key))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Account selects the recipient for the given key and resolves the sender's
// app password. The password comes from the configured file; the
// GMAIL_APP_PASSWORD environment variable is the fallback when the file is
// unreadable.
func (f *File) Account(key string) (*Account, error) {
	r, ok := f.Accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAccount, key)
	}

	password, err := f.appPassword()
	if err != nil {
		return nil, err
	}

	return &Account{
		FromEmail:   f.FromEmail,
		AppPassword: password,
		Key:         key,
		Recipient:   r,
	}, nil
}

func (f *File) appPassword() (string, error) {
	data, err := os.ReadFile(f.AppPasswordFile)
	if err == nil {
		if pwd := strings.TrimSpace(string(data)); pwd != "" {
			return pwd, nil
		}
	}
	if pwd := strings.TrimSpace(os.Getenv("GMAIL_APP_PASSWORD")); pwd != "" {
		return pwd, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrMissingPassword, f.AppPasswordFile, err)
	}
	return "", fmt.Errorf("%w: %s is empty", ErrMissingPassword, f.AppPasswordFile)
}
