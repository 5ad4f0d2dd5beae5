package core

import "strings"

// SaveKind distinguishes account settings files from character settings files.
type SaveKind int

const (
	// KindAccount is a core_user_<id>.dat file.
	KindAccount SaveKind = iota
	// KindCharacter is a core_char_<id>.dat file.
	KindCharacter
)

// SaveExt is the extension shared by every settings file.
const SaveExt = ".dat"

// SaveKinds lists every kind in the order they are copied.
var SaveKinds = []SaveKind{KindAccount, KindCharacter}

func (k SaveKind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindCharacter:
		return "character"
	default:
		return "unknown"
	}
}

// Prefix returns the filename prefix for the kind.
func (k SaveKind) Prefix() string {
	switch k {
	case KindCharacter:
		return "core_char_"
	default:
		return "core_user_"
	}
}

// FileName builds the settings filename for id.
func (k SaveKind) FileName(id string) string {
	return k.Prefix() + id + SaveExt
}

// IsNumericID reports whether id is a non-empty run of ASCII digits.
func IsNumericID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// Server is a known deployment environment and the directory suffix that
// identifies its settings directory under the installation root.
type Server struct {
	Name   string
	Suffix string
}

// Selection is one side of a transfer.
type Selection struct {
	Server    string
	Profile   string
	Account   string
	Character string
}

// Missing returns the names of unset fields.
func (s Selection) Missing() []string {
	var missing []string
	if strings.TrimSpace(s.Server) == "" {
		missing = append(missing, "server")
	}
	if strings.TrimSpace(s.Profile) == "" {
		missing = append(missing, "profile")
	}
	if strings.TrimSpace(s.Account) == "" {
		missing = append(missing, "account")
	}
	if strings.TrimSpace(s.Character) == "" {
		missing = append(missing, "character")
	}
	return missing
}

// ID returns the save id selected for kind.
func (s Selection) ID(kind SaveKind) string {
	if kind == KindCharacter {
		return s.Character
	}
	return s.Account
}

func (s Selection) String() string {
	return strings.Join([]string{s.Server, s.Profile, s.Account, s.Character}, "/")
}

// StepStatus is the outcome of one copy step.
type StepStatus string

const (
	StatusSuccess StepStatus = "success"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
	StatusPlanned StepStatus = "planned"
)
