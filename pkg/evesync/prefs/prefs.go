// Package prefs reads and toggles single lines of a profile's prefs.ini.
//
// prefs.ini is treated as plain text: a setting is present when its exact
// line text occurs anywhere in the file, it is enabled by appending the line
// and disabled by removing it. No INI parsing is done.
//
// Appending keeps the file's final newline convention: a file ending in a
// newline gets "line\n", any other file gets "\nline". Removing a line takes
// the matching newline with it, so toggling a line that sits at the end of
// the file twice gives back the same bytes. A line found elsewhere comes back
// at the end of the file.
package prefs

import (
	"path"
	"strings"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/filesystem"
)

// FileName is the preferences file inside each profile directory.
const FileName = "prefs.ini"

// BracketsLine makes the client always show ship names on brackets.
const BracketsLine = "bracketsAlwaysShowShipText=1"

// Path returns the fs name of prefs.ini under profileDir.
func Path(profileDir string) string {
	return path.Join(profileDir, FileName)
}

// Enabled reports whether line occurs in the file.
func Enabled(fsys filesystem.ReadFS, name, line string) (bool, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return false, &core.PreferenceError{Op: "read", Path: name, Cause: err}
	}
	return strings.Contains(string(data), line), nil
}

// Toggle removes line if it is present and appends it otherwise, and
// returns whether it is present afterwards. Appending then removing leaves
// the file exactly as it was.
func Toggle(fsys filesystem.FileSystem, name, line string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return false, &core.PreferenceError{Op: "toggle", Path: name, Cause: err}
	}
	data, err := fsys.ReadFile(name)
	if err != nil {
		return false, &core.PreferenceError{Op: "toggle", Path: name, Cause: err}
	}

	content := string(data)
	enabled := !strings.Contains(content, line)
	if enabled {
		content = appendLine(content, line)
	} else {
		content = remove(content, line)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	if err := fsys.WriteFile(name, []byte(content), perm); err != nil {
		return false, &core.PreferenceError{Op: "toggle", Path: name, Cause: err}
	}
	return enabled, nil
}

func appendLine(content, line string) string {
	if strings.HasSuffix(content, "\n") {
		return content + line + "\n"
	}
	return content + "\n" + line
}

// remove drops the first occurrence of line that starts a line, along with
// its trailing newline, or the leading one when it ends the file. A line at
// the very start of the file takes its trailing newline with it.
func remove(content, line string) string {
	if i := strings.Index(content, "\n"+line); i >= 0 {
		end := i + 1 + len(line)
		if strings.HasPrefix(content[end:], "\n") {
			return content[:i+1] + content[end+1:]
		}
		return content[:i] + content[end:]
	}
	i := strings.Index(content, line)
	rest := content[i+len(line):]
	if i == 0 {
		rest = strings.TrimPrefix(rest, "\n")
	}
	return content[:i] + rest
}
