package saves

import (
	"strings"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
)

// SaveName is the typed form of a settings filename.
type SaveName struct {
	Kind core.SaveKind
	ID   string
}

// FileName rebuilds the filename the SaveName was parsed from.
func (n SaveName) FileName() string {
	return n.Kind.FileName(n.ID)
}

// ParseSaveName parses <kind-prefix><digits>.dat. The second result is false
// for anything else, including names whose id is not purely numeric.
func ParseSaveName(name string) (SaveName, bool) {
	for _, kind := range core.SaveKinds {
		prefix := kind.Prefix()
		if len(name) < len(prefix)+len(core.SaveExt) {
			continue
		}
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, core.SaveExt) {
			continue
		}
		id := name[len(prefix) : len(name)-len(core.SaveExt)]
		if !core.IsNumericID(id) {
			return SaveName{}, false
		}
		return SaveName{Kind: kind, ID: id}, true
	}
	return SaveName{}, false
}
