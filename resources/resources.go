package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BrandonKowalski/gabagool/v2/pkg/gabagool/i18n"
)

//go:embed locales/*.toml
var locales embed.FS

const localeGlob = "locales/active.*.toml"

// GetLocaleMessageFiles returns every embedded locale, English first so it
// seeds the default bundle.
func GetLocaleMessageFiles() ([]i18n.MessageFile, error) {
	paths, err := fs.Glob(locales, localeGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded locales: %w", err)
	}

	messageFiles := make([]i18n.MessageFile, 0, len(paths))
	for _, p := range paths {
		content, err := locales.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded locale file %s: %w", p, err)
		}

		file := i18n.MessageFile{Name: path.Base(p), Content: content}
		if file.Name == "active.en.toml" {
			messageFiles = append([]i18n.MessageFile{file}, messageFiles...)
			continue
		}
		messageFiles = append(messageFiles, file)
	}

	return messageFiles, nil
}
