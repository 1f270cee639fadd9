package cli

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doclet-labs/doclet/internal/config"
	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/linkreg"
)

// Database is the exported document: the pruned doclet set plus the
// 1:1 longname-to-identifier mapping link generators need.
type Database struct {
	Grammar string            `json:"grammar" yaml:"grammar"`
	Doclets []*doclet.Doclet  `json:"doclets" yaml:"doclets"`
	Links   map[string]string `json:"links" yaml:"links"`
}

// buildDatabase applies the visibility filters and assigns link
// identifiers. Filtering happens here, downstream of the core: the
// collection itself is never mutated.
func buildDatabase(c *doclet.Collection, links *linkreg.Registry, settings *config.Settings) *Database {
	db := &Database{Grammar: settings.Grammar, Links: make(map[string]string)}
	for _, d := range c.All() {
		if d.Ignore {
			continue
		}
		if d.Undocumented && !settings.IncludeUndocumented {
			continue
		}
		if !settings.AccessAllowed(string(d.Access)) {
			continue
		}
		db.Doclets = append(db.Doclets, d)
		db.Links[d.Longname] = links.ID(d.Longname)
	}
	return db
}

func writeDatabase(db *Database, settings *config.Settings, stdout io.Writer) error {
	var data []byte
	var err error
	switch settings.Format {
	case "json":
		data, err = json.MarshalIndent(db, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		data, err = yaml.Marshal(db)
	}
	if err != nil {
		return derrors.Wrap(err, "encoding database")
	}

	if settings.Output == "" || settings.Output == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(settings.Output, data, 0o644); err != nil {
		return derrors.Wrapf(err, "writing %s", settings.Output)
	}
	return nil
}
