// Package validator checks an exported doclet database for structural
// integrity: required fields, longname consistency and the 1:1 link
// mapping. It parses the document loosely rather than through the
// export types, so it can check files produced by other versions.
package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/linkreg"
	"github.com/doclet-labs/doclet/internal/tagdict"
)

var validKinds = map[string]bool{
	"class": true, "constant": true, "event": true, "external": true,
	"file": true, "function": true, "interface": true, "member": true,
	"mixin": true, "module": true, "namespace": true, "typedef": true,
}

// Summary reports what a check found. Warnings are non-fatal findings;
// structural violations come back as the error instead.
type Summary struct {
	Grammar  string
	Doclets  int
	Links    int
	Warnings []string
}

// CheckFile validates the database at path.
func CheckFile(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.Wrapf(err, "reading %s", path)
	}
	return Check(data)
}

// Check validates a serialized database. YAML is tried first, then
// JSON.
func Check(data []byte) (*Summary, error) {
	var db map[string]interface{}
	if err := yaml.Unmarshal(data, &db); err != nil {
		if jerr := json.Unmarshal(data, &db); jerr != nil {
			return nil, derrors.Wrap(err, "parsing database as YAML or JSON")
		}
	}

	s := &Summary{}
	if err := checkGrammar(db, s); err != nil {
		return nil, err
	}

	longnames, err := checkDoclets(db, s)
	if err != nil {
		return nil, err
	}
	if err := checkLinks(db, longnames, s); err != nil {
		return nil, err
	}
	return s, nil
}

func checkGrammar(db map[string]interface{}, s *Summary) error {
	grammar, ok := db["grammar"].(string)
	if !ok || grammar == "" {
		return derrors.New("missing or invalid 'grammar' field")
	}
	s.Grammar = grammar

	builtin := false
	for _, name := range tagdict.BuiltinNames() {
		if name == grammar {
			builtin = true
		}
	}
	if !builtin {
		s.Warnings = append(s.Warnings,
			fmt.Sprintf("grammar %q is not built in; assuming a custom dictionary", grammar))
	}
	return nil
}

func checkDoclets(db map[string]interface{}, s *Summary) (map[string]bool, error) {
	list, ok := db["doclets"].([]interface{})
	if !ok {
		if db["doclets"] == nil {
			return map[string]bool{}, nil
		}
		return nil, derrors.New("'doclets' is not a sequence")
	}

	longnames := make(map[string]bool, len(list))
	for i, entry := range list {
		d, ok := entry.(map[string]interface{})
		if !ok {
			return nil, derrors.Newf("doclet %d is not a mapping", i)
		}

		longname, _ := d["longname"].(string)
		if longname == "" {
			return nil, derrors.Newf("doclet %d has no longname", i)
		}
		longnames[longname] = true

		kind, _ := d["kind"].(string)
		if kind == "" {
			return nil, derrors.Newf("doclet %q has no kind", longname)
		}
		if !validKinds[kind] {
			s.Warnings = append(s.Warnings,
				fmt.Sprintf("doclet %q has unrecognized kind %q", longname, kind))
		}

		if memberof, _ := d["memberof"].(string); memberof != "" {
			if !strings.HasPrefix(longname, memberof) || len(longname) <= len(memberof) {
				return nil, derrors.Newf(
					"doclet %q: longname does not extend memberof %q", longname, memberof)
			}
			punct := longname[len(memberof)]
			if punct != '.' && punct != '#' && punct != '~' {
				return nil, derrors.Newf(
					"doclet %q: longname joins memberof %q with %q, want '.', '#' or '~'",
					longname, memberof, string(punct))
			}
		}
	}
	s.Doclets = len(list)
	return longnames, nil
}

// checkLinks verifies the link table is 1:1 over documented longnames
// and that each identifier is the deterministic one for its longname.
func checkLinks(db map[string]interface{}, longnames map[string]bool, s *Summary) error {
	raw, ok := db["links"].(map[string]interface{})
	if !ok {
		if db["links"] == nil {
			return nil
		}
		return derrors.New("'links' is not a mapping")
	}

	reg := linkreg.New()
	seen := make(map[string]string, len(raw))
	for longname, v := range raw {
		id, ok := v.(string)
		if !ok {
			return derrors.Newf("link for %q is not a string", longname)
		}
		if _, err := uuid.Parse(id); err != nil {
			return derrors.Wrapf(err, "link for %q", longname)
		}
		if prev, dup := seen[id]; dup {
			return derrors.Newf("link %s assigned to both %q and %q", id, prev, longname)
		}
		seen[id] = longname

		if !longnames[longname] {
			s.Warnings = append(s.Warnings,
				fmt.Sprintf("link for %q, which is not in the doclet set", longname))
		}
		if want := reg.ID(longname); want != id {
			return derrors.Newf("link for %q is %s, want %s", longname, id, want)
		}
	}
	s.Links = len(raw)
	return nil
}
