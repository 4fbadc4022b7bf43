package descriptor

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// webApp covers <web-app> and <web-fragment>; only servlet bindings are read.
type webApp struct {
	Servlets []struct {
		Name  string `xml:"servlet-name"`
		Class string `xml:"servlet-class"`
	} `xml:"servlet"`
	Mappings []struct {
		Name     string   `xml:"servlet-name"`
		Patterns []string `xml:"url-pattern"`
	} `xml:"servlet-mapping"`
}

// ParseWebXML reads one deployment descriptor into t.
// A <servlet-mapping> may precede its <servlet>.
func ParseWebXML(r io.Reader, t *Table) error {
	var doc webApp
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	for _, s := range doc.Servlets {
		if s.Name == "" {
			continue
		}
		t.Add(s.Name, s.Class)
	}
	for _, m := range doc.Mappings {
		if m.Name == "" {
			continue
		}
		t.Add(m.Name, "", m.Patterns...)
	}
	return nil
}

// LoadWebXML merges the descriptors at paths into one table.
func LoadWebXML(paths ...string) (*Table, error) {
	t := NewTable()
	for _, path := range paths {
		if err := loadFile(path, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func loadFile(path string, t *Table) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open descriptor %s: %w", path, err)
	}
	defer f.Close()
	if err := ParseWebXML(f, t); err != nil {
		return fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	return nil
}
