package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/xmlutil"
)

// Resolver locates the schema document for a target namespace.
type Resolver interface {
	Resolve(namespace string) (location string, ok bool)
}

// Entry points of the bundled OGC and ISO schema sets, relative to the schema root.
// Other files with the same target namespace are only reached through these.
var wellKnownEntryPoints = map[string]string{
	servicedef.NamespaceCSW: "csw/2.0.2/csw.xsd",
	servicedef.NamespaceGMD: "iso/19139/20070417/gmd/metadataEntity.xsd",
	servicedef.NamespaceSRV: "iso/19139/20070417/srv/1.0/serviceMetadata.xsd",
}

// Catalog is a Resolver over a local directory of schema files, so that schema
// compilation does not need network access.
type Catalog struct {
	entries map[string]string
}

// NewCatalog indexes every *.xsd file below dir by its targetNamespace.
func NewCatalog(dir string) (*Catalog, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	files, err := doublestar.Glob(os.DirFS(abs), "**/*.xsd")
	if err != nil {
		return nil, fmt.Errorf("cannot list schemas in %s: %w", abs, err)
	}
	sort.Strings(files)

	c := &Catalog{entries: make(map[string]string)}
	for _, f := range files {
		path := filepath.Join(abs, filepath.FromSlash(f))
		ns, err := targetNamespace(path)
		if err != nil {
			return nil, err
		}
		if _, exists := c.entries[ns]; !exists {
			c.entries[ns] = path
		}
	}
	for ns, rel := range wellKnownEntryPoints {
		path := filepath.Join(abs, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			c.entries[ns] = path
		}
	}
	return c, nil
}

func targetNamespace(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := xmlutil.Parse(data)
	if err != nil {
		return "", fmt.Errorf("malformed schema %s: %w", path, err)
	}
	return xmlutil.DocumentElement(doc).SelectAttr("targetNamespace"), nil
}

// Resolve returns the schema file for a namespace.
func (c *Catalog) Resolve(namespace string) (string, bool) {
	path, ok := c.entries[namespace]
	return path, ok
}

// Namespaces returns all indexed namespaces, sorted.
func (c *Catalog) Namespaces() []string {
	ret := make([]string, 0, len(c.entries))
	for ns := range c.entries {
		ret = append(ret, ns)
	}
	sort.Strings(ret)
	return ret
}
