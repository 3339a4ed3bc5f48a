package output

import (
	"github.com/arthur-debert/droidsdk/pkg/catalog"
)

// PackageView is one catalog entry as shown by `list`
type PackageView struct {
	Index    string `yaml:"index"`
	Title    string `yaml:"title"`
	API      string `yaml:"api,omitempty"`
	Revision string `yaml:"revision"`
	Planned  bool   `yaml:"planned"`
}

// CatalogView is the listing and the plan computed from it
type CatalogView struct {
	Packages []PackageView `yaml:"packages"`
	Plan     []PackageView `yaml:"plan"`
	Skipped  int           `yaml:"skipped_lines,omitempty"`
}

// NewCatalogView builds the view of cat. Entries in plan are flagged as
// planned.
func NewCatalogView(cat *catalog.Catalog, plan []catalog.Entry) *CatalogView {
	planned := make(map[string]bool, len(plan))
	view := &CatalogView{Packages: []PackageView{}, Plan: []PackageView{}, Skipped: cat.Skipped}
	for _, e := range plan {
		planned[e.Key()] = true
		view.Plan = append(view.Plan, packageView(e, true))
	}
	for _, e := range cat.Entries() {
		view.Packages = append(view.Packages, packageView(e, planned[e.Key()]))
	}
	return view
}

func packageView(e catalog.Entry, planned bool) PackageView {
	return PackageView{
		Index:    e.Index,
		Title:    e.Title,
		API:      e.API,
		Revision: e.Revision,
		Planned:  planned,
	}
}
