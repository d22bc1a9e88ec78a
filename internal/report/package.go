package report

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Package is the subset of a package.json descriptor that describes an
// application in EARL reports.
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Homepage     string   `json:"homepage"`
	License      string   `json:"license"`
	Author       *Person  `json:"author"`
	Contributors []Person `json:"contributors"`
	Bugs         Bugs     `json:"bugs"`
}

// Person is a package author, given either as an object or in the
// "Name <email> (url)" shorthand.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

var personPattern = regexp.MustCompile(`^([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?$`)

// UnmarshalJSON accepts both person forms.
func (p *Person) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m := personPattern.FindStringSubmatch(strings.TrimSpace(s))
		if m == nil {
			*p = Person{Name: strings.TrimSpace(s)}
			return nil
		}
		*p = Person{Name: m[1], Email: m[2], URL: m[3]}
		return nil
	}

	type plain Person
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("person must be a string or an object: %w", err)
	}
	*p = Person(obj)
	return nil
}

// Bugs is the issue tracker, given either as a URL or as {"url": ...}.
type Bugs struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts both bugs forms.
func (b *Bugs) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.URL = s
		return nil
	}

	type plain Bugs
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bugs must be a string or an object: %w", err)
	}
	*b = Bugs(obj)
	return nil
}

// ReadPackage parses the package.json descriptor at path.
func ReadPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package descriptor: %w", err)
	}
	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse package descriptor %s: %w", path, err)
	}
	return &pkg, nil
}

// PackageToEarlProperties derives EARL properties from a package descriptor.
// Fields the descriptor lacks are left empty.
func PackageToEarlProperties(pkg *Package) *Properties {
	props := &Properties{
		ApplicationURI:         pkg.Homepage,
		ApplicationNameFull:    pkg.Name,
		ApplicationNameNpm:     pkg.Name,
		ApplicationDescription: pkg.Description,
		ApplicationHomepageURL: pkg.Homepage,
		ApplicationBugsURL:     pkg.Bugs.URL,
		Version:                pkg.Version,
	}
	if pkg.License != "" {
		props.LicenseURI = "http://opensource.org/licenses/" + pkg.License
	}

	people := pkg.Contributors
	if pkg.Author != nil {
		people = append([]Person{*pkg.Author}, people...)
	}
	for _, p := range people {
		props.Authors = append(props.Authors, Author{URI: p.URL, Name: p.Name, Homepage: p.URL})
	}
	return props
}

// EnsureProperties loads the properties file at path, first generating it
// from the package descriptor when it does not exist yet. A descriptor
// without a homepage cannot name the application, so nothing is written.
func EnsureProperties(path, packagePath string) (*Properties, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		pkg, err := ReadPackage(packagePath)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("cannot generate %s", path), Err: err}
		}
		props := PackageToEarlProperties(pkg)
		if props.ApplicationURI == "" {
			return nil, &Error{Message: fmt.Sprintf("cannot generate %s: %s has no homepage to use as applicationUri", path, packagePath)}
		}
		if err := WriteProperties(path, props); err != nil {
			return nil, err
		}
	}
	return LoadProperties(path)
}
