package tipbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Template is a gallery entry: ready-made advanced-mode CSS.
type Template struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Featured   bool   `json:"featured"`
	Background string `json:"background"` // CSS background for the gallery swatch
	CSS        string `json:"css"`
	SourceFile string `json:"sourceFile,omitempty"`
}

func init() {
	def := Template{
		ID:         "default",
		Name:       "Default",
		Background: "radial-gradient(circle, #71e251, #888888)",
		CSS:        Generate(DefaultStyleModel()),
	}
	builtinTemplates = append([]Template{def}, builtinTemplates...)
}

// BuiltinTemplates returns the shipped gallery in display order.
func BuiltinTemplates() []Template {
	out := make([]Template, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}

// DefaultTemplateIncludes is used when LoadTemplates gets no patterns.
var DefaultTemplateIncludes = []string{"**/*.css"}

// LoadTemplates reads user templates from dir. Files ignored by a
// .gitignore in dir are skipped. Metadata comes from directives in the
// leading comment block:
//
//	/* @name Sakura
//	 * @background radial-gradient(circle, #ffb7c5, #ffffff)
//	 * @featured
//	 */
//
// Without @name the file name is used. Unreadable files are reported as
// warnings and skipped.
func LoadTemplates(dir string, includes []string) ([]Template, []string, error) {
	if len(includes) == 0 {
		includes = DefaultTemplateIncludes
	}

	files, err := scanTemplateFiles(dir, includes)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	var templates []Template
	var warnings []string
	for _, file := range files {
		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(file)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", file, err))
			continue
		}
		templates = append(templates, parseTemplate(file, string(content)))
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	return templates, warnings, nil
}

// Gallery returns the built-in templates followed by user templates. A user
// template with a built-in id replaces the built-in entry in place.
func Gallery(user []Template) []Template {
	out := BuiltinTemplates()
	index := make(map[string]int, len(out))
	for i, t := range out {
		index[t.ID] = i
	}
	for _, t := range user {
		if i, ok := index[t.ID]; ok {
			out[i] = t
			continue
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}

// FindTemplate looks a template up by id.
func FindTemplate(templates []Template, id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// scanTemplateFiles finds template files matching includes
func scanTemplateFiles(dir string, includes []string) ([]string, error) {
	// Missing .gitignore is fine
	gi, _ := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if gi != nil {
				if rel, err := filepath.Rel(dir, match); err == nil && gi.MatchesPath(filepath.ToSlash(rel)) {
					continue
				}
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	return files, nil
}

// parseTemplate builds a template from a file and its directive comments
func parseTemplate(path, content string) Template {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t := Template{
		ID:         id,
		Name:       id,
		Background: "#888888",
		CSS:        strings.TrimRight(content, "\n"),
		SourceFile: path,
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Directives only live in the leading comment block
		if !strings.HasPrefix(line, "/*") && !strings.HasPrefix(line, "*") {
			break
		}
		closes := strings.HasSuffix(line, "*/")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))

		directive, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		switch directive {
		case "@name":
			if value != "" {
				t.Name = value
			}
		case "@background":
			if value != "" {
				t.Background = value
			}
		case "@featured":
			t.Featured = true
		}

		if closes {
			break
		}
	}
	return t
}
