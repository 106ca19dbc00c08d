package tipbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplates(t *testing.T) {
	templates := BuiltinTemplates()
	ids := make([]string, len(templates))
	for i, tpl := range templates {
		ids[i] = tpl.ID
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.CSS)
		assert.Contains(t, tpl.CSS, "DonateGoal_", tpl.ID)
	}
	assert.Equal(t, []string{"default", "kawaii", "neon", "nature", "ocean", "halloween", "tenshi"}, ids)
	assert.Equal(t, Generate(DefaultStyleModel()), templates[0].CSS)

	// Callers get a copy
	templates[0].Name = "changed"
	assert.Equal(t, "Default", BuiltinTemplates()[0].Name)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sakura.css"), `/* @name Sakura
 * @background radial-gradient(circle, #ffb7c5, #ffffff)
 * @featured
 */
.DonateGoal_style__goal { color: pink; }
`)
	writeFile(t, filepath.Join(dir, "nested", "plain.css"), ".DonateGoal_style__goal { color: gray; }\n")
	writeFile(t, filepath.Join(dir, "drafts", "wip.css"), "/* @name Draft */\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not css")
	writeFile(t, filepath.Join(dir, ".gitignore"), "drafts\n")

	templates, warnings, err := LoadTemplates(dir, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, templates, 2)

	plain, sakura := templates[0], templates[1]
	assert.Equal(t, "plain", plain.ID)
	assert.Equal(t, "plain", plain.Name)
	assert.Equal(t, "#888888", plain.Background)
	assert.False(t, plain.Featured)

	assert.Equal(t, "sakura", sakura.ID)
	assert.Equal(t, "Sakura", sakura.Name)
	assert.Equal(t, "radial-gradient(circle, #ffb7c5, #ffffff)", sakura.Background)
	assert.True(t, sakura.Featured)
	assert.False(t, strings.HasSuffix(sakura.CSS, "\n"))
	assert.Equal(t, filepath.Join(dir, "sakura.css"), sakura.SourceFile)
}

func TestParseTemplateDirectivesStopAtRules(t *testing.T) {
	tpl := parseTemplate("x/ghost.css", "/* plain comment */\n.a { }\n/* @name Late */\n")
	assert.Equal(t, "ghost", tpl.Name)

	tpl = parseTemplate("x/ghost.css", "/* @name Boo */ \n.a { }")
	assert.Equal(t, "Boo", tpl.Name)
}

func TestGalleryOverridesBuiltin(t *testing.T) {
	user := []Template{
		{ID: "neon", Name: "My Neon", CSS: "/* mine */"},
		{ID: "extra", Name: "Extra", CSS: "/* extra */"},
	}
	gallery := Gallery(user)
	require.Len(t, gallery, len(BuiltinTemplates())+1)

	neon, ok := FindTemplate(gallery, "neon")
	require.True(t, ok)
	assert.Equal(t, "My Neon", neon.Name)
	assert.Equal(t, "neon", gallery[2].ID)
	assert.Equal(t, "extra", gallery[len(gallery)-1].ID)

	_, ok = FindTemplate(gallery, "nope")
	assert.False(t, ok)
}

func TestPreviewHTML(t *testing.T) {
	html, err := PreviewHTML(".DonateGoal_style__goal { color: #123456; }", PreviewOptions{DarkMode: true})
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Tip box preview</title>")
	assert.Contains(t, html, "#1f1f23")
	assert.Contains(t, html, ".DonateGoal_style__goal { color: #123456; }")
	assert.Contains(t, html, `<div class="DonateGoal_progress__done"></div>`)
}

func TestPreferencesDarkMode(t *testing.T) {
	store := NewMemoryStorage()
	p := NewPreferences(store)
	assert.False(t, p.DarkMode())

	on, err := p.ToggleDarkMode()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, NewPreferences(store).DarkMode())

	require.NoError(t, store.Set(KeyDarkMode, "garbage"))
	assert.False(t, p.DarkMode())
}
