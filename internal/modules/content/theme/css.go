package theme

import (
	"strings"
	"text/template"

	"github.com/wordpy/core/internal/models"
)

// NoThemeCSS is served when no theme resolves.
const NoThemeCSS = "/* no theme configured */\n"

var cssTemplate = template.Must(template.New("theme").Parse(`:root {
  --primary-color: {{.PrimaryColor}};
  --secondary-color: {{.SecondaryColor}};
  --accent-color: {{.AccentColor}};
  --text-color: {{.TextColor}};
  --heading-color: {{.HeadingColor}};
  --link-color: {{.LinkColor}};
  --link-hover-color: {{.LinkHoverColor}};
  --background-color: {{.BackgroundColor}};
  --secondary-bg-color: {{.SecondaryBgColor}};
  --header-bg-color: {{.HeaderBgColor}};
  --header-text-color: {{.HeaderTextColor}};
  --footer-bg-color: {{.FooterBgColor}};
  --footer-text-color: {{.FooterTextColor}};
  --button-bg-color: {{.ButtonBgColor}};
  --button-text-color: {{.ButtonTextColor}};
  --button-hover-bg-color: {{.ButtonHoverBgColor}};
  --font-family: {{.FontFamily}};
  --heading-font-family: {{.ResolvedHeadingFontFamily}};
  --font-size-base: {{.FontSizeBase}};
  --line-height: {{.LineHeight}};
  --border-radius: {{.BorderRadius}};
  --box-shadow: {{.BoxShadow}};
}

body {
  font-family: var(--font-family);
  font-size: var(--font-size-base);
  line-height: var(--line-height);
  color: var(--text-color);
  background-color: var(--background-color);
}

h1, h2, h3, h4, h5, h6 {
  font-family: var(--heading-font-family);
  color: var(--heading-color);
}

a {
  color: var(--link-color);
}

a:hover {
  color: var(--link-hover-color);
}
`))

type cssContext struct {
	*models.ThemeModel
}

// ResolvedHeadingFontFamily falls back to the body font when no heading
// font is configured.
func (c cssContext) ResolvedHeadingFontFamily() string {
	if strings.TrimSpace(c.HeadingFontFamily) != "" {
		return c.HeadingFontFamily
	}
	return c.FontFamily
}

// CSS renders the stylesheet for the given theme. A nil theme yields the
// explicit placeholder instead of an error.
func CSS(theme *models.ThemeModel) string {
	if theme == nil {
		return NoThemeCSS
	}

	var b strings.Builder
	if err := cssTemplate.Execute(&b, cssContext{theme}); err != nil {
		return NoThemeCSS
	}
	if custom := strings.TrimSpace(theme.CustomCSS); custom != "" {
		b.WriteString("\n/* custom css */\n")
		b.WriteString(custom)
		b.WriteString("\n")
	}
	return b.String()
}
