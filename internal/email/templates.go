package email

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	templateVerification = "verification"
	templateReset        = "password_reset"
)

type templateData struct {
	Username string
	Link     string
}

const verificationHTML = `<html>
<body style="font-family: sans-serif;">
  <h2>Hello{{if .Username}}, {{.Username}}{{end}}!</h2>
  <p>Thanks for signing up. Please confirm your email address by clicking the link below:</p>
  <p><a href="{{.Link}}">Confirm email</a></p>
  <p>The link is valid for 24 hours. If you did not create an account, ignore this message.</p>
</body>
</html>`

const resetHTML = `<html>
<body style="font-family: sans-serif;">
  <h2>Hello{{if .Username}}, {{.Username}}{{end}}!</h2>
  <p>We received a request to reset your password. Click the link below to choose a new one:</p>
  <p><a href="{{.Link}}">Reset password</a></p>
  <p>The link expires shortly. If you did not request a reset, you can safely ignore this message.</p>
</body>
</html>`

// TemplateSet holds the parsed account email templates.
type TemplateSet struct {
	templates map[string]*template.Template
}

func NewTemplateSet() (*TemplateSet, error) {
	ts := &TemplateSet{templates: make(map[string]*template.Template)}
	for name, body := range map[string]string{
		templateVerification: verificationHTML,
		templateReset:        resetHTML,
	} {
		tpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		ts.templates[name] = tpl
	}
	return ts, nil
}

func (ts *TemplateSet) Render(name string, data templateData) (string, error) {
	tpl, ok := ts.templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}
	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
