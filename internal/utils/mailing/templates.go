package mailing

import (
	"bytes"
	"html/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<p>Hi {{.Name}},</p>
<p>Welcome to CampusCook! Your account is ready.</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">Start sharing recipes</a></p>{{end}}`))

// WelcomeBody renders the mail sent after signup.
func WelcomeBody(name, appURL string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, struct {
		Name   string
		AppURL string
	}{name, appURL})
	return buf.String(), err
}
