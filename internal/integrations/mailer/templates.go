package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

type locale struct {
	Subject  string
	Dir      string
	Greeting string
	Intro    string
	CodeHint string
	Date     string
	Time     string
	Services string
	Expires  string
	Ignore   string
}

var locales = map[string]locale{
	LangEnglish: {
		Subject:  "Your booking confirmation code",
		Dir:      "ltr",
		Greeting: "Hello",
		Intro:    "Please confirm your appointment with the code below.",
		CodeHint: "Confirmation code",
		Date:     "Date",
		Time:     "Time",
		Services: "Services",
		Expires:  "The code is valid until",
		Ignore:   "If you did not request this booking, ignore this email.",
	},
	LangHebrew: {
		Subject:  "קוד אישור להזמנה שלך",
		Dir:      "rtl",
		Greeting: "שלום",
		Intro:    "אנא אשר את התור שלך באמצעות הקוד הבא.",
		CodeHint: "קוד אישור",
		Date:     "תאריך",
		Time:     "שעה",
		Services: "שירותים",
		Expires:  "הקוד בתוקף עד",
		Ignore:   "אם לא ביקשת הזמנה זו, התעלם מהודעה זו.",
	},
}

type view struct {
	L         locale
	Name      string
	Code      string
	Date      string
	Time      string
	Services  string
	ExpiresAt string
}

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html dir="{{.L.Dir}}">
<body style="font-family: Arial, sans-serif;">
<p>{{.L.Greeting}} {{.Name}},</p>
<p>{{.L.Intro}}</p>
<p>{{.L.CodeHint}}: <strong style="font-size: 24px; letter-spacing: 4px;">{{.Code}}</strong></p>
<table>
<tr><td>{{.L.Date}}:</td><td>{{.Date}}</td></tr>
<tr><td>{{.L.Time}}:</td><td>{{.Time}}</td></tr>
<tr><td>{{.L.Services}}:</td><td>{{.Services}}</td></tr>
</table>
<p>{{.L.Expires}} {{.ExpiresAt}}.</p>
<p style="color: #888;">{{.L.Ignore}}</p>
</body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`{{.L.Greeting}} {{.Name}},

{{.L.Intro}}

{{.L.CodeHint}}: {{.Code}}

{{.L.Date}}: {{.Date}}
{{.L.Time}}: {{.Time}}
{{.L.Services}}: {{.Services}}

{{.L.Expires}} {{.ExpiresAt}}.
{{.L.Ignore}}
`))

// rendered готовое письмо
type rendered struct {
	Subject string
	Text    string
	HTML    string
}

func localeFor(lang string) locale {
	if l, ok := locales[strings.ToLower(lang)]; ok {
		return l
	}
	return locales[LangEnglish]
}

func render(n Notification) (*rendered, error) {
	l := localeFor(n.Lang)
	v := view{
		L:         l,
		Name:      n.CustomerName,
		Code:      n.Code,
		Date:      n.Date.Format("02.01.2006"),
		Time:      n.StartTime,
		Services:  strings.Join(n.ServiceNames, ", "),
		ExpiresAt: n.ExpiresAt.Format("15:04"),
	}

	var text, html bytes.Buffer
	if err := textBody.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("%w: text: %v", ErrRender, err)
	}
	if err := htmlBody.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrRender, err)
	}

	return &rendered{Subject: l.Subject, Text: text.String(), HTML: html.String()}, nil
}
