package core

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
)

// expandFuncs are available in endpoint templates, e.g.
//
//	http://{{ env "SPARQL_HOST" "localhost" }}:{{ env "SPARQL_PORT" "8890" }}/sparql
var expandFuncs = template.FuncMap{
	"env": func(name string, fallback ...string) string {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if len(fallback) > 0 {
			return fallback[0]
		}
		return ""
	},
}

func expand(value string) (string, error) {
	tmpl, err := template.New("expand_endpoint").
		Funcs(expandFuncs).
		Option("missingkey=error").
		Parse(value)
	if err != nil {
		return "", fmt.Errorf("template.Parse: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", fmt.Errorf("template.Execute: %w", err)
	}

	return out.String(), nil
}

// expandOrDefault silently suppresses errors.
func expandOrDefault(value string) string {
	ex, err := expand(value)
	if err != nil {
		return value
	}
	return ex
}
