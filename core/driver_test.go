package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	r := require.New(t)

	t.Setenv("SPARQLBENCH_TEST_HOST", "db.internal")

	testCases := []struct {
		input    string
		expected string
	}{
		{"http://localhost:8890/sparql", "http://localhost:8890/sparql"},
		{`http://{{ env "SPARQLBENCH_TEST_HOST" }}/sparql`, "http://db.internal/sparql"},
		{`http://{{ env "SPARQLBENCH_TEST_UNSET" "localhost" }}:8890/sparql`, "http://localhost:8890/sparql"},
	}

	for _, tc := range testCases {
		actual, err := expand(tc.input)
		r.NoError(err)

		r.Equal(tc.expected, actual)
	}

	_, err := expand("{{ broken")
	r.Error(err)
	r.Equal("{{ broken", expandOrDefault("{{ broken"))
}

func TestClientParams_Validate(t *testing.T) {
	valid := ClientParams{
		Library:      "nethttp",
		Endpoint:     "http://localhost:8890/sparql",
		TotalTimeout: 30 * time.Second,
		PoolSize:     10,
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		modify func(*ClientParams)
	}{
		{"scheme", func(p *ClientParams) { p.Endpoint = "ftp://localhost/sparql" }},
		{"host", func(p *ClientParams) { p.Endpoint = "http:///sparql" }},
		{"parse", func(p *ClientParams) { p.Endpoint = "http://[::1" }},
		{"pool", func(p *ClientParams) { p.PoolSize = 0 }},
		{"timeout", func(p *ClientParams) { p.ReadTimeout = -time.Second }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.modify(&p)
			require.Error(t, p.Validate())
		})
	}
}

func TestClientParams_Expand(t *testing.T) {
	t.Setenv("SPARQLBENCH_TEST_PORT", "9999")

	p := &ClientParams{Library: "resty", Endpoint: `http://localhost:{{ env "SPARQLBENCH_TEST_PORT" }}/sparql`}
	ex := p.Expand()

	require.Equal(t, "http://localhost:9999/sparql", ex.Endpoint)
	require.Equal(t, "resty", ex.Library)
	// original is left untouched
	require.Contains(t, p.Endpoint, "{{")
}
