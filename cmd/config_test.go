package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/sparqlbench/adapters"
)

func TestLibraryParams(t *testing.T) {
	r := require.New(t)

	v := viper.New()
	v.SetConfigType("toml")
	r.NoError(v.ReadConfig(strings.NewReader(`
[library.fasthttp]
read-timeout = "2s"
retries = 3

[library."net/http"]
endpoint = "http://other:8890/sparql"
total-timeout = "1m"
`)))

	params, err := libraryParams(v, []string{"fasthttp", " http", "nethttp", "resty"}, "http://store:8890/sparql", 4)
	r.NoError(err)
	// aliases of one library collapse
	r.Len(params, 3)

	fast := params[0]
	r.Equal("fasthttp", fast.Library)
	r.Equal("http://store:8890/sparql", fast.Endpoint)
	r.Equal(4, fast.PoolSize)
	r.Equal(2*time.Second, fast.ReadTimeout)
	r.Equal(5*time.Second, fast.ConnectTimeout)
	r.Equal(3, fast.Retries)

	std := params[1]
	r.Equal("nethttp", std.Library)
	r.Equal("http://other:8890/sparql", std.Endpoint)
	r.Equal(time.Minute, std.TotalTimeout)

	// no table, only the globals apply
	resty := params[2]
	want := adapters.DefaultParams("resty")
	want.Endpoint = "http://store:8890/sparql"
	want.PoolSize = 4
	r.Equal(want, resty)
}

func TestLibraryParams_Errors(t *testing.T) {
	r := require.New(t)

	_, err := libraryParams(viper.New(), []string{"curl"}, "", 0)
	r.ErrorIs(err, adapters.ErrUnsupportedLibrary)

	v := viper.New()
	v.SetConfigType("toml")
	r.NoError(v.ReadConfig(strings.NewReader("[library.curl]\nretries = 1\n")))
	_, err = libraryParams(v, []string{"nethttp"}, "", 0)
	r.ErrorIs(err, adapters.ErrUnsupportedLibrary)
	r.ErrorContains(err, "[library.curl]")
}
