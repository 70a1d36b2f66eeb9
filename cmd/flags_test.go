package cmd

import (
	"strings"
	"testing"

	"github.com/foomo/sitemapserver/pkg/sitemap"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoutesFlagSet(t *testing.T, args ...string) []string {
	t.Helper()
	v := newViper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addRoutesFlag(flags, v)
	require.NoError(t, flags.Parse(args))
	return routesFlag(v)
}

func TestRoutesFlagDefault(t *testing.T) {
	routes := newRoutesFlagSet(t)
	assert.Equal(t, sitemap.DefaultRoutes, sitemap.ParseRoutes(routes))
}

func TestRoutesFlagEnv(t *testing.T) {
	tests := map[string][]string{
		"about,team":       {"about", "team"},
		",about,team":      {"", "about", "team"},
		" , about , gdpr ": {"", "about", "gdpr"},
		"blog":             {"blog"},
	}
	for env, want := range tests {
		t.Run(env, func(t *testing.T) {
			t.Setenv("SITEMAP_SERVER_ROUTES", env)
			assert.Equal(t, want, newRoutesFlagSet(t))
		})
	}
}

func TestRoutesFlagArgs(t *testing.T) {
	assert.Equal(t, []string{"", "about", "team"}, newRoutesFlagSet(t, "--routes=,about,team"))

	// flags win over env
	t.Setenv("SITEMAP_SERVER_ROUTES", "careers")
	assert.Equal(t, []string{"about"}, newRoutesFlagSet(t, "--routes=about"))
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sitemapserver latest")
}
