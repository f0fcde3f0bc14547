package weburl_test

import (
	"testing"

	"github.com/rohmanhakim/weburl/pkg/form"
	"github.com/rohmanhakim/weburl/pkg/hashutil"
	"github.com/rohmanhakim/weburl/pkg/host"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Getters(t *testing.T) {
	u := weburl.MustParse("https://user:pw@example.com:8443/a/b?q=1#frag")

	assert.Equal(t, "https:", u.Protocol())
	assert.Equal(t, "user", u.Username())
	assert.Equal(t, "pw", u.Password())
	assert.Equal(t, "example.com:8443", u.Host())
	assert.Equal(t, "example.com", u.Hostname())
	assert.Equal(t, "8443", u.Port())
	assert.Equal(t, "/a/b", u.Pathname())
	assert.Equal(t, "?q=1", u.Search())
	assert.Equal(t, "#frag", u.Hash())
	assert.Equal(t, "https://example.com:8443", u.Origin())
	assert.Equal(t, u.Href(), u.String())
}

func TestURL_StructuredAccessors(t *testing.T) {
	u := weburl.MustParse("http://127.0.0.1:8080/x/y/?")

	assert.Equal(t, "http", u.Scheme())
	assert.True(t, u.IsSpecial())
	assert.False(t, u.CannotHaveUsernamePasswordPort())

	addr, ok := u.HostValue().IPv4()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x7F000001), addr)

	port, ok := u.PortNumber()
	assert.True(t, ok)
	assert.Equal(t, uint16(8080), port)

	segments, ok := u.PathSegments()
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y", ""}, segments)
	assert.False(t, u.HasOpaquePath())

	query, ok := u.Query()
	assert.True(t, ok)
	assert.Empty(t, query)
	assert.Empty(t, u.Search())

	_, ok = u.Fragment()
	assert.False(t, ok)
}

func TestURL_OpaquePath(t *testing.T) {
	u := weburl.MustParse("mailto:someone@example.com?subject=hi")

	assert.True(t, u.HasOpaquePath())
	assert.True(t, u.HostValue().IsNone())
	assert.True(t, u.CannotHaveUsernamePasswordPort())
	assert.Equal(t, "someone@example.com", u.Pathname())

	_, ok := u.PathSegments()
	assert.False(t, ok)
}

func TestURL_FileCannotHaveCredentials(t *testing.T) {
	u := weburl.MustParse("file://server/share")
	assert.Equal(t, host.KindDomain, u.HostValue().Kind())
	assert.True(t, u.CannotHaveUsernamePasswordPort())
}

func TestURL_CloneIsIndependent(t *testing.T) {
	u := weburl.MustParse("https://example.com/a/b")
	c := u.Clone()
	require.NoError(t, c.SetPathname("/z"))

	assert.Equal(t, "https://example.com/a/b", u.Href())
	assert.Equal(t, "https://example.com/z", c.Href())
}

func TestURL_ResolutionDoesNotAliasBasePath(t *testing.T) {
	base := weburl.MustParse("https://example.com/a/b/c")
	first, err := base.Parse("x")
	require.NoError(t, err)
	second, err := base.Parse("y")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/a/b/x", first.Href())
	assert.Equal(t, "https://example.com/a/b/y", second.Href())
	assert.Equal(t, "https://example.com/a/b/c", base.Href())
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		opaque bool
	}{
		{"https://example.com:8443/a", "https://example.com:8443", false},
		{"http://example.com:80/", "http://example.com", false},
		{"ws://[::1]:9000/", "ws://[::1]:9000", false},
		{"ftp://example.com/file", "ftp://example.com", false},
		{"file:///etc/hosts", "null", true},
		{"mailto:a@example.com", "null", true},
		{"foo://example.com/", "null", true},
		{"blob:https://example.com/uuid", "https://example.com", false},
		{"blob:data:text/plain,x", "null", true},
		{"blob:ftp://example.com/x", "null", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u := weburl.MustParse(tt.input)
			o := u.OriginValue()
			assert.Equal(t, tt.want, u.Origin())
			assert.Equal(t, tt.want, o.String())
			assert.Equal(t, tt.opaque, o.IsOpaque())
		})
	}
}

func TestOrigin_SameOrigin(t *testing.T) {
	a := weburl.MustParse("https://example.com/a").OriginValue()
	b := weburl.MustParse("https://EXAMPLE.com:443/b?c").OriginValue()
	c := weburl.MustParse("http://example.com/a").OriginValue()
	d := weburl.MustParse("https://example.com:8443/").OriginValue()
	opaque := weburl.MustParse("data:,x").OriginValue()

	assert.True(t, a.SameOrigin(b))
	assert.False(t, a.SameOrigin(c))
	assert.False(t, a.SameOrigin(d))
	assert.False(t, opaque.SameOrigin(opaque))
	assert.Equal(t, "https", a.Scheme())
	_, hasPort := a.Port()
	assert.False(t, hasPort)
}

func TestURL_EqualityAndOrdering(t *testing.T) {
	a := weburl.MustParse("http://EXAMPLE.com:80")
	b := weburl.MustParse("http://example.com/")
	c := weburl.MustParse("http://example.com/#top")
	d := weburl.MustParse("http://example.org/")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.EqualExcludingFragment(c))
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, -1, b.Compare(d))
	assert.Equal(t, 1, d.Compare(b))

	var nilURL *weburl.URL
	assert.False(t, a.Equal(nilURL))
	assert.True(t, nilURL.Equal(nil))
}

func TestURL_Fingerprint(t *testing.T) {
	a := weburl.MustParse("https://Example.com:443/a")
	b := weburl.MustParse("https://example.com/a")

	for _, algo := range []hashutil.HashAlgo{hashutil.HashAlgoSHA256, hashutil.HashAlgoBLAKE3} {
		fa, err := a.Fingerprint(algo)
		require.NoError(t, err)
		fb, err := b.Fingerprint(algo)
		require.NoError(t, err)
		assert.Equal(t, fa, fb)

		want, err := hashutil.HashString("https://example.com/a", algo)
		require.NoError(t, err)
		assert.Equal(t, want, fa)
	}

	_, err := a.Fingerprint("md5")
	assert.Error(t, err)
}

func TestURL_SearchParams(t *testing.T) {
	u := weburl.MustParse("https://example.com/search?b=2&a=1+1&a=%C3%A9#res")

	params := u.SearchParams()
	v, ok := params.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1 1", v)
	assert.Equal(t, []string{"1 1", "é"}, params.GetAll("a"))

	params.Sort()
	params.Set("c", "x y")
	u.SetSearchParams(params)
	assert.Equal(t, "https://example.com/search?a=1+1&a=%C3%A9&b=2&c=x+y#res", u.Href())

	u.SetSearchParams(form.NewSearchParams(""))
	assert.Equal(t, "https://example.com/search#res", u.Href())
	_, ok = u.Query()
	assert.False(t, ok)
}
