// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAttrSpace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"newline and tab in value", "<R a=\"x\ny\tz\"/>", `<R a="x y z"/>`},
		{"crlf counts once", "<R a=\"x\r\ny\"/>", `<R a="x y"/>`},
		{"lone cr", "<R a=\"x\ry\"/>", `<R a="x y"/>`},
		{"single quotes", "<R a='x\ny'/>", `<R a='x y'/>`},
		{"whitespace between attributes kept", "<R\n a=\"1\"\n b=\"2\"/>", "<R\n a=\"1\"\n b=\"2\"/>"},
		{"text content untouched", "<R a=\"1\">\n\t\"x\ny\"\n</R>", "<R a=\"1\">\n\t\"x\ny\"\n</R>"},
		{"comment with quote", "<!-- \" -->\n<R a=\"x\ny\"/>", "<!-- \" -->\n<R a=\"x y\"/>"},
		{"cdata untouched", "<R><![CDATA[<a b=\"c\nd\">]]></R>", "<R><![CDATA[<a b=\"c\nd\">]]></R>"},
		{"doctype subset", "<!DOCTYPE H [\n<!ATTLIST H a CDATA \"x\ny\">\n]>\n<H b=\"p\nq\"/>", "<!DOCTYPE H [\n<!ATTLIST H a CDATA \"x\ny\">\n]>\n<H b=\"p q\"/>"},
		{"character reference untouched", `<R a="x&#10;y"/>`, `<R a="x&#10;y"/>`},
		{"gt inside value", "<R a=\"1>2\n3\"/>", `<R a="1>2 3"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeAttrSpace([]byte(tt.in))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecode_AttributeWhitespace(t *testing.T) {
	input := "<HealthData>\n" +
		"<Record sourceName=\"a\nb\tc\" device=\"d\r\ne\" unit=\"x&#10;y&#9;z\"/>\n" +
		"</HealthData>"
	got, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)

	v, _ := got[0].Attr("sourceName")
	assert.Equal(t, "a b c", v)
	v, _ = got[0].Attr("device")
	assert.Equal(t, "d e", v)
	v, _ = got[0].Attr("unit")
	assert.Equal(t, "x\ny\tz", v, "character references keep the character they name")
}
