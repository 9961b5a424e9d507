package lsp

import (
	"net/url"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// documentName is the file name a buffer is analysed under. file:// URIs
// become slash paths ("/C:/x.c" loses its leading slash); other schemes
// such as untitled: keep the raw URI.
func documentName(uri protocol.DocumentUri) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	p := u.Path
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' && isDriveLetter(p[1]) {
		p = p[1:]
	}
	if u.Host != "" && u.Host != "localhost" {
		// UNC: file://server/share/x.c
		p = "//" + u.Host + p
	}
	return p
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
