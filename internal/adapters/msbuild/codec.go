package msbuild

import (
	"bytes"
	"io"

	"github.com/beevik/etree"
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var _ ports.ManifestCodec = (*Codec)(nil)

// bomUTF8 is the byte-order mark every serialized manifest starts with.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

var (
	lf   = []byte("\n")
	crlf = []byte("\r\n")
)

// Codec parses and serializes project manifests. Input is accepted with or
// without a byte-order mark (UTF-8 and UTF-16 variants); output is always
// UTF-8 with a BOM, CRLF line endings, and no trailing newline.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse decodes the raw manifest bytes into a mutable document.
func (c *Codec) Parse(path string, data []byte) (ports.Manifest, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	doc := etree.NewDocument()
	// The bytes are already UTF-8 at this point; accept whatever encoding
	// the XML declaration claims.
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromBytes(decoded); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	if doc.Root() == nil {
		return nil, zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	return &Document{ref: domain.NewProjectRef(path), doc: doc}, nil
}

// Encode serializes the document with the fixed output formatting: UTF-8
// BOM, CRLF line endings, no trailing newline.
func (c *Codec) Encode(m ports.Manifest) ([]byte, error) {
	d, ok := m.(*Document)
	if !ok {
		return nil, zerr.With(domain.ErrManifestWriteFailed, "reason", "foreign manifest implementation")
	}

	raw, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", d.Path())
	}

	// Collapse to LF first so existing CRLF sequences cannot be doubled.
	normalized := bytes.ReplaceAll(raw, crlf, lf)
	normalized = bytes.TrimRight(normalized, "\r\n")
	normalized = bytes.ReplaceAll(normalized, lf, crlf)

	out := make([]byte, 0, len(bomUTF8)+len(normalized))
	out = append(out, bomUTF8...)
	out = append(out, normalized...)
	return out, nil
}
