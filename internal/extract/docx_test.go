package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestDocxText_OrderAndDeduplication(t *testing.T) {
	// Text boxes come first (exact duplicates dropped), then table
	// cells (stripped, empty skipped), then body paragraphs as-is.
	path := writeDocx(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Premier paragraphe</w:t></w:r></w:p>
    <w:p><w:r><w:pict>
      <w:txbxContent>
        <w:p><w:r><w:t>Encadre radiologie</w:t></w:r></w:p>
        <w:p><w:r><w:t>Encadre radiologie</w:t></w:r></w:p>
        <w:p><w:r><w:t>Second encadre</w:t></w:r></w:p>
      </w:txbxContent>
    </w:pict></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>  Cellule A </w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>   </w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Cellule B</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Conclusion</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := docxText(path)
	require.NoError(t, err)

	assert.Equal(t,
		"Encadre radiologie\nSecond encadre\n"+
			"Cellule A\nCellule B\n"+
			"Premier paragraphe\n\nConclusion",
		text)
}

func TestDocxText_ParagraphsKeptInDocumentOrder(t *testing.T) {
	path := writeDocx(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>un</w:t></w:r><w:r><w:t> deux</w:t></w:r></w:p>
    <w:p><w:r><w:t>trois</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := docxText(path)
	require.NoError(t, err)
	assert.Equal(t, "un deux\ntrois", text)
}

func TestDocxText_MissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = docxText(path)
	assert.Error(t, err)
}

func TestText_UnreadableFileFails(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)

	_, err = Text(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestText_UnsupportedExtension(t *testing.T) {
	_, err := Text("note.txt")
	assert.Error(t, err)
}
