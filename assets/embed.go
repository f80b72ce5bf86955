// Package assets bundles the default board word list so the engine runs
// without any files configured.
package assets

import (
	"embed"
	"io"
)

//go:embed wordlist.txt
var FS embed.FS

// WordListName is the embedded default word list.
const WordListName = "wordlist.txt"

// OpenWordList opens the embedded default word list.
func OpenWordList() (io.ReadCloser, error) {
	return FS.Open(WordListName)
}
